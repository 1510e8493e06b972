// Package poller watches the task API for enhanced titles.
//
// Every interval the poller fetches the full task list and compares it with
// the caller's local tasks by id. A task that has no enhanced title locally
// but has one remotely is reported once through the enhancement callback;
// the caller is expected to record it locally so the next poll is quiet.
// Nothing else is propagated: remote deletions and edits are ignored.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/miguelbonilla1/ai-automation/internal/models"
)

const DefaultInterval = 2 * time.Second

// Source fetches the current remote task list.
type Source interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
}

// Enhancement is a task whose enhanced title arrived since the local copy was taken.
type Enhancement struct {
	ID            uuid.UUID
	EnhancedTitle string
}

type Poller struct {
	source     Source
	local      func() []models.Task
	onEnhanced func(id uuid.UUID, enhancedTitle string)
	onError    func(err error)
	interval   time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

type Option func(*Poller)

func WithInterval(interval time.Duration) Option {
	return func(p *Poller) {
		if interval > 0 {
			p.interval = interval
		}
	}
}

// WithErrorHandler receives failed polls. The loop keeps running.
func WithErrorHandler(fn func(err error)) Option {
	return func(p *Poller) { p.onError = fn }
}

// New builds a poller. local returns the caller's current tasks and
// onEnhanced is invoked for every detected enhancement.
func New(source Source, local func() []models.Task, onEnhanced func(id uuid.UUID, enhancedTitle string), opts ...Option) *Poller {
	p := &Poller{
		source:     source,
		local:      local,
		onEnhanced: onEnhanced,
		onError:    func(error) {},
		interval:   DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the polling loop. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.done)
}

// Stop cancels the loop, including a poll in flight, and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// run polls on every tick. A poll runs to completion before the next tick
// is read, so polls never overlap; ticks that fire meanwhile are dropped.
func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Poll(ctx); err != nil && ctx.Err() == nil {
				p.onError(err)
			}
		}
	}
}

// Poll performs a single fetch-and-compare.
func (p *Poller) Poll(ctx context.Context) error {
	fetched, err := p.source.ListTasks(ctx)
	if err != nil {
		return err
	}

	for _, e := range Detect(p.local(), fetched) {
		p.onEnhanced(e.ID, e.EnhancedTitle)
	}
	return nil
}

// Detect lists the fetched tasks that gained an enhanced title relative to
// local, in fetched order. Tasks unknown locally are skipped.
func Detect(local, fetched []models.Task) []Enhancement {
	byID := make(map[uuid.UUID]models.Task, len(local))
	for _, t := range local {
		byID[t.ID] = t
	}

	var found []Enhancement
	for _, remote := range fetched {
		current, ok := byID[remote.ID]
		if !ok || current.IsEnhanced() || !remote.IsEnhanced() {
			continue
		}
		found = append(found, Enhancement{ID: remote.ID, EnhancedTitle: *remote.EnhancedTitle})
	}
	return found
}
