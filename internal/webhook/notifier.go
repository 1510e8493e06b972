// Package webhook notifies the external enhancement workflow that a task
// was created. Delivery is best effort: one attempt, detached from the
// request that triggered it, failures logged and dropped.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskCreated is the outbound webhook body.
type TaskCreated struct {
	TaskID    uuid.UUID `json:"taskId"`
	Title     string    `json:"title"`
	UserEmail *string   `json:"userEmail,omitempty"`
}

type Notifier struct {
	url     string
	token   string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
	wg      sync.WaitGroup
}

type Option func(*Notifier)

func WithBearerToken(token string) Option {
	return func(n *Notifier) { n.token = token }
}

func WithTimeout(timeout time.Duration) Option {
	return func(n *Notifier) { n.timeout = timeout }
}

func WithHTTPClient(client *http.Client) Option {
	return func(n *Notifier) { n.client = client }
}

func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) { n.logger = logger }
}

// New returns a notifier posting to url. An empty url yields a notifier
// that does nothing.
func New(url string, opts ...Option) *Notifier {
	n := &Notifier{
		url:     url,
		timeout: 10 * time.Second,
		client:  http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.url != ""
}

// TaskCreated dispatches the notification on its own goroutine and
// returns immediately.
func (n *Notifier) TaskCreated(event TaskCreated) {
	if !n.Enabled() {
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := n.send(ctx, event); err != nil {
			n.logger.Warn("Failed to deliver task webhook",
				"taskId", event.TaskID,
				"error", err)
			return
		}
		n.logger.Debug("Delivered task webhook", "taskId", event.TaskID)
	}()
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (n *Notifier) Wait(ctx context.Context) error {
	if n == nil {
		return nil
	}
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) send(ctx context.Context, event TaskCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode webhook body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %s", resp.Status)
	}
	return nil
}
