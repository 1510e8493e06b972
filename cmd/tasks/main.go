// tasks is a terminal front end for the task API.
//
//	tasks list
//	tasks add <title>
//	tasks done|undone <id>
//	tasks edit <id> <title>
//	tasks rm <id>
//	tasks watch
//	tasks enhance <id> <enhanced title>
//
// watch keeps a local copy of the list and polls the server, printing each
// enhanced title as it arrives, until interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/miguelbonilla1/ai-automation/internal/client"
	"github.com/miguelbonilla1/ai-automation/internal/models"
	"github.com/miguelbonilla1/ai-automation/internal/poller"
	"github.com/miguelbonilla1/ai-automation/internal/tasklist"
)

type options struct {
	server   string
	secret   string
	interval time.Duration
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	var opts options

	flagSet := pflag.NewFlagSet("tasks", pflag.ContinueOnError)
	flagSet.StringVar(&opts.server, "server", envOr("TASKS_SERVER", "http://localhost:8080"), "task API base URL")
	flagSet.StringVar(&opts.secret, "secret", os.Getenv("TASK_ENHANCE_SECRET"), "enhancement shared secret (enhance only)")
	flagSet.DurationVar(&opts.interval, "interval", poller.DefaultInterval, "poll interval for watch")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(out, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(out, flagSet)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(opts.server, nil)
	command, rest := flagSet.Arg(0), flagSet.Args()[1:]

	switch command {
	case "list", "ls":
		return listTasks(ctx, api, out)
	case "add":
		return addTask(ctx, api, out, rest)
	case "done", "undone":
		return setCompleted(ctx, api, out, rest, command == "done")
	case "edit":
		return editTask(ctx, api, out, rest)
	case "rm", "delete":
		return removeTask(ctx, api, out, rest)
	case "watch":
		return watch(ctx, api, out, opts.interval)
	case "enhance":
		return enhance(ctx, api, out, rest, opts.secret)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func listTasks(ctx context.Context, api *client.Client, out io.Writer) error {
	tasks, err := api.ListTasks(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks yet.")
		return nil
	}
	for _, task := range tasks {
		printTask(out, task)
	}
	return nil
}

func addTask(ctx context.Context, api *client.Client, out io.Writer, args []string) error {
	list := tasklist.New(api, nil)
	task, err := list.Add(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	printTask(out, task)
	return nil
}

func setCompleted(ctx context.Context, api *client.Client, out io.Writer, args []string, completed bool) error {
	id, err := taskID(args)
	if err != nil {
		return err
	}
	task, err := api.UpdateTask(ctx, id, models.TaskUpdate{Completed: &completed})
	if err != nil {
		return err
	}
	printTask(out, task)
	return nil
}

func editTask(ctx context.Context, api *client.Client, out io.Writer, args []string) error {
	id, err := taskID(args)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		return tasklist.ErrEmptyTitle
	}
	task, err := api.UpdateTask(ctx, id, models.TaskUpdate{Title: &title})
	if err != nil {
		return err
	}
	printTask(out, task)
	return nil
}

func removeTask(ctx context.Context, api *client.Client, out io.Writer, args []string) error {
	id, err := taskID(args)
	if err != nil {
		return err
	}
	if err := api.DeleteTask(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(out, "deleted %s\n", id)
	return nil
}

func enhance(ctx context.Context, api *client.Client, out io.Writer, args []string, secret string) error {
	id, err := taskID(args)
	if err != nil {
		return err
	}
	if secret == "" {
		return errors.New("--secret or TASK_ENHANCE_SECRET is required")
	}
	if err := api.Enhance(ctx, secret, id, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintf(out, "enhanced %s\n", id)
	return nil
}

// watch prints the list once, then reports enhancements until ctx ends.
func watch(ctx context.Context, api *client.Client, out io.Writer, interval time.Duration) error {
	list := tasklist.New(api, nil)
	if err := list.Load(ctx); err != nil {
		return err
	}
	for _, task := range list.Tasks() {
		printTask(out, task)
	}
	fmt.Fprintf(out, "watching for enhanced titles every %s (Ctrl+C to stop)\n", interval)

	p := poller.New(api, list.Tasks,
		func(id uuid.UUID, enhancedTitle string) {
			list.ApplyEnhancement(id, enhancedTitle)
			if task, ok := list.Find(id); ok {
				fmt.Fprintf(out, "enhanced %s: %q -> %q\n", id, task.Title, enhancedTitle)
			}
		},
		poller.WithInterval(interval),
		poller.WithErrorHandler(func(err error) {
			fmt.Fprintf(os.Stderr, "poll failed: %v\n", err)
		}),
	)
	p.Start(ctx)
	<-ctx.Done()
	p.Stop()
	return nil
}

func taskID(args []string) (uuid.UUID, error) {
	if len(args) == 0 {
		return uuid.Nil, errors.New("task id is required")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid task id %q", args[0])
	}
	return id, nil
}

func printTask(out io.Writer, task models.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	fmt.Fprintf(out, "[%s] %s  %s\n", mark, task.ID, task.DisplayTitle())
	if task.IsEnhanced() {
		fmt.Fprintf(out, "    Original: %s\n", task.Title)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printHelp(out io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintln(out, "usage: tasks [flags] <list|add|done|undone|edit|rm|watch|enhance> [args]")
	fmt.Fprintln(out)
	fmt.Fprint(out, flagSet.FlagUsages())
}
