// Command rtodo is a terminal task list manager.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Bearcry55/rtodo/internal/config"
	"github.com/Bearcry55/rtodo/internal/logging"
	"github.com/Bearcry55/rtodo/internal/storage"
	"github.com/Bearcry55/rtodo/internal/store"
	"github.com/Bearcry55/rtodo/internal/task"
	"github.com/Bearcry55/rtodo/internal/ui"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintf(os.Stderr, "\nInterrupted\n")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rtodo", flag.ContinueOnError)
	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	session, err := logging.NewSessionLogger(cfg.LogDir, logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
	})
	if err != nil {
		return err
	}
	defer session.Close()
	logger := session.Logger()

	adapter := storage.New(cfg.TasksFile)
	tasks, err := adapter.Load()

	// A corrupt file is not fatal: it has been preserved aside, the
	// session starts empty, and the user is told on screen.
	var notice string
	var corrupt *task.CorruptDataError
	if err != nil {
		if !errors.As(err, &corrupt) {
			return err
		}
		tasks = nil
		notice = fmt.Sprintf("task file was unreadable; starting empty (original kept at %s)", corrupt.Backup)
		logger.Error("corrupt task file", "path", corrupt.Path, "backup", corrupt.Backup, "err", corrupt.Err)
	}

	st := store.New(tasks, adapter)
	logger.Info("session started", "file", adapter.Path(), "tasks", st.Len())

	var opts []ui.Option
	if notice != "" {
		opts = append(opts, ui.WithNotice(notice))
	}
	return ui.Run(ctx, cfg, st, logger, opts...)
}
