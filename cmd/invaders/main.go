package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/loop"
)

func main() {
	logger := config.NewLogger(os.Stderr, "invaders")

	rules, err := config.RulesFromEnv()
	if err != nil {
		logger.Fatal("failed to load rules", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	// The game owns the terminal, so session events are not logged here.
	runErr := loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, loop.Options{Rules: &rules})
	_ = term.Restore(fd, oldState)
	if runErr != nil {
		logger.Fatal("game error", "err", runErr)
	}
}
