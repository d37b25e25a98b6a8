package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/snake/internal/config"
	"github.com/tomz197/snake/internal/loop/client"
	"github.com/tomz197/snake/internal/loop/server"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "snake"})

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local play still goes through a server so the game over screen has a
	// leaderboard; nothing is logged while the terminal is in raw mode.
	gs := server.NewServer(nil)
	c, err := client.NewClient(gs, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", ""),
	})
	if err == nil {
		err = c.Run(ctx)
	}

	_ = term.Restore(fd, oldState)
	if err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}
