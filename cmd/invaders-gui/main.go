package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/gui"
)

func main() {
	logger := config.NewLogger(os.Stderr, "invaders-gui")

	rules, err := config.RulesFromEnv()
	if err != nil {
		logger.Fatal("failed to load rules", "err", err)
	}

	g, err := gui.New(rules, logger)
	if err != nil {
		logger.Fatal("failed to create game", "err", err)
	}

	ebiten.SetWindowSize(rules.Boundary.Width, rules.Boundary.Height)
	ebiten.SetWindowTitle("Invaders")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
}
