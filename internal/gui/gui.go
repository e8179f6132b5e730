// Package gui runs an invaders game in a desktop window with ebiten.
package gui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/geom"
)

// Timing in ebiten ticks (60 per second).
const (
	tickEvery        = 2  // engine ticks every N ebiten ticks
	twinkleEvery     = 15 // starfield refresh
	restartDelay     = 60 // ticks before a finished game accepts restart
	promptBlinkTicks = 36
)

type screen int

const (
	screenTitle screen = iota
	screenPlaying
	screenPaused
	screenGameOver
)

// keys is the input the window saw during one ebiten tick. Left and Right are
// held; the others are fresh presses.
type keys struct {
	left, right bool
	fire        bool
	pause       bool
	start       bool
	quit        bool
}

// Game implements ebiten.Game around a game.Game.
type Game struct {
	rules    config.Rules
	logger   *log.Logger
	gameOpts []game.Option
	face     text.Face

	game   *game.Game
	screen screen
	ticks  int
	overAt int

	drawer *drawer
}

var _ ebiten.Game = (*Game)(nil)

// New creates a window game. A nil logger discards events.
func New(rules config.Rules, logger *log.Logger, opts ...game.Option) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		rules:    rules,
		logger:   logger,
		gameOpts: opts,
		face:     text.NewGoXFace(bitmapfont.Face),
		screen:   screenTitle,
	}, nil
}

// Update reads the keyboard and advances the game. It returns
// ebiten.Termination when the player quits.
func (g *Game) Update() error {
	return g.step(keys{
		left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		fire:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		pause: inpututil.IsKeyJustPressed(ebiten.KeyP),
		start: inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		quit:  inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	})
}

// step applies one tick of input.
func (g *Game) step(k keys) error {
	g.ticks++
	if k.quit {
		return ebiten.Termination
	}

	switch g.screen {
	case screenTitle:
		if k.start {
			return g.start()
		}
	case screenPlaying:
		if k.pause {
			g.screen = screenPaused
			return nil
		}
		if k.fire {
			g.game.FirePlayerShot()
		}
		if g.ticks%tickEvery == 0 {
			switch {
			case k.left && !k.right:
				g.game.MovePlayer(geom.Left)
			case k.right && !k.left:
				g.game.MovePlayer(geom.Right)
			}
			g.game.Go()
		}
		if g.ticks%twinkleEvery == 0 {
			g.game.Twinkle()
		}
		if g.game.Over() {
			g.screen = screenGameOver
			g.overAt = g.ticks
		}
	case screenPaused:
		if k.pause || k.start {
			g.screen = screenPlaying
		}
	case screenGameOver:
		if g.ticks%twinkleEvery == 0 {
			g.game.Twinkle()
		}
		if k.start && g.ticks-g.overAt >= restartDelay {
			return g.start()
		}
	}
	return nil
}

func (g *Game) start() error {
	opts := append([]game.Option{game.WithGameOverHandler(g.onGameOver)}, g.gameOpts...)
	gm, err := game.New(g.rules, opts...)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	g.game = gm
	g.screen = screenPlaying
	g.logger.Debug("game started", "waves", gm.MaxWaves())
	return nil
}

func (g *Game) onGameOver(reason game.Reason) {
	g.logger.Info("game over", "reason", reason, "score", g.game.Score())
}

// Layout returns the boundary size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.rules.Boundary.Width, g.rules.Boundary.Height
}

// Draw renders the current screen.
func (g *Game) Draw(dst *ebiten.Image) {
	if g.drawer == nil {
		g.drawer = newDrawer(g.face)
	}
	g.drawer.frame(dst, g)
}
