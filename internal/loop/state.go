package loop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
)

// Screen is the phase the terminal front end is in.
type Screen int

const (
	ScreenTitle    Screen = iota // Title and controls
	ScreenPlaying                // Active gameplay
	ScreenPaused                 // Gameplay frozen
	ScreenGameOver               // Final score, restart prompt
	ScreenShutdown               // Host is going away
)

// String returns the screen name used in logs.
func (s Screen) String() string {
	switch s {
	case ScreenTitle:
		return "title"
	case ScreenPlaying:
		return "playing"
	case ScreenPaused:
		return "paused"
	case ScreenGameOver:
		return "game over"
	case ScreenShutdown:
		return "shutdown"
	default:
		return fmt.Sprintf("Screen(%d)", int(s))
	}
}

// Options configures a terminal session.
type Options struct {
	// TermSizeFunc reports the terminal size. Defaults to the size of stdout.
	TermSizeFunc draw.TermSizeFunc
	// Rules overrides the embedded default rules.
	Rules *config.Rules
	// Logger receives session events. Defaults to a discarding logger so
	// nothing is written over the game screen.
	Logger *log.Logger
	// IdleTimeout ends the session after this long without input. Zero
	// disables it.
	IdleTimeout time.Duration
	// GameOptions are passed to every game.New call.
	GameOptions []game.Option
}

// session is the state of one terminal front end.
type session struct {
	rules        config.Rules
	logger       *log.Logger
	termSizeFunc draw.TermSizeFunc
	idleTimeout  time.Duration
	gameOpts     []game.Option

	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter

	game       *game.Game
	debris     *debris
	screen     Screen
	prevScreen Screen
	running    bool

	frame       int
	lastFrame   time.Time
	lastWave    int
	lastTwinkle time.Time
	lastInput   time.Time
	overAt      time.Time
	shutdownAt  time.Time
	prevIdle    bool
}

func newSession(w io.Writer, opts Options, now time.Time) (*session, error) {
	rules := config.DefaultRules()
	if opts.Rules != nil {
		rules = *opts.Rules
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to get terminal size: %w", err)
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	bounds := rules.Boundary.Rect()
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, float64(bounds.W), float64(bounds.H))
	canvas.SetOffset(offsetCol, offsetRow)

	return &session{
		rules:        rules,
		logger:       logger,
		termSizeFunc: termSizeFunc,
		idleTimeout:  opts.IdleTimeout,
		gameOpts:     opts.GameOptions,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		debris:       newDebris(),
		screen:       ScreenTitle,
		prevScreen:   ScreenTitle,
		running:      true,
		lastInput:    now,
		lastTwinkle:  now,
	}, nil
}
