// Package loop runs an invaders game on a terminal: it reads keys, ticks the
// engine and renders snapshots with half-block graphics.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/geom"
	"github.com/tomz197/invaders/internal/input"
)

// Run plays games on the terminal behind r and w until the player quits, the
// input closes, the session idles out, or ctx is cancelled. On cancellation
// a shutdown notice is shown briefly before Run returns.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	s, err := newSession(w, opts, time.Now())
	if err != nil {
		return err
	}
	stream := input.StartStream(r)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	for s.running {
		frameStart := time.Now()

		if ctx.Err() != nil {
			s.shutdown(frameStart)
		}

		// ===== INPUT / UPDATE =====
		if err := s.update(stream.Read(frameStart), frameStart); err != nil {
			return err
		}
		if err := s.updateScreen(); err != nil {
			return err
		}

		// ===== DRAW =====
		if err := s.drawFrame(frameStart); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// update applies one frame of input and advances the current screen.
func (s *session) update(in input.Input, now time.Time) error {
	if in.Left || in.Right || in.Fire || in.Pause || in.Start {
		s.lastInput = now
	}
	if in.Quit {
		s.running = false
		return nil
	}
	if s.idleTimeout > 0 && s.screen != ScreenShutdown {
		if idle := now.Sub(s.lastInput); idle >= s.idleTimeout {
			s.logger.Info("disconnecting idle session", "idle", idle.Round(time.Second))
			s.running = false
			return nil
		}
	}

	switch s.screen {
	case ScreenTitle:
		if in.Start {
			return s.startGame(now)
		}
	case ScreenPlaying:
		s.updatePlaying(in, now)
	case ScreenPaused:
		if in.Pause || in.Start {
			s.screen = ScreenPlaying
		}
	case ScreenGameOver:
		s.twinkle(now)
		if in.Start && now.Sub(s.overAt) >= GameOverInputDelay {
			return s.startGame(now)
		}
	case ScreenShutdown:
		if in.Start || now.Sub(s.shutdownAt) >= ShutdownDisplayTime {
			s.running = false
		}
	}
	return nil
}

// updatePlaying feeds input to the engine and ticks it on the tick cadence.
func (s *session) updatePlaying(in input.Input, now time.Time) {
	if in.Pause {
		s.screen = ScreenPaused
		return
	}
	if in.Fire {
		s.game.FirePlayerShot()
	}

	s.frame++
	if s.frame%TickEveryFrames == 0 {
		switch {
		case in.Left && !in.Right:
			s.game.MovePlayer(geom.Left)
		case in.Right && !in.Left:
			s.game.MovePlayer(geom.Right)
		}
		s.game.Go()
		if wave := s.game.Wave(); wave != s.lastWave && !s.game.Over() {
			s.lastWave = wave
			s.logger.Debug("wave started", "wave", wave, "score", s.game.Score())
		}
	}
	s.twinkle(now)

	if s.game.Over() {
		s.screen = ScreenGameOver
		s.overAt = now
	}
}

// startGame replaces the current game with a fresh one.
func (s *session) startGame(now time.Time) error {
	opts := append([]game.Option{game.WithGameOverHandler(s.onGameOver)}, s.gameOpts...)
	g, err := game.New(s.rules, opts...)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	s.game = g
	s.debris.reset()
	s.screen = ScreenPlaying
	s.frame = 0
	s.lastWave = g.Wave()
	s.lastTwinkle = now
	s.logger.Debug("game started", "waves", g.MaxWaves())
	return nil
}

func (s *session) onGameOver(reason game.Reason) {
	s.logger.Info("game over",
		"reason", reason,
		"score", s.game.Score(),
		"wave", s.game.Snapshot().DisplayWave(),
	)
}

func (s *session) twinkle(now time.Time) {
	if now.Sub(s.lastTwinkle) >= TwinklePeriod {
		s.game.Twinkle()
		s.lastTwinkle = now
	}
}

// shutdown switches to the shutdown notice once.
func (s *session) shutdown(now time.Time) {
	if s.screen == ScreenShutdown {
		return
	}
	s.screen = ScreenShutdown
	s.shutdownAt = now
	s.logger.Debug("session shutting down")
}

// idleWarning reports whether the inactivity warning should be shown.
func (s *session) idleWarning(now time.Time) bool {
	if s.idleTimeout <= 0 || s.screen == ScreenShutdown {
		return false
	}
	return now.Sub(s.lastInput) >= s.idleTimeout-IdleWarnBefore
}

// updateScreen checks for terminal resize and updates canvas scaling.
func (s *session) updateScreen() error {
	termWidth, termHeight, err := s.termSizeFunc()
	if err != nil {
		return fmt.Errorf("failed to get terminal size: %w", err)
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		s.chunkWriter.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.chunkWriter.SetOffset(offsetCol, offsetRow)
	return nil
}

// clampTermSize clamps terminal dimensions to the max render resolution and
// computes the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = max(min(termWidth, MaxTermWidth), 1)
	renderHeight = max(min(termHeight, MaxTermHeight), 1)
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
