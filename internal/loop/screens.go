package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/sprite"
)

// titleArt is the title banner (figlet "small" font).
var titleArt = []string{
	` ___ _  ___   ___   ___  ___ ___  ___ `,
	`|_ _| \| \ \ / /_\ |   \| __| _ \/ __|`,
	` | || .  |\ V / _ \| |) | _||   /\__ \`,
	`|___|_|\_| \_/_/ \_\___/|___|_|_\|___/`,
}

var controlLines = []string{
	"A D / < >  . . . .  Move",
	"SPACE  . . . . . .  Fire",
	"P  . . . . . . . . Pause",
	"Q  . . . . . . . .  Quit",
}

// drawFrame draws the current frame. On screen transitions the terminal is
// cleared so text from the previous screen does not linger.
func (s *session) drawFrame(now time.Time) error {
	idle := s.idleWarning(now)
	if s.screen != s.prevScreen || idle != s.prevIdle {
		s.chunkWriter.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
		s.prevScreen = s.screen
		s.prevIdle = idle
	}

	s.canvas.Clear()

	if !s.lastFrame.IsZero() && s.screen != ScreenPaused {
		s.debris.update(now.Sub(s.lastFrame))
	}
	s.lastFrame = now

	var snap *game.Snapshot
	if s.game != nil && s.screen != ScreenTitle && s.screen != ScreenShutdown {
		sn := s.game.Snapshot()
		snap = &sn
		s.debris.observe(sn)
		drawSnapshot(s.canvas, sn, sprite.Cell(s.frame))
		s.debris.draw(s.canvas)
	}

	s.canvas.Render(s.chunkWriter)
	s.canvas.RenderBorder(s.chunkWriter)
	s.drawUI(snap, idle, now)

	return s.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current screen.
func (s *session) drawUI(snap *game.Snapshot, idle bool, now time.Time) {
	centerX := s.canvas.TerminalWidth() / 2
	centerY := s.canvas.TerminalHeight() / 2

	if s.screen == ScreenShutdown {
		s.drawShutdownScreen(centerX, centerY, now)
		return
	}
	if idle {
		s.drawInactivityScreen(centerX, centerY, now)
		return
	}

	switch s.screen {
	case ScreenTitle:
		s.drawStartScreen(centerX, centerY, now)
	case ScreenPlaying:
		s.drawPlayingHUD(snap)
	case ScreenPaused:
		s.drawPlayingHUD(snap)
		s.writeCentered(centerX, centerY-1, "P A U S E D")
		s.writeCentered(centerX, centerY+1, "Press P to resume")
	case ScreenGameOver:
		s.drawPlayingHUD(snap)
		s.drawGameOverScreen(snap, centerX, centerY, now)
	}
}

func (s *session) writeCentered(centerX, row int, text string) {
	s.chunkWriter.WriteAt(centerX-len([]rune(text))/2, row, text)
}

// drawStartScreen draws the title screen.
func (s *session) drawStartScreen(centerX, centerY int, now time.Time) {
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}

	cw := s.chunkWriter
	titleStartY := centerY - 7
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, titleStartY+i, line)
	}

	s.writeCentered(centerX, titleStartY+len(titleArt)+1,
		fmt.Sprintf("~ %d waves, %d ships ~", s.rules.MaxWaves, s.rules.Lives+1))

	controlsY := titleStartY + len(titleArt) + 3
	s.writeCentered(centerX, controlsY, "Controls")
	for i, line := range controlLines {
		s.writeCentered(centerX, controlsY+1+i, line)
	}

	// Fixed width so the blink fully erases the prompt.
	prompt := ">>  Press SPACE to Start  <<"
	if now.UnixMilli()/PromptBlinkPeriod.Milliseconds()%2 != 0 {
		prompt = fmt.Sprintf("%*s", len(prompt), "")
	}
	s.writeCentered(centerX, controlsY+len(controlLines)+2, prompt)
}

// drawPlayingHUD draws the wave and score line. Fields are fixed width so
// shrinking values leave no residue.
func (s *session) drawPlayingHUD(snap *game.Snapshot) {
	if snap == nil {
		return
	}
	hud := fmt.Sprintf("WAVE %d/%d  SCORE %-8d", snap.DisplayWave(), snap.MaxWaves, snap.Score)
	s.chunkWriter.WriteAt(2, 1, hud)
}

// drawGameOverScreen draws the result and the restart prompt.
func (s *session) drawGameOverScreen(snap *game.Snapshot, centerX, centerY int, now time.Time) {
	if snap == nil {
		return
	}
	title, detail := gameOverText(snap.Reason)
	s.writeCentered(centerX, centerY-2, title)
	s.writeCentered(centerX, centerY, detail)
	s.writeCentered(centerX, centerY+1, fmt.Sprintf("Final score: %d", snap.Score))
	if now.Sub(s.overAt) >= GameOverInputDelay {
		s.writeCentered(centerX, centerY+3, "Press SPACE to play again, Q to quit")
	}
}

// gameOverText returns the headline and explanation for a reason.
func gameOverText(reason game.Reason) (title, detail string) {
	switch reason {
	case game.ReasonWavesCleared:
		return "Y O U   W I N", "Every wave has been cleared"
	case game.ReasonInvadersLanded:
		return "G A M E   O V E R", "The invaders have landed"
	case game.ReasonLivesExhausted:
		return "G A M E   O V E R", "Your last ship was destroyed"
	default:
		return "G A M E   O V E R", ""
	}
}

// drawInactivityScreen warns an idle player before the host disconnects them.
func (s *session) drawInactivityScreen(centerX, centerY int, now time.Time) {
	left := s.idleTimeout - now.Sub(s.lastInput)
	s.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")
	s.writeCentered(centerX, centerY,
		fmt.Sprintf("You will be disconnected in %3d seconds", int(left.Seconds())))
	s.writeCentered(centerX, centerY+2, "Move or fire to stay connected")
}

// drawShutdownScreen tells the player the host is going away.
func (s *session) drawShutdownScreen(centerX, centerY int, now time.Time) {
	left := ShutdownDisplayTime - now.Sub(s.shutdownAt)
	s.writeCentered(centerX, centerY-2, "SERVER SHUTTING DOWN")
	s.writeCentered(centerX, centerY, "Thanks for playing!")
	s.writeCentered(centerX, centerY+2,
		fmt.Sprintf("Disconnecting in %d seconds", max(int(left.Seconds()+0.5), 0)))
}
