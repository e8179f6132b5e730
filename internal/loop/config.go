package loop

import "time"

// Frame pacing. The game engine ticks every TickEveryFrames frames; input and
// drawing run every frame.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	TickEveryFrames = 2
)

// Maximum render resolution in terminal cells. Larger terminals get a centred
// render area with a border. 120x45 cells keeps the 4:3 playfield undistorted
// on typical 1:2 character cells.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 45
)

// Animation
const (
	TwinklePeriod      = 250 * time.Millisecond
	PromptBlinkPeriod  = 600 * time.Millisecond
	ShotWidth          = 2
	ShotLength         = 10 // logical units drawn behind a shot's point
	StarMinBrightness  = 2  // dimmer stars are not drawn on the terminal
	GameOverInputDelay = 1 * time.Second
)

// Inactivity, used by hosts that set Options.IdleTimeout.
const (
	IdleWarnBefore = 30 * time.Second
)

// Shutdown
const (
	ShutdownDisplayTime = 3 * time.Second // message shown before the session ends
)

// Explosions
const (
	ExplosionParticles = 12
	ExplosionSpeed     = 120.0 // logical units per second
	ExplosionLifetime  = 0.5   // seconds
)
