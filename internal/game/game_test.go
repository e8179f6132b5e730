package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/geom"
	"github.com/tomz197/invaders/internal/object"
)

// stubRand replays fixed rolls and then keeps returning 0.
type stubRand struct {
	rolls []int
	next  int
}

func (s *stubRand) Intn(n int) int {
	if s.next >= len(s.rolls) {
		return 0
	}
	v := s.rolls[s.next] % n
	s.next++
	return v
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestGame builds a game on the default 800x600 rules without stars so
// the random source is only used by return fire.
func newTestGame(t *testing.T, rng object.Rand, opts ...Option) (*Game, *fakeClock) {
	t.Helper()
	rules := config.DefaultRules()
	rules.Stars = 0

	clock := &fakeClock{now: time.Unix(1_000_000, 0)}
	all := append([]Option{WithRand(rng), WithClock(clock)}, opts...)
	g, err := New(rules, all...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, clock
}

func TestNewGameStartsWaveOne(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})

	if g.Wave() != 1 || g.Score() != 0 || g.Lives() != 3 || g.Over() {
		t.Fatalf("wave=%d score=%d lives=%d over=%v", g.Wave(), g.Score(), g.Lives(), g.Over())
	}
	if len(g.invaders) != 30 {
		t.Fatalf("invaders = %d, want 30", len(g.invaders))
	}
	if g.framesToSkip != 6 {
		t.Errorf("framesToSkip = %d, want 6", g.framesToSkip)
	}
	if g.direction != geom.Right {
		t.Errorf("direction = %v, want right", g.direction)
	}
	if got := g.player.Location(); got != (geom.Point{X: 700, Y: 550}) {
		t.Errorf("player at %v, want {700 550}", got)
	}
	if len(g.livesTokens) != 3 {
		t.Errorf("lives tokens = %d, want 3", len(g.livesTokens))
	}
}

func TestFormationLayout(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})

	wantScores := []int{50, 40, 30, 20, 10}
	wantTypes := []object.ShipType{object.Satellite, object.Bug, object.Saucer, object.Spaceship, object.Star}
	for row := 0; row < 5; row++ {
		for col := 0; col < 6; col++ {
			inv := g.invaders[row*6+col]
			want := geom.Point{X: 50 + col*85, Y: 50 + row*50}
			if inv.Location() != want {
				t.Errorf("row %d col %d at %v, want %v", row, col, inv.Location(), want)
			}
			if inv.Score() != wantScores[row] || inv.Type() != wantTypes[row] {
				t.Errorf("row %d: score=%d type=%v", row, inv.Score(), inv.Type())
			}
		}
	}
}

func TestNewRejectsInvalidRules(t *testing.T) {
	rules := config.DefaultRules()
	rules.MaxPlayerShots = 0
	if _, err := New(rules); err == nil {
		t.Fatal("expected error for invalid rules")
	}
}

func TestShootInvaderEndToEnd(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})

	// Bottom-left invader is a Star at (50,250). One step up puts the shot at
	// (60,280), inside its hitbox.
	g.playerShots = append(g.playerShots, object.NewShot(geom.Point{X: 60, Y: 300}, geom.Up, g.bounds))

	g.Go()

	if len(g.invaders) != 29 {
		t.Fatalf("invaders = %d, want 29", len(g.invaders))
	}
	if g.Score() != 10 {
		t.Errorf("score = %d, want 10", g.Score())
	}
	if len(g.playerShots) != 0 {
		t.Errorf("player shots = %d, want 0", len(g.playerShots))
	}
	for _, inv := range g.invaders {
		if inv.Location() == (geom.Point{X: 50, Y: 250}) {
			t.Error("hit invader is still in the formation")
		}
	}
}

func TestOneShotDestroysOverlappingInvaders(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})
	g.invaders = []*object.Invader{
		object.NewInvader(object.Bug, geom.Point{X: 300, Y: 300}, 40),
		object.NewInvader(object.Star, geom.Point{X: 310, Y: 310}, 10),
		object.NewInvader(object.Saucer, geom.Point{X: 500, Y: 300}, 30),
	}
	g.playerShots = []*object.Shot{object.NewShot(geom.Point{X: 320, Y: 320}, geom.Up, g.bounds)}

	g.checkInvaderCollisions()

	if len(g.invaders) != 1 || g.invaders[0].Type() != object.Saucer {
		t.Fatalf("expected only the saucer to survive, got %d invaders", len(g.invaders))
	}
	if g.Score() != 50 {
		t.Errorf("score = %d, want 50", g.Score())
	}
	if len(g.playerShots) != 0 {
		t.Errorf("shot should be consumed")
	}
}

func TestFirePlayerShotLimit(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})

	for i := 0; i < 5; i++ {
		g.FirePlayerShot()
	}
	if len(g.playerShots) != 2 {
		t.Fatalf("player shots = %d, want 2", len(g.playerShots))
	}
	if got := g.playerShots[0].Location(); got != (geom.Point{X: 720, Y: 550}) {
		t.Errorf("shot spawned at %v, want the ship's top middle {720 550}", got)
	}
	if g.playerShots[0].Direction() != geom.Up {
		t.Errorf("player shot direction = %v", g.playerShots[0].Direction())
	}
}

func TestMovePlayerRespectsMargin(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})

	// The margin is checked against the current hitbox, so the last allowed
	// step ends flush with the boundary.
	for i := 0; i < 20; i++ {
		g.MovePlayer(geom.Right)
	}
	if got := g.player.Location().X; got != 760 {
		t.Errorf("right-most X = %d, want 760", got)
	}

	for i := 0; i < 200; i++ {
		g.MovePlayer(geom.Left)
	}
	if got := g.player.Location().X; got != 0 {
		t.Errorf("left-most X = %d, want 0", got)
	}

	g.MovePlayer(geom.Up)
	if got := g.player.Location(); got.Y != 550 {
		t.Errorf("vertical move changed Y to %d", got.Y)
	}
}

func TestFormationBouncesAtMargin(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})
	g.invaders = []*object.Invader{
		object.NewInvader(object.Bug, geom.Point{X: 670, Y: 100}, 40),
		object.NewInvader(object.Star, geom.Point{X: 200, Y: 150}, 10),
	}
	g.framesSkipped = g.framesToSkip - 1

	g.moveInvaders()

	if g.direction != geom.Left {
		t.Fatalf("direction = %v, want left after hitting the margin", g.direction)
	}
	if got := g.invaders[0].Location(); got != (geom.Point{X: 670, Y: 140}) {
		t.Errorf("edge invader at %v, want {670 140}", got)
	}
	if got := g.invaders[1].Location(); got != (geom.Point{X: 200, Y: 190}) {
		t.Errorf("inner invader at %v, want {200 190}: the whole formation steps down", got)
	}

	// Not due yet: nothing moves.
	g.moveInvaders()
	if got := g.invaders[0].Location(); got != (geom.Point{X: 670, Y: 140}) {
		t.Errorf("formation moved before it was due: %v", got)
	}

	g.framesSkipped = g.framesToSkip - 1
	g.moveInvaders()
	if got := g.invaders[0].Location(); got != (geom.Point{X: 660, Y: 140}) {
		t.Errorf("after turning, invader at %v, want {660 140}", got)
	}
}

func TestFormationMovesEveryNthFrame(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})
	start := g.invaders[0].Location()

	for i := 1; i < g.framesToSkip; i++ {
		g.moveInvaders()
		if g.invaders[0].Location() != start {
			t.Fatalf("formation moved on frame %d of %d", i, g.framesToSkip)
		}
	}
	g.moveInvaders()
	if got := g.invaders[0].Location(); got != start.Add(10, 0) {
		t.Errorf("formation at %v, want %v", got, start.Add(10, 0))
	}
}

func TestClearingWaveAdvancesSameTick(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})
	g.invaders = []*object.Invader{object.NewInvader(object.Bug, geom.Point{X: 300, Y: 100}, 40)}
	g.playerShots = []*object.Shot{
		object.NewShot(geom.Point{X: 310, Y: 140}, geom.Up, g.bounds),
		object.NewShot(geom.Point{X: 600, Y: 400}, geom.Up, g.bounds),
	}
	g.invaderShots = []*object.Shot{object.NewShot(geom.Point{X: 100, Y: 300}, geom.Down, g.bounds)}

	g.Go()

	if g.Wave() != 2 {
		t.Fatalf("wave = %d, want 2", g.Wave())
	}
	if g.Score() != 40 {
		t.Errorf("score = %d, want 40", g.Score())
	}
	if len(g.invaders) != 30 {
		t.Errorf("invaders = %d, want a fresh formation of 30", len(g.invaders))
	}
	if len(g.playerShots) != 0 || len(g.invaderShots) != 0 {
		t.Errorf("shots not cleared: player=%d invader=%d", len(g.playerShots), len(g.invaderShots))
	}
	for _, shots := range [][]*object.Shot{g.playerShots, g.invaderShots} {
		for i, s := range shots[:cap(shots)] {
			if s != nil {
				t.Errorf("cleared shot slice still references shot %d at %v", i, s.Location())
			}
		}
	}
	if g.framesToSkip != 5 {
		t.Errorf("framesToSkip = %d, want 5", g.framesToSkip)
	}
	if g.direction != geom.Right {
		t.Errorf("direction = %v, want right", g.direction)
	}
}

func TestAllWavesClearedEndsGame(t *testing.T) {
	var reasons []Reason
	g, _ := newTestGame(t, &stubRand{}, WithGameOverHandler(func(r Reason) {
		reasons = append(reasons, r)
	}))

	for wave := 1; wave <= 3; wave++ {
		if g.Wave() != wave {
			t.Fatalf("wave = %d, want %d", g.Wave(), wave)
		}
		g.invaders = nil
		g.Go()
	}

	if !g.Over() || g.Reason() != ReasonWavesCleared {
		t.Fatalf("over=%v reason=%v", g.Over(), g.Reason())
	}
	if len(g.invaders) != 0 {
		t.Errorf("invaders = %d, want none spawned after the last wave", len(g.invaders))
	}
	if len(reasons) != 1 || reasons[0] != ReasonWavesCleared {
		t.Errorf("game over handler calls = %v", reasons)
	}
	if snap := g.Snapshot(); snap.DisplayWave() != 3 {
		t.Errorf("DisplayWave() = %d, want 3", snap.DisplayWave())
	}
}

func TestLivesAndGameOver(t *testing.T) {
	var calls int
	g, clock := newTestGame(t, &stubRand{}, WithGameOverHandler(func(Reason) { calls++ }))

	hit := func() {
		t.Helper()
		// One step down lands the shot at (720,560), inside the ship.
		g.invaderShots = append(g.invaderShots, object.NewShot(geom.Point{X: 720, Y: 540}, geom.Down, g.bounds))
		g.Go()
	}

	for want := 2; want >= 0; want-- {
		hit()
		if g.Over() {
			t.Fatalf("game over after hit leaving %d lives", want)
		}
		if g.Lives() != want || len(g.livesTokens) != want {
			t.Fatalf("lives=%d tokens=%d, want %d", g.Lives(), len(g.livesTokens), want)
		}
		if g.PlayerAlive() {
			t.Fatal("ship should be down after a hit")
		}

		// A dead ship freezes the game.
		before := g.invaders[0].Location()
		for i := 0; i < 20; i++ {
			g.Go()
		}
		if g.invaders[0].Location() != before {
			t.Fatal("formation moved while the ship was down")
		}

		clock.Advance(3 * time.Second)
	}

	hit()
	if !g.Over() || g.Reason() != ReasonLivesExhausted {
		t.Fatalf("over=%v reason=%v after the 4th hit", g.Over(), g.Reason())
	}
	if calls != 1 {
		t.Errorf("game over handler called %d times, want 1", calls)
	}
	if g.Lives() != 0 {
		t.Errorf("Lives() = %d, want 0", g.Lives())
	}
}

func TestLivesTokensStayRightAligned(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})

	want := []geom.Rect{
		{X: 680, Y: 10, W: 40, H: 40},
		{X: 720, Y: 10, W: 40, H: 40},
		{X: 760, Y: 10, W: 40, H: 40},
	}
	for i, tok := range g.livesTokens {
		if tok != want[i] {
			t.Errorf("token %d = %v, want %v", i, tok, want[i])
		}
	}

	g.invaderShots = []*object.Shot{object.NewShot(geom.Point{X: 720, Y: 540}, geom.Down, g.bounds)}
	g.Go()
	if len(g.livesTokens) != 2 || g.livesTokens[1].Right() != 800 {
		t.Errorf("tokens after a hit = %v", g.livesTokens)
	}
}

func TestInvadersLandingEndsGame(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})
	// The ship's bottom edge is at 590.
	g.invaders = []*object.Invader{object.NewInvader(object.Bug, geom.Point{X: 300, Y: 550}, 40)}

	g.Go()

	if !g.Over() || g.Reason() != ReasonInvadersLanded {
		t.Fatalf("over=%v reason=%v", g.Over(), g.Reason())
	}
}

func TestTicksIgnoredAfterGameOver(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})
	g.invaders = []*object.Invader{object.NewInvader(object.Bug, geom.Point{X: 300, Y: 550}, 40)}
	g.Go()
	if !g.Over() {
		t.Fatal("expected game over")
	}

	before := g.Snapshot()
	g.FirePlayerShot()
	g.MovePlayer(geom.Left)
	for i := 0; i < 50; i++ {
		g.Go()
	}
	after := g.Snapshot()

	if len(after.PlayerShots) != len(before.PlayerShots) {
		t.Error("fired after game over")
	}
	if after.Player.Area != before.Player.Area {
		t.Error("ship moved after game over")
	}
	if after.Invaders[0].Area != before.Invaders[0].Area {
		t.Error("formation moved after game over")
	}
	if after.Wave != before.Wave || after.Score != before.Score {
		t.Error("wave or score changed after game over")
	}
}

func TestShotLimitsHoldOverLongGame(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g, clock := newTestGame(t, rng)

		for tick := 0; tick < 5000 && !g.Over(); tick++ {
			switch rng.Intn(3) {
			case 0:
				g.MovePlayer(geom.Left)
			case 1:
				g.MovePlayer(geom.Right)
			}
			g.FirePlayerShot()
			g.Go()
			clock.Advance(50 * time.Millisecond)

			if n := len(g.playerShots); n > 2 {
				t.Fatalf("seed %d tick %d: %d player shots", seed, tick, n)
			}
			if n := len(g.invaderShots); n > g.Wave()+1 {
				t.Fatalf("seed %d tick %d: %d invader shots in wave %d", seed, tick, n, g.Wave())
			}
			if g.Score() < 0 {
				t.Fatalf("seed %d tick %d: negative score", seed, tick)
			}
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g, _ := newTestGame(t, &stubRand{})
	g.FirePlayerShot()

	snap := g.Snapshot()
	if len(snap.Invaders) != 30 || len(snap.PlayerShots) != 1 || len(snap.LivesTokens) != 3 {
		t.Fatalf("snapshot counts: invaders=%d shots=%d tokens=%d",
			len(snap.Invaders), len(snap.PlayerShots), len(snap.LivesTokens))
	}
	if snap.Bounds != (geom.Rect{W: 800, H: 600}) || snap.MaxWaves != 3 || !snap.Player.Alive {
		t.Errorf("snapshot header = %+v", snap)
	}

	snap.Invaders[0].Area.X = -1
	snap.LivesTokens[0].X = -1
	if g.invaders[0].Location().X == -1 || g.livesTokens[0].X == -1 {
		t.Error("snapshot shares memory with the game")
	}
}

func TestTwinkleKeepsStarCount(t *testing.T) {
	rules := config.DefaultRules()
	g, err := New(rules, WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatal(err)
	}
	g.Twinkle()
	if n := len(g.Snapshot().Stars); n != rules.Stars {
		t.Errorf("stars = %d, want %d", n, rules.Stars)
	}
}
