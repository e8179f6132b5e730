package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/invaders/internal/geom"
	"github.com/tomz197/invaders/internal/object"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// RulesEnvVar names the environment variable holding a rules file path.
const RulesEnvVar = "INVADERS_RULES"

// Boundary is the playable area.
type Boundary struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Rect returns the boundary as a rectangle.
func (b Boundary) Rect() geom.Rect {
	return geom.Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Row is one row of the invader formation.
type Row struct {
	Type  object.ShipType `yaml:"type"`
	Score int             `yaml:"score"`
}

// Formation describes where a new wave's invaders are placed.
type Formation struct {
	Origin        geom.Point `yaml:"origin"`
	Columns       int        `yaml:"columns"`
	ColumnSpacing int        `yaml:"columnSpacing"`
	RowSpacing    int        `yaml:"rowSpacing"`
	Rows          []Row      `yaml:"rows"` // top row first
}

// Rules holds every tunable of a game session.
type Rules struct {
	Boundary       Boundary      `yaml:"boundary"`
	PlayerStart    *geom.Point   `yaml:"playerStart,omitempty"`
	Lives          int           `yaml:"lives"`
	MaxWaves       int           `yaml:"maxWaves"`
	FramesToSkip   int           `yaml:"framesToSkip"` // decremented before wave 1
	MaxPlayerShots int           `yaml:"maxPlayerShots"`
	InvaderMargin  int           `yaml:"invaderMargin"`
	PlayerMargin   int           `yaml:"playerMargin"`
	Stars          int           `yaml:"stars"`
	DeathAnimation time.Duration `yaml:"deathAnimation"`
	Formation      Formation     `yaml:"formation"`
}

// DefaultRules returns the built-in rules.
func DefaultRules() Rules {
	var rules Rules
	if err := yaml.Unmarshal(defaultRulesYAML, &rules); err != nil {
		panic(fmt.Sprintf("config: embedded rules are invalid: %v", err))
	}
	return rules
}

// ParseRules lays YAML data over the default rules and validates the result.
func ParseRules(data []byte) (Rules, error) {
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid rules: %w", err)
	}
	return rules, nil
}

// LoadRules reads a rules file and lays it over the defaults.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data)
}

// RulesFromEnv loads the file named by INVADERS_RULES, or returns the defaults
// when the variable is unset or empty.
func RulesFromEnv() (Rules, error) {
	path := GetEnv(RulesEnvVar, "")
	if path == "" {
		return DefaultRules(), nil
	}
	return LoadRules(path)
}

// PlayerStartPoint returns where the player ship starts.
func (r Rules) PlayerStartPoint() geom.Point {
	if r.PlayerStart != nil {
		return *r.PlayerStart
	}
	b := r.Boundary.Rect()
	return geom.Point{X: b.Right() - 100, Y: b.Bottom() - 50}
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	if r.Boundary.Width <= 0 || r.Boundary.Height <= 0 {
		return fmt.Errorf("boundary must have positive size, got %dx%d", r.Boundary.Width, r.Boundary.Height)
	}
	if r.Lives < 0 {
		return fmt.Errorf("lives cannot be negative, got %d", r.Lives)
	}
	if r.MaxWaves < 1 {
		return fmt.Errorf("maxWaves must be at least 1, got %d", r.MaxWaves)
	}
	if r.FramesToSkip <= r.MaxWaves {
		return fmt.Errorf("framesToSkip must exceed maxWaves (%d), got %d", r.MaxWaves, r.FramesToSkip)
	}
	if r.MaxPlayerShots < 1 {
		return fmt.Errorf("maxPlayerShots must be at least 1, got %d", r.MaxPlayerShots)
	}
	if r.InvaderMargin < 0 || r.PlayerMargin < 0 {
		return fmt.Errorf("margins cannot be negative, got invader=%d player=%d", r.InvaderMargin, r.PlayerMargin)
	}
	if r.Stars < 0 {
		return fmt.Errorf("stars cannot be negative, got %d", r.Stars)
	}
	if r.DeathAnimation <= 0 {
		return fmt.Errorf("deathAnimation must be positive, got %s", r.DeathAnimation)
	}

	bounds := r.Boundary.Rect()
	start := geom.NewRect(r.PlayerStartPoint(), object.PlayerSize)
	if start.Left() < bounds.Left() || start.Right() > bounds.Right() ||
		start.Top() < bounds.Top() || start.Bottom() > bounds.Bottom() {
		return fmt.Errorf("player start %v is outside the boundary", r.PlayerStartPoint())
	}

	return r.Formation.validate(bounds)
}

func (f Formation) validate(bounds geom.Rect) error {
	if f.Columns < 1 {
		return fmt.Errorf("formation needs at least 1 column, got %d", f.Columns)
	}
	if len(f.Rows) == 0 {
		return fmt.Errorf("formation rows cannot be empty")
	}
	if f.ColumnSpacing < object.InvaderSize.W || f.RowSpacing <= 0 {
		return fmt.Errorf("formation spacing too small: column=%d row=%d", f.ColumnSpacing, f.RowSpacing)
	}
	for i, row := range f.Rows {
		if row.Score < 0 {
			return fmt.Errorf("formation row %d: score cannot be negative, got %d", i, row.Score)
		}
	}

	right := f.Origin.X + (f.Columns-1)*f.ColumnSpacing + object.InvaderSize.W
	bottom := f.Origin.Y + (len(f.Rows)-1)*f.RowSpacing + object.InvaderSize.H
	if f.Origin.X < bounds.Left() || f.Origin.Y < bounds.Top() ||
		right > bounds.Right() || bottom > bounds.Bottom() {
		return fmt.Errorf("formation does not fit inside the boundary")
	}
	return nil
}
