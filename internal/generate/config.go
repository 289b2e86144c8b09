package generate

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/mitchellh/go-homedir"
)

// Default partition sizes in grid cells.
const (
	DefaultMinLeafSize = 16
	DefaultMaxLeafSize = 64
	DefaultSplitChance = 0.75
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid generator config")

// Config drives one generation call.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Terminal nodes never shrink below MinLeafSize on either axis and are
	// always split while wider or taller than MaxLeafSize.
	MinLeafSize int `yaml:"min_leaf_size"`
	MaxLeafSize int `yaml:"max_leaf_size"`

	// MinRoomSize is the smallest room edge; defaults to MinLeafSize-2.
	MinRoomSize int `yaml:"min_room_size"`

	// SplitChance is the probability that a node already within size
	// limits is split anyway.
	SplitChance float64 `yaml:"split_chance"`

	// Treasure is how many treasure markers to scatter between the start
	// and exit rooms.
	Treasure int `yaml:"treasure"`

	// Seed feeds Rand when Rand is nil. Zero means seed from the clock.
	Seed int64 `yaml:"seed"`

	Rand *rand.Rand `yaml:"-"`
}

// DefaultConfig returns the standard partition settings for a width x height
// dungeon. A zero seed is replaced by a clock seed when the config is used.
func DefaultConfig(width, height int, seed int64) Config {
	return Config{
		Width:       width,
		Height:      height,
		MinLeafSize: DefaultMinLeafSize,
		MaxLeafSize: DefaultMaxLeafSize,
		MinRoomSize: DefaultMinLeafSize - 2,
		SplitChance: DefaultSplitChance,
		Seed:        seed,
	}
}

// Validate checks the config for values no dungeon can be built from.
// A width or height below MinLeafSize is accepted: it yields a single leaf.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.MinLeafSize < 1:
		return fmt.Errorf("%w: min leaf size %d < 1", ErrInvalidConfig, c.MinLeafSize)
	case c.MaxLeafSize < c.MinLeafSize:
		return fmt.Errorf("%w: max leaf size %d < min leaf size %d", ErrInvalidConfig, c.MaxLeafSize, c.MinLeafSize)
	case c.MinRoomSize < 1:
		return fmt.Errorf("%w: min room size %d < 1", ErrInvalidConfig, c.MinRoomSize)
	case c.SplitChance < 0 || c.SplitChance > 1:
		return fmt.Errorf("%w: split chance %v outside [0,1]", ErrInvalidConfig, c.SplitChance)
	case c.Treasure < 0:
		return fmt.Errorf("%w: treasure count %d < 0", ErrInvalidConfig, c.Treasure)
	}
	return nil
}

// rng returns the random source for this config, creating one from Seed
// (or the clock) on first use.
func (c *Config) rng() *rand.Rand {
	if c.Rand == nil {
		if c.Seed == 0 {
			c.Seed = time.Now().UnixNano()
		}
		c.Rand = rand.New(rand.NewSource(c.Seed))
	}
	return c.Rand
}

// LoadConfig reads a YAML config file over DefaultConfig. The path may start
// with "~".
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig(0, 0, 0)
	full, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("expand config path: %w", err)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", full, err)
	}
	return cfg, nil
}
