package config

import (
	"github.com/caarlos0/env/v11"

	"parques/internal/game"
)

// Config is the process configuration, read from the environment. The rule
// flags cover the variant points the Parqués family leaves ambiguous; the
// defaults are the common Colombian table rules.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	ExitRollValue       int  `env:"EXIT_ROLL_VALUE" envDefault:"5"`
	WallBlocks          bool `env:"WALL_BLOCKS" envDefault:"true"`
	ExtraTurnOnJailExit bool `env:"EXTRA_TURN_ON_JAIL_EXIT" envDefault:"false"`
	ExtraTurnOnCapture  bool `env:"EXTRA_TURN_ON_CAPTURE" envDefault:"false"`
}

func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Rules maps the configured variant flags onto the engine's rule set.
func (c Config) Rules() game.Rules {
	return game.Rules{
		ExitRoll:            c.ExitRollValue,
		WallBlocks:          c.WallBlocks,
		ExtraTurnOnJailExit: c.ExtraTurnOnJailExit,
		ExtraTurnOnCapture:  c.ExtraTurnOnCapture,
	}
}
