package main

import (
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/k-gruenberg/nett/table"
)

// Heuristic constants, adjustable through a TOML file so that nothing is
// baked in as hidden global state.
type config struct {
	MinUniqueness                float64  `toml:"min_uniqueness"`
	BlacklistThreshold           int      `toml:"blacklist_threshold"`
	AllowBlacklistedAsLastResort bool     `toml:"allow_blacklisted_as_last_resort"`
	ExtraBlacklist               []string `toml:"extra_blacklist"`

	GridStep float64 `toml:"grid_step"`
	Workers  int     `toml:"workers"`
}

func defaultConfig() config {
	return config{
		MinUniqueness:      0.5,
		BlacklistThreshold: 1,
		GridStep:           0.1,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// heuristic builds the identifying-column heuristic from the
// configuration. Extra blacklist patterns are anchored to whole cells.
func (cfg config) heuristic() (table.Heuristic, error) {
	h := table.Heuristic{
		MinUniqueness:                cfg.MinUniqueness,
		BlacklistThreshold:           cfg.BlacklistThreshold,
		AllowBlacklistedAsLastResort: cfg.AllowBlacklistedAsLastResort,
		Blacklist:                    table.DefaultBlacklist(),
	}
	for _, pattern := range cfg.ExtraBlacklist {
		re, err := regexp.Compile(`^(?:` + pattern + `)$`)
		if err != nil {
			return table.Heuristic{}, err
		}
		h.Blacklist = append(h.Blacklist, re)
	}
	return h, nil
}
