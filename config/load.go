package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crypticcoin/dpos/consensus/dpos/model"
)

// Load builds a Config by binding cmd's flags into a fresh viper instance,
// allowing environment variable overrides, and unmarshalling the result.
// It then validates the quorum arithmetic so a misconfigured node fails at
// startup rather than inside the voter's hot path.
func Load(cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DPOS")
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, model.NewConfigurationErrorf("could not bind flags: %v", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, model.NewConfigurationErrorf("could not unmarshal config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the quorum arithmetic spec.md §3 requires, duplicating the
// check voter.New performs so misconfiguration is caught before any voter is
// constructed.
func (c *Config) Validate() error {
	if c.MinQuorum > c.NumOfVoters {
		return model.NewConfigurationErrorf("min-quorum (%d) must not exceed num-of-voters (%d)", c.MinQuorum, c.NumOfVoters)
	}
	if lower := (2*c.NumOfVoters + 2) / 3; c.MinQuorum < lower {
		return model.NewConfigurationErrorf("min-quorum (%d) must be at least ceil(2*num-of-voters/3) = %d", c.MinQuorum, lower)
	}
	if c.ArchiveDir == "" {
		return model.NewConfigurationErrorf("archive-dir must not be empty")
	}
	return nil
}
