// Package config is the viper/cobra-backed configuration surface for the
// dPoS voter binary, modeled on network/netconf's flag-and-default-config
// pattern.
package config

import (
	"time"

	"github.com/spf13/pflag"
)

const (
	flagNumOfVoters    = "num-of-voters"
	flagMinQuorum      = "min-quorum"
	flagArchiveDir     = "archive-dir"
	flagRoundTooLong   = "round-too-long-timeout"
	flagMetricsAddress = "metrics-address"
	flagLogLevel       = "log-level"
)

// Config holds every value the voter binary needs at startup. Each field is
// matched to its flag and viper key by an explicit mapstructure tag carrying
// the flag name.
type Config struct {
	// NumOfVoters is the fixed committee size n.
	NumOfVoters int `mapstructure:"num-of-voters"`

	// MinQuorum is the configured quorum threshold; must satisfy
	// ceil(2n/3) <= MinQuorum <= NumOfVoters.
	MinQuorum int `mapstructure:"min-quorum"`

	// ArchiveDir is the badger data directory for the persistent vote/block
	// archive.
	ArchiveDir string `mapstructure:"archive-dir"`

	// RoundTooLong is the host's timeout before it calls OnRoundTooLong.
	RoundTooLong time.Duration `mapstructure:"round-too-long-timeout"`

	// MetricsAddress is the listen address for the Prometheus /metrics
	// endpoint.
	MetricsAddress string `mapstructure:"metrics-address"`

	// LogLevel is the zerolog level name (e.g. "info", "debug").
	LogLevel string `mapstructure:"log-level"`
}

// DefaultConfig returns the out-of-the-box configuration for a 4-masternode
// committee, matching the example committee size used in testing.
func DefaultConfig() *Config {
	return &Config{
		NumOfVoters:    4,
		MinQuorum:      3,
		ArchiveDir:     "./dpos-archive",
		RoundTooLong:   10 * time.Second,
		MetricsAddress: ":9000",
		LogLevel:       "info",
	}
}

// InitializeFlags registers every configuration flag on flags, using the
// values of defaults as each flag's default, following
// network/netconf.InitializeNetworkFlags.
func InitializeFlags(flags *pflag.FlagSet, defaults *Config) {
	flags.Int(flagNumOfVoters, defaults.NumOfVoters, "number of masternodes in the voting committee")
	flags.Int(flagMinQuorum, defaults.MinQuorum, "minimum number of matching votes required to commit, must be at least ceil(2n/3)")
	flags.String(flagArchiveDir, defaults.ArchiveDir, "badger data directory for the persistent vote/block archive")
	flags.Duration(flagRoundTooLong, defaults.RoundTooLong, "timeout after which the host forces a PASS round-vote for the current round")
	flags.String(flagMetricsAddress, defaults.MetricsAddress, "listen address for the Prometheus metrics endpoint")
	flags.String(flagLogLevel, defaults.LogLevel, "zerolog level name (trace, debug, info, warn, error)")
}
