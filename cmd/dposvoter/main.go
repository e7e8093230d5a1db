package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/crypticcoin/dpos/config"
	"github.com/crypticcoin/dpos/consensus/dpos/voter"
	votermetrics "github.com/crypticcoin/dpos/module/metrics/voter"
	"github.com/crypticcoin/dpos/storage/archive"
)

var rootCmd = &cobra.Command{
	Use:   "dposvoter",
	Short: "runs the delegated-BFT voting core for a masternode",
	RunE:  run,
}

func init() {
	config.InitializeFlags(rootCmd.Flags(), config.DefaultConfig())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Str("component", "dposvoter").Logger()

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	log = log.Level(lvl)
	log.Info().Msg("dposvoter starting up")

	db, err := badger.Open(badger.DefaultOptions(cfg.ArchiveDir).WithLogger(nil))
	if err != nil {
		log.Fatal().Err(err).Msg("could not open archive key-value store")
	}
	defer db.Close()

	arc := archive.New(db, log)

	host := noopWorld{}
	v, err := voter.New(host, log, cfg.NumOfVoters, cfg.MinQuorum)
	if err != nil {
		log.Fatal().Err(err).Msg("could not construct voter")
	}

	if err := arc.Replay(v); err != nil {
		log.Fatal().Err(err).Msg("could not replay archive")
	}

	locked := voter.NewLocked(v)

	registry := prometheus.NewRegistry()
	collector := votermetrics.NewCollector(registry)
	wrapped := voter.NewMetricsWrapper(locked, collector)

	go serveMetrics(log, cfg.MetricsAddress, registry)

	snap := wrapped.Snapshot()
	log.Info().
		Int("num_of_voters", cfg.NumOfVoters).
		Int("min_quorum", cfg.MinQuorum).
		Str("archive_dir", cfg.ArchiveDir).
		Uint16("replayed_round", snap.CurrentRound).
		Msg("dposvoter ready; awaiting host-side network/RPC wiring")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info().Msg("dposvoter shutting down")
	return nil
}

func serveMetrics(log zerolog.Logger, addr string, registry *prometheus.Registry) {
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	mux := newMetricsMux(handler)
	if err := httpListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics server stopped")
	}
}
