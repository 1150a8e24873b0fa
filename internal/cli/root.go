// Package cli provides the command-line interface of the inference engine.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aristath/jyotish/internal/config"
	"github.com/aristath/jyotish/internal/di"
	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/pkg/logger"
)

// Version information (set at build time).
var Version = "0.1.0"

// birthFlags are the persistent flags describing the nativity
type birthFlags struct {
	date     string
	clock    string
	lat      float64
	lon      float64
	timezone string
}

// options are shared by every subcommand
type options struct {
	birth    birthFlags
	logLevel string
	compact  bool
}

// containerKey stores the wired container in the command context
type containerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "jyotish",
		Short: "Vedic astrological inference engine",
		Long: `jyotish computes a sidereal natal chart and everything derived from it:
divisional charts, dignities, strengths, yogas, dasha periods, transits and
annual charts. Results are printed as JSON.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip wiring for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}
			log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: true, Output: cmd.ErrOrStderr()})

			container, err := di.Wire(cfg, log)
			if err != nil {
				return fmt.Errorf("failed to wire dependencies: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), containerKey{}, container))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if c, ok := cmd.Context().Value(containerKey{}).(*di.Container); ok {
				return c.Close()
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.birth.date, "date", "", "Birth date, YYYY-MM-DD")
	flags.StringVar(&opts.birth.clock, "time", "", "Local birth time, HH:MM[:SS]")
	flags.Float64Var(&opts.birth.lat, "lat", 0, "Latitude in degrees, north positive")
	flags.Float64Var(&opts.birth.lon, "lon", 0, "Longitude in degrees, east positive")
	flags.StringVar(&opts.birth.timezone, "tz", "", "Timezone: +05:30, UTC or an IANA name (default: from longitude)")
	flags.StringVar(&opts.logLevel, "log-level", "error", "Log level (debug|info|warn|error)")
	flags.BoolVar(&opts.compact, "compact", false, "Print JSON on one line")

	// Add subcommands
	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newChartCommand(opts))
	rootCmd.AddCommand(newDashaCommand(opts))
	rootCmd.AddCommand(newTransitsCommand(opts))
	rootCmd.AddCommand(newContextCommand(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func containerFrom(cmd *cobra.Command) (*di.Container, error) {
	c, ok := cmd.Context().Value(containerKey{}).(*di.Container)
	if !ok {
		return nil, fmt.Errorf("engine not initialized")
	}
	return c, nil
}

func (o *options) birthInput() (domain.BirthInput, error) {
	if o.birth.date == "" || o.birth.clock == "" {
		return domain.BirthInput{}, domain.Malformed("cli", "birth", "--date and --time are required")
	}
	return domain.NewBirthInput(domain.BirthData{
		Date:      o.birth.date,
		Time:      o.birth.clock,
		Latitude:  o.birth.lat,
		Longitude: o.birth.lon,
		Timezone:  o.birth.timezone,
	}, nil)
}

func (o *options) print(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	if !o.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
