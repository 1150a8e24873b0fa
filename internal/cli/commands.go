package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aristath/jyotish/internal/domain"
	"github.com/aristath/jyotish/internal/services"
	"github.com/aristath/jyotish/internal/utils"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "jyotish %s\n", Version)
			return nil
		},
	}
}

func newChartCommand(opts *options) *cobra.Command {
	var charts string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the static context of a nativity",
		Example: `  jyotish chart --date 1980-04-02 --time 14:55 --lat 29.2397 --lon 75.8175 --tz +05:30
  jyotish chart --date 1980-04-02 --time 14:55 --lat 29.2397 --lon 75.8175 --charts D10,D60`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := containerFrom(cmd)
			if err != nil {
				return err
			}
			birth, err := opts.birthInput()
			if err != nil {
				return err
			}

			var intent *domain.Intent
			if codes := domain.SplitDivisionCodes(charts); len(codes) > 0 {
				intent = &domain.Intent{DivisionalCharts: codes}
			}

			frag, err := c.ContextBuilder.ChartReport(cmd.Context(), birth, intent)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), frag)
		},
	}

	cmd.Flags().StringVar(&charts, "charts", "", "Extra divisional charts, e.g. D10,D60 (D1 and D9 are always included)")
	return cmd
}

func newDashaCommand(opts *options) *cobra.Command {
	var asOf, from, to string
	var depth int

	cmd := &cobra.Command{
		Use:   "dasha",
		Short: "Print current dasha stacks and timelines for every system",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := containerFrom(cmd)
			if err != nil {
				return err
			}
			birth, err := opts.birthInput()
			if err != nil {
				return err
			}
			if depth < 1 || depth > 5 {
				return domain.Malformed("cli.dasha", "depth", "expected 1-5, got %d", depth)
			}

			at, err := utils.ParseMoment(asOf, time.Now().UTC())
			if err != nil {
				return domain.Malformed("cli.dasha", "as-of", "%v", err)
			}
			start, err := utils.ParseMoment(from, birth.UTC())
			if err != nil {
				return domain.Malformed("cli.dasha", "from", "%v", err)
			}
			end, err := utils.ParseMoment(to, at.AddDate(20, 0, 0))
			if err != nil {
				return domain.Malformed("cli.dasha", "to", "%v", err)
			}

			frag, errs, err := c.ContextBuilder.Dashas(cmd.Context(), birth, at, start, end, depth)
			if err != nil {
				return err
			}
			for _, e := range errs {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s: %s\n", e.Feature, e.Message)
			}
			return opts.print(cmd.OutOrStdout(), frag)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Moment for the current stacks (default: now)")
	cmd.Flags().StringVar(&from, "from", "", "Timeline start (default: birth)")
	cmd.Flags().StringVar(&to, "to", "", "Timeline end (default: as-of + 20 years)")
	cmd.Flags().IntVar(&depth, "depth", 1, "Timeline depth, 1 (maha) to 5 (prana)")
	return cmd
}

func newTransitsCommand(opts *options) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "transits",
		Short: "Sweep slow-planet transits against the natal chart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := containerFrom(cmd)
			if err != nil {
				return err
			}
			birth, err := opts.birthInput()
			if err != nil {
				return err
			}

			start, err := utils.ParseMoment(from, time.Now().UTC().Truncate(24*time.Hour))
			if err != nil {
				return domain.Malformed("cli.transits", "from", "%v", err)
			}
			end, err := utils.ParseMoment(to, start.AddDate(1, 0, 0))
			if err != nil {
				return domain.Malformed("cli.transits", "to", "%v", err)
			}

			frag, err := c.ContextBuilder.Transits(cmd.Context(), birth, start, end)
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), frag)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Window start (default: today)")
	cmd.Flags().StringVar(&to, "to", "", "Window end (default: from + 1 year)")
	return cmd
}

func newContextCommand(opts *options) *cobra.Command {
	var asOf, intentArg string

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Print the full static and dynamic context",
		Example: `  jyotish context --date 1980-04-02 --time 14:55 --lat 29.2397 --lon 75.8175 \
    --intent '{"divisional_charts":["D10"],"needs_transits":true}'
  jyotish context ... --intent @intent.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := containerFrom(cmd)
			if err != nil {
				return err
			}
			birth, err := opts.birthInput()
			if err != nil {
				return err
			}
			at, err := utils.ParseMoment(asOf, time.Time{})
			if err != nil {
				return domain.Malformed("cli.context", "as-of", "%v", err)
			}
			intent, err := parseIntent(intentArg)
			if err != nil {
				return err
			}

			result, err := c.ContextBuilder.Build(cmd.Context(), services.Request{Birth: birth, Intent: intent, AsOf: at})
			if err != nil {
				return err
			}
			return opts.print(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Moment the dynamic context is computed for (default: now)")
	cmd.Flags().StringVar(&intentArg, "intent", "", "Intent as inline JSON or @file")
	return cmd
}

// parseIntent reads inline JSON or, with a leading @, a JSON file
func parseIntent(arg string) (*domain.Intent, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, nil
	}
	raw := []byte(arg)
	if strings.HasPrefix(arg, "@") {
		data, err := os.ReadFile(arg[1:])
		if err != nil {
			return nil, fmt.Errorf("failed to read intent file: %w", err)
		}
		raw = data
	}

	var intent domain.Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, domain.Malformed("cli.context", "intent", "invalid JSON: %v", err)
	}
	return &intent, nil
}
