package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/mcat-progress-api/internal/analytics"
	"github.com/noah-isme/mcat-progress-api/internal/models"
)

const dateLayout = "2006-01-02"

type analyzeOptions struct {
	file  string
	today string
	from  string
	to    string
}

func newAnalyzeCmd(load engineLoader) *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute the analytics dashboard for a profile export",
		Long: `Compute the analytics dashboard for a profile JSON document and print it.

The document uses the same shape the API returns for a profile, with practice_logs,
mcat_attempts, extracurriculars_v2 and ecs_targets embedded.

Examples:
  mcatctl analyze --file profile.json
  mcatctl analyze --file profile.json --today 2024-03-03 --from 2024-02-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, load, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "profile JSON document (- for stdin)")
	cmd.Flags().StringVar(&opts.today, "today", "", "evaluate streaks as of this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.from, "from", "", "only include practice logs on or after this date")
	cmd.Flags().StringVar(&opts.to, "to", "", "only include practice logs on or before this date")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runAnalyze(cmd *cobra.Command, load engineLoader, opts *analyzeOptions) error {
	var (
		raw []byte
		err error
	)
	if opts.file == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(opts.file)
	}
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	var profile models.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return fmt.Errorf("decode profile: %w", err)
	}

	filter := models.PracticeLogFilter{}
	if filter.From, err = parseOptionalDate("from", opts.from); err != nil {
		return err
	}
	if filter.To, err = parseOptionalDate("to", opts.to); err != nil {
		return err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return errors.New("to must not be before from")
	}

	engine, err := load()
	if err != nil {
		return err
	}

	now := time.Now()
	if opts.today != "" {
		day, err := time.ParseInLocation(dateLayout, opts.today, engine.Config().Location)
		if err != nil {
			return fmt.Errorf("today must be formatted as YYYY-MM-DD: %w", err)
		}
		now = day
	}
	dashboard := engine.Dashboard(analytics.InputFromProfile(&profile, filter), now)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(dashboard)
}

func parseOptionalDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%s must be formatted as YYYY-MM-DD: %w", name, err)
	}
	return &t, nil
}
