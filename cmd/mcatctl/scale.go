package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newScaleCmd(load engineLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "scale <raw> <total>",
		Short: "Convert a raw practice result into percent and scaled score",
		Long: `Convert a raw practice result into percent and scaled score.

Examples:
  # 45 correct out of 59
  mcatctl scale 45 59`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := strconv.Atoi(args[0])
			if err != nil || raw < 0 {
				return fmt.Errorf("raw score must be a non-negative integer: %q", args[0])
			}
			total, err := strconv.Atoi(args[1])
			if err != nil || total <= 0 {
				return fmt.Errorf("total questions must be a positive integer: %q", args[1])
			}
			if raw > total {
				return fmt.Errorf("raw score %d exceeds total questions %d", raw, total)
			}

			engine, err := load()
			if err != nil {
				return err
			}
			scaler := engine.Scaler()
			result := scaler.Scale(raw, total)
			fmt.Fprintf(cmd.OutOrStdout(), "percent: %d%%\nscaled:  %d (%d-%d)\n", result.Percent, result.Scaled, scaler.Min, scaler.Max)
			return nil
		},
	}
}
