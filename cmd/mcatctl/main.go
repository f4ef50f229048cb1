// Package main implements mcatctl, an offline companion CLI for the MCAT progress API.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/noah-isme/mcat-progress-api/internal/analytics"
	"github.com/noah-isme/mcat-progress-api/pkg/config"
)

var version = "dev"

func main() {
	if err := newRootCmd(loadEngine).Execute(); err != nil {
		os.Exit(1)
	}
}

// engineLoader resolves the analytics engine a command runs against.
type engineLoader func() (*analytics.Engine, error)

func loadEngine() (*analytics.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return analytics.New(analytics.ConfigFrom(cfg)), nil
}

func newRootCmd(load engineLoader) *cobra.Command {
	root := &cobra.Command{
		Use:   "mcatctl",
		Short: "Offline tools for MCAT progress analytics",
		Long: `mcatctl runs the analytics engine used by the MCAT progress API without a database.
Thresholds and the score scale are read from the same environment as the API.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.AddCommand(newScaleCmd(load))
	root.AddCommand(newAnalyzeCmd(load))
	return root
}
