package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/p-arndt/sortbench/internal/algo"
	"github.com/p-arndt/sortbench/internal/config"
)

func newAlgorithmsCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "algorithms",
		Short: "List the registered algorithms with their complexity class and size ceiling",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			limits := algo.DefaultLimits().Merge(cfg.SizeLimits)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), algorithmsTable(algo.Registry(), limits))
			return err
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to sortbench.yaml")
	return cmd
}

func algorithmsTable(algs []algo.Algorithm, limits algo.Limits) string {
	rows := make([][]string, 0, len(algs))
	for _, a := range algs {
		ceiling := "unbounded"
		if m := limits.Max(a.Class); m != algo.Unbounded {
			ceiling = humanize.Comma(int64(m))
		}
		rows = append(rows, []string{a.ID, a.Name, a.Class, ceiling})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "CLASS", "MAX SIZE").
		Rows(rows...).
		String()
}
