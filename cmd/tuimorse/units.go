package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuimorse/internal/config"
	"github.com/verte-zerg/tuimorse/internal/morse"
	"github.com/verte-zerg/tuimorse/internal/render"
)

var unitsWPM float64

func newUnitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Show symbol timings for a speed",
		Args:  cobra.NoArgs,
		RunE:  runUnitsCmd,
	}
	cmd.Flags().Float64Var(&unitsWPM, "wpm", defaultWPM, "words per minute")
	return cmd
}

func runUnitsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "wpm", &unitsWPM, fileCfg.Keyer.WPM)
	if err := morse.ValidateWPM(unitsWPM); err != nil {
		return fmt.Errorf("--wpm must be > 0: %w", err)
	}
	return renderUnits(cmd.OutOrStdout(), unitsWPM)
}

func renderUnits(w io.Writer, wpm float64) error {
	unit := morse.UnitDuration(wpm)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("%g WPM · 1 unit = %.1f ms", wpm, unit))
	t.AppendHeader(table.Row{"Symbol", "Key", "Units", "Nominal (ms)", "Eligible above (ms)", "Glyph"})
	for i, tbl := range []struct {
		key   string
		table morse.Table
	}{
		{"down", morse.ActiveTable},
		{"up", morse.InactiveTable},
	} {
		for _, e := range tbl.table {
			t.AppendRow(table.Row{
				e.Symbol,
				tbl.key,
				e.Units,
				fmt.Sprintf("%.1f", e.Units*unit),
				fmt.Sprintf("%.1f", (e.Units-1)*unit),
				fmt.Sprintf("%q", render.Glyph(e.Symbol)),
			})
		}
		if i == 0 {
			t.AppendSeparator()
		}
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
	return nil
}
