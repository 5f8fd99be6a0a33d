package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"ticktock/internal/core/timeparts"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var formatUnits string

var formatCmd = &cobra.Command{
	Use:   "format DURATION...",
	Short: "Split durations into display units",
	Long: `Format splits each duration into zero-padded units, the same way the
timer display does. A duration is either a Go duration such as 1h1m1s or a
plain number of milliseconds.

Example:
  ticktock format 3661000
  ticktock format 90m 1500ms --units h,m,s`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		units, err := timeparts.ParseUnits(formatUnits)
		if err != nil {
			return err
		}
		durations := make([]time.Duration, 0, len(args))
		for _, arg := range args {
			duration, err := parseDuration(arg)
			if err != nil {
				return err
			}
			durations = append(durations, duration)
		}
		renderParts(cmd.OutOrStdout(), durations, units)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().StringVar(&formatUnits, "units", "", "comma separated units to show: ms,s,m,h,d (default all)")
}

// parseDuration accepts Go durations and bare millisecond counts.
func parseDuration(value string) (time.Duration, error) {
	if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Duration(millis) * time.Millisecond, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}
	return duration, nil
}

func renderParts(out io.Writer, durations []time.Duration, units []timeparts.Unit) {
	header := []any{"Duration"}
	for index := len(units) - 1; index >= 0; index-- {
		header = append(header, units[index].Label)
	}

	table := tablewriter.NewWriter(out)
	table.Header(header...)
	for _, duration := range durations {
		parts := timeparts.Split(duration, units...)
		row := []string{duration.String()}
		for index := len(parts) - 1; index >= 0; index-- {
			row = append(row, parts[index].Value)
		}
		table.Append(row)
	}
	table.Render()
}
