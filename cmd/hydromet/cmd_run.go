package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/i474232898/hydromet/internal/hydromet"
)

var printChart bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, parse and summarise today's report once",
	Long:  `Run the pipeline once and print the temperature extremes.`,
	RunE:  runOnce,
}

func init() {
	runCmd.Flags().BoolVar(&printChart, "chart", false, "also print the chart dataset")
	rootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	service := newService(nil)

	report, err := service.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := hydromet.WriteSummary(out, report); err != nil {
		return err
	}
	if !printChart {
		return nil
	}

	sink := newTableSink(out)
	report.Store.Plot(sink, hydromet.LabelStyle(cfg.ChartLabel), service.Format())
	return sink.Flush()
}

// tableSink prints chart points as aligned text columns.
type tableSink struct {
	w *tabwriter.Writer
}

func newTableSink(w io.Writer) *tableSink {
	if w == nil {
		w = os.Stdout
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSERIES\tVALUE")
	return &tableSink{w: tw}
}

func (s *tableSink) AddValue(value float64, series, category string) {
	fmt.Fprintf(s.w, "%s\t%s\t%v\n", category, series, value)
}

func (s *tableSink) Flush() error {
	return s.w.Flush()
}
