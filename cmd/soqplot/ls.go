package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/aclements/go-moremath/stats"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/soqview/dataset"
	"git.sr.ht/~whereswaldon/soqview/plot"
)

// summary describes one series for listing.
type summary struct {
	Path         string
	Kind         dataset.LeafKind
	Len          int
	Min, Max     float64
	Mean, StdDev float64
	HasBounds    bool
}

func summarize(path []string, s *dataset.Series) summary {
	sum := summary{
		Path: strings.Join(path, "/"),
		Kind: s.Kind(),
		Len:  s.Len(),
	}
	if b, err := s.Bounds(); err == nil {
		sum.Min, sum.Max, sum.HasBounds = b.Min, b.Max, true
		sample := stats.Sample{Xs: s.Values(dataset.Avg)}
		sum.Mean = sample.Mean()
		sum.StdDev = sample.StdDev()
	}
	return sum
}

// summaries lists every series below ds, paths starting below the root.
func summaries(ds *dataset.Dataset) ([]summary, error) {
	var out []summary
	err := ds.EachSeries(func(path []string, s *dataset.Series) error {
		out = append(out, summarize(path[1:], s))
		return nil
	}, nil)
	return out, err
}

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <document>",
		Short: "List every series with its bounds and summary statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			list, err := summaries(ds)
			if err != nil {
				return fmt.Errorf("failed reading series: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tKIND\tFRAMES\tMIN\tMAX\tMEAN\tSTDDEV")
			for _, s := range list {
				if !s.HasBounds {
					fmt.Fprintf(tw, "%s\t%s\t%d\t-\t-\t-\t-\n", s.Path, s.Kind, s.Len)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n", s.Path, s.Kind, s.Len,
					plot.FormatValue(s.Min), plot.FormatValue(s.Max),
					plot.FormatValue(s.Mean), plot.FormatValue(s.StdDev))
			}
			return tw.Flush()
		},
	}
}
