package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"git.sr.ht/~whereswaldon/soqview/dataset"
	"git.sr.ht/~whereswaldon/soqview/plot"
)

// indexSheet is the workbook's default sheet, reused to map sheet names
// to series paths.
const indexSheet = "Sheet1"

func newExportCmd() *cobra.Command {
	var (
		maxPoints int
		output    string
		from, to  string
	)
	cmd := &cobra.Command{
		Use:   "export <document>",
		Short: "Export every series to an xlsx workbook, one sheet per series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			frames, err := parseFrameRange(from, to, ds.Meta().FPS())
			if err != nil {
				return err
			}
			out, err := openOutput(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := export(out, ds, maxPoints, frames); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}
	cmd.Flags().IntVar(&maxPoints, "max-points", 1000, "reduce each series to at most this many points (0 keeps every sample)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().StringVar(&from, "from", "", "first timecode to export, [[[hh:]mm:]ss:]ff")
	cmd.Flags().StringVar(&to, "to", "", "last timecode to export, [[[hh:]mm:]ss:]ff")
	return cmd
}

// frameRange is an inclusive range of unreduced sample indices. A negative
// last means no upper limit.
type frameRange struct {
	first, last int
}

func (r frameRange) overlaps(first, last int) bool {
	return last >= r.first && (r.last < 0 || first <= r.last)
}

func parseFrameRange(from, to string, fps float64) (frameRange, error) {
	r := frameRange{last: -1}
	if from != "" {
		secs, err := plot.ParseTimecode(from, fps)
		if err != nil {
			return r, fmt.Errorf("invalid --from: %w", err)
		}
		r.first = int(math.Round(secs * fps))
	}
	if to != "" {
		secs, err := plot.ParseTimecode(to, fps)
		if err != nil {
			return r, fmt.Errorf("invalid --to: %w", err)
		}
		r.last = int(math.Round(secs * fps))
		if r.last < r.first {
			return r, fmt.Errorf("--to %s is before --from %s", to, from)
		}
	}
	return r, nil
}

func seriesSheet(i int) string {
	return fmt.Sprintf("S%03d", i+1)
}

func export(w io.Writer, ds *dataset.Dataset, maxPoints int, frames frameRange) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(indexSheet, "A1", &[]any{"Sheet", "Path", "Kind", "Frames", "Scale"}); err != nil {
		return err
	}
	i := 0
	err := ds.EachSeries(func(path []string, s *dataset.Series) error {
		reduced := s
		if maxPoints > 0 {
			reduced = s.ScaledInstance(maxPoints)
		}
		name := seriesSheet(i)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed adding sheet for %s: %w", strings.Join(path, "/"), err)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{name, strings.Join(path[1:], "/"), s.Kind().String(), s.Len(), reduced.Scale()}
		if err := f.SetSheetRow(indexSheet, cell, &row); err != nil {
			return err
		}
		if err := writeSeries(f, name, reduced, frames); err != nil {
			return fmt.Errorf("failed writing %s: %w", strings.Join(path, "/"), err)
		}
		i++
		return nil
	}, nil)
	if err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

// writeSeries fills sheet with one row per point covering frames. The
// frame column is the index of the first unreduced sample the point
// covers.
func writeSeries(f *excelize.File, sheet string, s *dataset.Series, frames frameRange) error {
	if err := f.SetSheetRow(sheet, "A1", &[]any{"Frame", "Min", "Max", "Avg"}); err != nil {
		return err
	}
	row := 2
	for j, p := range s.Points() {
		first := j * s.Scale()
		if !frames.overlaps(first, first+s.Scale()-1) {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &[]any{first, p.Min, p.Max, p.Avg}); err != nil {
			return err
		}
		row++
	}
	return nil
}
