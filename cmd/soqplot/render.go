package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/soqview/dataset"
	"git.sr.ht/~whereswaldon/soqview/plot"
	"git.sr.ht/~whereswaldon/soqview/raster"
	"git.sr.ht/~whereswaldon/soqview/svgplot"
)

type renderOptions struct {
	typ, primary string
	others       []string
	width        int
	height       int
	fps          float64
	format       string
	output       string
}

func newRenderCmd() *cobra.Command {
	var o renderOptions
	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Plot the selected traces to a PNG or SVG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, err := openOutput(o.output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := render(out, ds, o); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}
	cmd.Flags().StringVar(&o.typ, "type", plot.DefaultType, "metric to plot")
	cmd.Flags().StringVar(&o.primary, "primary", "", "trace drawn on top (defaults to the last trace of the metric)")
	cmd.Flags().StringSliceVar(&o.others, "others", nil, "traces drawn faded behind the primary one")
	cmd.Flags().IntVar(&o.width, "width", 800, "image width in pixels")
	cmd.Flags().IntVar(&o.height, "height", 400, "image height in pixels")
	cmd.Flags().Float64Var(&o.fps, "fps", 0, "frame rate for time labels (defaults to the document's)")
	cmd.Flags().StringVar(&o.format, "format", "png", "output format: png or svg")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file path (default: stdout)")
	return cmd
}

func render(w io.Writer, ds *dataset.Dataset, o renderOptions) error {
	if o.width <= 0 || o.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", o.width, o.height)
	}
	c := plot.New(float64(o.width), float64(o.height))
	sel := plot.Selection{Type: o.typ, Primary: o.primary, Others: o.others}
	if err := plot.Populate(c, ds, sel, plot.Options{FPS: o.fps}); err != nil {
		return err
	}
	switch strings.ToLower(o.format) {
	case "png":
		canvas := raster.New(o.width, o.height)
		if err := c.Render(canvas); err != nil {
			return err
		}
		return canvas.EncodePNG(w)
	case "svg":
		canvas := svgplot.New(w, o.width, o.height)
		err := c.Render(canvas)
		canvas.Close()
		return err
	default:
		return fmt.Errorf("invalid format: %s (must be png or svg)", o.format)
	}
}
