// Command soqplot inspects, renders and exports video quality trace
// documents without a window.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/soqview/backend"
	"git.sr.ht/~whereswaldon/soqview/dataset"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "soqplot",
		Short: "Inspect, render and export video quality traces",
		Long: `soqplot reads trace documents of the form {"meta": {...}, "data": {...}}
from a file or http(s) URL and lists, plots or exports their series.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newLsCmd(), newRenderCmd(), newExportCmd())
	return rootCmd
}

// loadDocument fetches and parses source through the backend loader.
func loadDocument(ctx context.Context, source string) (*dataset.Dataset, error) {
	loader, err := backend.NewLoader(ctx)
	if err != nil {
		return nil, err
	}
	defer loader.Close()
	done := make(chan backend.Session, 1)
	loader.Load(source, func(s backend.Session) { done <- s })
	select {
	case s := <-done:
		if s.Err != nil {
			return nil, s.Err
		}
		return s.Data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// openOutput returns the file named path, or w when path is empty or "-".
func openOutput(path string, w io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{w}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
