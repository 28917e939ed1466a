// Command soqview is an interactive viewer for per-frame video quality
// traces.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"

	"git.sr.ht/~whereswaldon/soqview/plot"
)

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func main() {
	source := flag.String("source", "", "trace document to open, a file path or http(s) URL")
	typ := flag.String("type", plot.DefaultType, "metric to plot")
	primary := flag.String("primary", "", "trace drawn on top (defaults to the last trace of the metric)")
	others := flag.String("others", "", "comma-separated traces drawn faded behind the primary one")
	fps := flag.Float64("fps", 0, "frame rate for time labels (defaults to the document's)")
	flag.Parse()

	sel := plot.Selection{
		Type:    *typ,
		Primary: *primary,
		Others:  splitList(*others),
	}
	opts := plot.Options{FPS: *fps}

	ctx, cancel := context.WithCancel(context.Background())
	bundle, err := NewBundle(ctx)
	if err != nil {
		log.Fatalf("failed starting backend: %v", err)
	}
	if *source != "" {
		bundle.Loader.Load(*source, nil)
	}

	go func() {
		w := app.NewWindow(app.Title("soqview"), app.Size(unit.Dp(1024), unit.Dp(720)))
		err := loop(w, NewWindowState(ctx, bundle, w), sel, opts)
		cancel()
		if cerr := bundle.Loader.Close(); cerr != nil {
			log.Printf("failed closing loader: %v", cerr)
		}
		if err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, ws WindowState, sel plot.Selection, opts plot.Options) error {
	expl := explorer.NewExplorer(w)
	ui := NewUI(ws, expl, sel, opts)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
