package main

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/soqview/backend"
)

// WindowState couples the application's backend with the stream
// controller of one window.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the backend services shared by every window.
type Bundle struct {
	Loader *backend.Loader
}

func NewBundle(ctx context.Context) (Bundle, error) {
	loader, err := backend.NewLoader(ctx)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{Loader: loader}, nil
}
