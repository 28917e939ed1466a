package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"git.sr.ht/~whereswaldon/soqview/dataset"
	"github.com/fsnotify/fsnotify"
)

// ErrClosed is reported by loads requested after Close, and by loads that
// finish once Close has started.
var ErrClosed = errors.New("loader closed")

// Session is one installed load result. Data is never mutated after
// installation; a reload installs a new Dataset. When a load fails, Data
// still holds the previously installed dataset and Err explains the
// failure.
type Session struct {
	ID     string
	Source string
	Data   *dataset.Dataset
	Err    error
}

type loaderState struct {
	current    Session
	generation uint64
	watched    string
	subs       map[chan Session]struct{}
	closed     bool
}

// Loader fetches documents on background goroutines and installs them one
// at a time. Requests made later always win over earlier ones, regardless
// of which finishes first.
type Loader struct {
	appCtx   context.Context
	client   *http.Client
	watcher  *fsnotify.Watcher
	state    RWBox[loaderState]
	inflight sync.WaitGroup
	done     chan struct{}
}

// NewLoader creates a loader whose fetches and file watching live as long
// as appCtx.
func NewLoader(appCtx context.Context) (*Loader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	l := &Loader{
		appCtx:  appCtx,
		client:  &http.Client{Timeout: 30 * time.Second},
		watcher: watcher,
		done:    make(chan struct{}),
	}
	l.state.Write(func(s *loaderState) {
		s.subs = map[chan Session]struct{}{}
	})
	go l.watch()
	return l, nil
}

func generateSessionID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Current returns the most recently installed session.
func (l *Loader) Current() Session {
	var s Session
	l.state.Read(func(st *loaderState) {
		s = st.current
	})
	return s
}

// Load fetches source, a file path or http(s) URL, and installs the parsed
// document. done, if non-nil, is invoked with the installed session. The
// returned ID identifies the request.
func (l *Loader) Load(source string, done func(Session)) string {
	return l.start(source, done, func(ctx context.Context) (io.ReadCloser, error) {
		return l.open(ctx, source)
	})
}

// LoadReader installs the document read from r. name is recorded as the
// session source. If r is an *os.File its path is watched for changes.
func (l *Loader) LoadReader(name string, r io.ReadCloser, done func(Session)) string {
	if f, ok := r.(interface{ Name() string }); ok {
		name = f.Name()
	}
	return l.start(name, done, func(context.Context) (io.ReadCloser, error) {
		return r, nil
	})
}

// Reload fetches the current source again.
func (l *Loader) Reload(done func(Session)) (string, bool) {
	source := l.Current().Source
	if source == "" {
		return "", false
	}
	return l.Load(source, done), true
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !isURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed opening %q: %w", source, err)
		}
		return f, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed building request for %q: %w", source, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed fetching %q: %w", source, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed fetching %q: %s", source, resp.Status)
	}
	return resp.Body, nil
}

func (l *Loader) start(source string, done func(Session), open func(context.Context) (io.ReadCloser, error)) string {
	id := generateSessionID()
	var gen uint64
	closed := false
	l.state.Write(func(s *loaderState) {
		closed = s.closed
		if closed {
			return
		}
		s.generation++
		gen = s.generation
		// Counted under the lock so Close never waits on a zero counter
		// that is about to grow.
		l.inflight.Add(1)
	})
	if closed {
		if done != nil {
			done(Session{ID: id, Source: source, Err: ErrClosed})
		}
		return id
	}
	go func() {
		defer l.inflight.Done()
		data, err := l.fetch(open)
		l.install(gen, Session{ID: id, Source: source, Data: data, Err: err}, done)
	}()
	return id
}

func (l *Loader) fetch(open func(context.Context) (io.ReadCloser, error)) (*dataset.Dataset, error) {
	r, err := open(l.appCtx)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	data, err := dataset.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed parsing document: %w", err)
	}
	return data, nil
}

// install publishes session if it belongs to the newest request. A failed
// session carries the previous dataset forward. Loads that finish after
// Close report ErrClosed to done and are not published.
func (l *Loader) install(gen uint64, session Session, done func(Session)) {
	installed, closed := false, false
	var previous string
	l.state.Write(func(s *loaderState) {
		if s.closed {
			closed = true
			session.Data, session.Err = s.current.Data, ErrClosed
			return
		}
		if gen != s.generation {
			return
		}
		installed = true
		if session.Err != nil {
			session.Data = s.current.Data
		}
		previous = s.watched
		if session.Err == nil && !isURL(session.Source) {
			s.watched = session.Source
		}
		s.current = session
		for sub := range s.subs {
			offer(sub, session)
		}
	})
	if closed {
		if done != nil {
			done(session)
		}
		return
	}
	if !installed {
		log.Printf("dropping superseded load of %q", session.Source)
		return
	}
	if session.Err != nil {
		log.Printf("failed loading %q: %v", session.Source, session.Err)
	} else if !isURL(session.Source) && previous != session.Source {
		l.rewatch(previous, session.Source)
	}
	if done != nil {
		done(session)
	}
}

func (l *Loader) rewatch(previous, next string) {
	if previous != "" {
		_ = l.watcher.Remove(previous)
	}
	if err := l.watcher.Add(next); err != nil {
		log.Printf("failed watching %q: %v", next, err)
	}
}

// offer replaces any unread session in ch with s.
func offer(ch chan Session, s Session) {
	select {
	case <-ch:
	default:
	}
	ch <- s
}

func (l *Loader) watch() {
	for {
		select {
		case <-l.appCtx.Done():
			return
		case <-l.done:
			return
		case ev, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			var source string
			l.state.Read(func(s *loaderState) {
				source = s.watched
			})
			if source == "" || filepath.Clean(ev.Name) != filepath.Clean(source) {
				continue
			}
			// Reloads reach the UI through Stream.
			l.Load(source, nil)
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher: %v", err)
		}
	}
}

// Stream emits the current session, if any, and every session installed
// afterward until ctx is done. A slow reader only sees the newest session.
func (l *Loader) Stream(ctx context.Context) <-chan Session {
	ch := make(chan Session, 1)
	registered := false
	l.state.Write(func(s *loaderState) {
		if s.closed {
			return
		}
		registered = true
		s.subs[ch] = struct{}{}
		if s.current.ID != "" {
			ch <- s.current
		}
	})
	if !registered {
		close(ch)
		return ch
	}
	go func() {
		select {
		case <-ctx.Done():
		case <-l.done:
		}
		l.state.Write(func(s *loaderState) {
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}()
	return ch
}

// Close stops watching files, waits for in-flight loads and ends every
// stream.
func (l *Loader) Close() error {
	alreadyClosed := false
	l.state.Write(func(s *loaderState) {
		alreadyClosed = s.closed
		s.closed = true
	})
	if alreadyClosed {
		return nil
	}
	close(l.done)
	err := l.watcher.Close()
	l.inflight.Wait()
	l.state.Write(func(s *loaderState) {
		for sub := range s.subs {
			delete(s.subs, sub)
			close(sub)
		}
	})
	return err
}
