// session_engine.go - Serialized session mutation and the staged processing run

package main

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// progressTicksPerStage controls how many intermediate percent updates a
// stage emits while its delay elapses.
const progressTicksPerStage = 4

// SessionEngine owns the live Session value. All mutation funnels through
// apply, which serializes Transition calls under the mutex; the staged run
// happens on its own goroutine and feeds events back through the same
// funnel. Handle release happens here, never in the transition function.
type SessionEngine struct {
	mu      sync.RWMutex
	session Session
	store   *HandleStore
	collab  *Collaborator

	onChange func(Session)
	notify   func()

	delayScale float64
	runCancel  context.CancelFunc
	runDone    chan struct{}
}

func NewSessionEngine(store *HandleStore, collab *Collaborator) *SessionEngine {
	return &SessionEngine{
		session:    EmptySession(),
		store:      store,
		collab:     collab,
		delayScale: 1.0,
	}
}

// SetOnChange registers a callback fired after every accepted transition
// with a copy of the new session. Set before first use; not synchronized
// against concurrent mutation.
func (e *SessionEngine) SetOnChange(fn func(Session)) {
	e.onChange = fn
}

// SetNotifier registers the completion notifier, invoked once per
// successful run.
func (e *SessionEngine) SetNotifier(fn func()) {
	e.notify = fn
}

// SetDelayScale stretches or shrinks the stage delays. Values at or below
// zero are ignored.
func (e *SessionEngine) SetDelayScale(scale float64) {
	if scale <= 0 {
		return
	}
	e.mu.Lock()
	e.delayScale = scale
	e.mu.Unlock()
}

// Current returns a copy of the session record.
func (e *SessionEngine) Current() Session {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.session
}

// apply runs one transition under the lock and fires onChange outside it.
func (e *SessionEngine) apply(ev SessionEvent) error {
	e.mu.Lock()
	next, err := Transition(e.session, ev)
	if err == nil {
		e.session = next
	}
	cb := e.onChange
	e.mu.Unlock()
	if err == nil && cb != nil {
		cb(next)
	}
	return err
}

// SelectFile stages a local file as the session source. The file is copied
// into the engine's transient store first; if the transition is rejected
// the fresh copy is released again, otherwise any previously held handles
// are.
func (e *SessionEngine) SelectFile(path string) error {
	name := filepath.Base(path)
	handle, err := e.store.Acquire(path, name)
	if err != nil {
		return &EngineError{Operation: "select file", Details: path, Err: err}
	}
	old := e.Current()
	if err := e.apply(SelectFile{Name: name, Handle: handle}); err != nil {
		handle.Release()
		return err
	}
	releaseHandles(old.Upload, old.Result)
	log.Info().Str("file", name).Msg("source selected")
	return nil
}

// SelectURL points the session at an externally hosted source. Nothing is
// staged; the engine never owns URL-backed media.
func (e *SessionEngine) SelectURL(url string) error {
	old := e.Current()
	if err := e.apply(SelectURL{URL: url}); err != nil {
		return err
	}
	releaseHandles(old.Upload, old.Result)
	log.Info().Str("url", url).Msg("source selected")
	return nil
}

// Process starts the staged run. The validation failure for a missing
// source surfaces here without touching the stored stage.
func (e *SessionEngine) Process() error {
	old := e.Current()
	if err := e.apply(BeginProcessing{}); err != nil {
		return err
	}
	if old.Result != nil {
		old.Result.Release()
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	e.mu.Lock()
	e.runCancel = cancel
	e.runDone = done
	e.mu.Unlock()
	go e.run(ctx, done)
	return nil
}

// run walks the fixed stage sequence, emitting interpolated progress, then
// builds the result reference. Any panic downgrades to a recoverable
// failure state.
func (e *SessionEngine) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("processing run panicked")
			e.apply(ProcessingFailed{Err: &EngineError{Operation: "process", Details: "internal failure", Err: ErrProcessing}})
		}
	}()

	snap := e.Current()
	e.mu.RLock()
	scale := e.delayScale
	e.mu.RUnlock()

	for i, stage := range processingStages {
		if i == 0 && e.collab != nil {
			e.collab.describeInBackground(snap.Platform, snap.SourceName)
		}
		prev := 0
		if i > 0 {
			prev = processingStages[i-1].Target
		}
		delay := time.Duration(float64(stage.Delay) * scale)
		step := delay / progressTicksPerStage
		for tick := 1; tick <= progressTicksPerStage; tick++ {
			select {
			case <-ctx.Done():
				return
			case <-time.After(step):
			}
			pct := prev + (stage.Target-prev)*tick/progressTicksPerStage
			if err := e.apply(StageProgress{Index: i, Percent: pct, Message: stage.Message}); err != nil {
				return
			}
		}
	}

	if ctx.Err() != nil {
		return
	}
	result, resultURL, err := e.buildResult(snap)
	if err != nil {
		log.Error().Err(err).Msg("result staging failed")
		e.apply(ProcessingFailed{Err: err})
		return
	}
	if e.apply(ProcessingDone{Result: result, ResultURL: resultURL}) == nil {
		log.Info().Str("source", snap.SourceName).Msg("processing complete")
		if e.notify != nil {
			e.notify()
		}
	} else if result != nil {
		result.Release()
	}
}

// buildResult produces the downloadable reference for the finished run:
// uploads get a second transient copy named like the export file, links
// pass straight through.
func (e *SessionEngine) buildResult(s Session) (*MediaHandle, string, error) {
	if s.Upload != nil {
		name := ExportFilename(s.SourceName, time.Now())
		h, err := e.store.Acquire(s.Upload.Path, name)
		if err != nil {
			return nil, "", &EngineError{Operation: "stage result", Details: s.SourceName, Err: err}
		}
		return h, "", nil
	}
	return nil, s.SourceURL, nil
}

// SetCompare toggles the original/clean view. Ignored outside Ready.
func (e *SessionEngine) SetCompare(on bool) {
	_ = e.apply(SetCompare{On: on})
}

// ToggleCompare flips the comparison view and reports the new value.
func (e *SessionEngine) ToggleCompare() bool {
	cur := e.Current()
	next := !cur.Compare
	e.SetCompare(next)
	return e.Current().Compare
}

// Reset cancels any in-flight run, releases every transient handle the
// session holds and returns to the empty state. Safe to call repeatedly.
func (e *SessionEngine) Reset() {
	e.mu.Lock()
	cancel := e.runCancel
	done := e.runDone
	e.runCancel = nil
	e.runDone = nil
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	old := e.Current()
	_ = e.apply(ResetEvent{})
	releaseHandles(old.Upload, old.Result)
	log.Debug().Msg("session reset")
}

// Close tears the engine down for shutdown.
func (e *SessionEngine) Close() {
	e.Reset()
}

func releaseHandles(handles ...*MediaHandle) {
	for _, h := range handles {
		if h != nil {
			h.Release()
		}
	}
}
