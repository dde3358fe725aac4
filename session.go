// session.go - Session record and pure state transitions

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StageKind tags the coarse lifecycle position of a session.
type StageKind int

const (
	StageEmpty StageKind = iota
	StageSourceSelected
	StageRunning
	StageReady
	StageFailed
)

func (k StageKind) String() string {
	switch k {
	case StageEmpty:
		return "empty"
	case StageSourceSelected:
		return "source-selected"
	case StageRunning:
		return "running"
	case StageReady:
		return "ready"
	case StageFailed:
		return "failed"
	}
	return fmt.Sprintf("stage(%d)", int(k))
}

// Stage combines the kind with the index of the named processing step
// while running. Index is meaningful only for StageRunning.
type Stage struct {
	Kind  StageKind
	Index int
}

// stageSpec is one named step of the simulated processing sequence.
type stageSpec struct {
	Message string
	Target  int // percent reached at the end of the step
	Delay   time.Duration
}

// The fixed ordered sequence every processing run walks. Targets are
// strictly increasing and finish at exactly 100.
var processingStages = []stageSpec{
	{Message: "Probing container", Target: 9, Delay: 350 * time.Millisecond},
	{Message: "Indexing frames", Target: 24, Delay: 650 * time.Millisecond},
	{Message: "Isolating overlay signatures", Target: 46, Delay: 900 * time.Millisecond},
	{Message: "Rebuilding occluded regions", Target: 71, Delay: 1050 * time.Millisecond},
	{Message: "Re-graining output", Target: 88, Delay: 700 * time.Millisecond},
	{Message: "Finalizing stream", Target: 100, Delay: 450 * time.Millisecond},
}

// Session is the whole user-visible state as one value. Transitions build
// a new value from the old; only the engine mutates the stored copy, and
// only the engine touches the transient handles the record points at.
type Session struct {
	ID         uuid.UUID
	SourceName string
	SourceURL  string
	Upload     *MediaHandle // staged copy of a selected file, nil for URL sources
	Result     *MediaHandle // transient result, nil for URL sources
	ResultURL  string
	Stage      Stage
	Percent    int
	Message    string
	LastErr    error
	Compare    bool
	Platform   string
}

// EmptySession is the canonical zero state Reset returns to.
func EmptySession() Session {
	return Session{}
}

// HasSource reports whether exactly a file or a URL is selected.
func (s Session) HasSource() bool {
	return s.Upload != nil || s.SourceURL != ""
}

// SessionEvent is the closed set of inputs the transition function
// understands.
type SessionEvent interface {
	sessionEvent()
}

type (
	// SelectFile carries a freshly staged upload handle. The engine
	// acquires the handle before the transition and releases it again if
	// the transition is rejected.
	SelectFile struct {
		Name   string
		Handle *MediaHandle
	}
	// SelectURL switches the session to an externally owned link.
	SelectURL struct {
		URL string
	}
	// BeginProcessing starts the staged sequence.
	BeginProcessing struct{}
	// StageProgress advances the staged sequence.
	StageProgress struct {
		Index   int
		Percent int
		Message string
	}
	// ProcessingDone delivers the result reference.
	ProcessingDone struct {
		Result    *MediaHandle
		ResultURL string
	}
	// ProcessingFailed aborts the staged sequence with a message.
	ProcessingFailed struct {
		Err error
	}
	// SetCompare toggles the original/clean comparison while Ready.
	SetCompare struct {
		On bool
	}
	// ResetEvent tears the session back to empty.
	ResetEvent struct{}
)

func (SelectFile) sessionEvent()       {}
func (SelectURL) sessionEvent()        {}
func (BeginProcessing) sessionEvent()  {}
func (StageProgress) sessionEvent()    {}
func (ProcessingDone) sessionEvent()   {}
func (ProcessingFailed) sessionEvent() {}
func (SetCompare) sessionEvent()       {}
func (ResetEvent) sessionEvent()       {}

// Transition is the pure state function: old session plus event yields the
// next session. It never performs IO, never releases handles and never
// spawns work; rejected events return the session unchanged alongside the
// error. Handles dropped from the record (replaced source, reset) are the
// caller's to release; it still holds the old value.
func Transition(s Session, ev SessionEvent) (Session, error) {
	switch ev := ev.(type) {
	case SelectFile:
		if ev.Handle == nil || ev.Name == "" {
			return s, &EngineError{Operation: "select file", Details: "missing upload handle"}
		}
		if s.Stage.Kind == StageRunning {
			return s, &EngineError{Operation: "select file", Details: "processing in progress"}
		}
		next := s
		next.ensureID()
		next.SourceName = ev.Name
		next.Upload = ev.Handle
		next.SourceURL = ""
		next.Result = nil
		next.ResultURL = ""
		next.Stage = Stage{Kind: StageSourceSelected}
		next.Percent = 0
		next.Message = "Source ready"
		next.LastErr = nil
		next.Compare = false
		next.Platform = GuessPlatform("")
		return next, nil

	case SelectURL:
		url := strings.TrimSpace(ev.URL)
		if url == "" {
			return s, &EngineError{Operation: "select url", Details: "empty url"}
		}
		if s.Stage.Kind == StageRunning {
			return s, &EngineError{Operation: "select url", Details: "processing in progress"}
		}
		next := s
		next.ensureID()
		next.SourceName = url
		next.SourceURL = url
		next.Upload = nil
		next.Result = nil
		next.ResultURL = ""
		next.Stage = Stage{Kind: StageSourceSelected}
		next.Percent = 0
		next.Message = "Source ready"
		next.LastErr = nil
		next.Compare = false
		next.Platform = GuessPlatform(url)
		return next, nil

	case BeginProcessing:
		if !s.HasSource() {
			return s, &EngineError{Operation: "process", Details: "select a file or paste a link first", Err: ErrNoSource}
		}
		if s.Stage.Kind == StageRunning {
			return s, &EngineError{Operation: "process", Details: "already running"}
		}
		next := s
		next.Result = nil
		next.ResultURL = ""
		next.Stage = Stage{Kind: StageRunning, Index: 0}
		next.Percent = 0
		next.Message = processingStages[0].Message
		next.LastErr = nil
		next.Compare = false
		return next, nil

	case StageProgress:
		if s.Stage.Kind != StageRunning {
			return s, &EngineError{Operation: "stage progress", Details: "no run in progress"}
		}
		next := s
		next.Stage.Index = ev.Index
		if ev.Percent > next.Percent {
			next.Percent = ev.Percent
		}
		if ev.Message != "" {
			next.Message = ev.Message
		}
		return next, nil

	case ProcessingDone:
		if s.Stage.Kind != StageRunning {
			return s, &EngineError{Operation: "processing done", Details: "no run in progress"}
		}
		next := s
		next.Result = ev.Result
		next.ResultURL = ev.ResultURL
		next.Stage = Stage{Kind: StageReady}
		next.Percent = 100
		next.Message = "Stream purified"
		next.LastErr = nil
		return next, nil

	case ProcessingFailed:
		if s.Stage.Kind != StageRunning {
			return s, &EngineError{Operation: "processing failed", Details: "no run in progress"}
		}
		next := s
		next.Stage = Stage{Kind: StageFailed}
		next.Message = "Processing failed"
		next.LastErr = ev.Err
		return next, nil

	case SetCompare:
		if s.Stage.Kind != StageReady {
			return s, nil
		}
		next := s
		next.Compare = ev.On
		return next, nil

	case ResetEvent:
		return EmptySession(), nil
	}
	return s, &EngineError{Operation: "transition", Details: fmt.Sprintf("unknown event %T", ev)}
}

func (s *Session) ensureID() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
}
