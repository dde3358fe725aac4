// media_handle.go - Transient ownership of locally staged media copies

package main

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MediaHandle is a transient reference to a locally staged media copy.
// Exactly one owner at a time (the session); every state-replacing
// transition must call Release. URLs are externally owned and never get a
// handle. Release is idempotent.
type MediaHandle struct {
	ID   uuid.UUID
	Name string
	Path string

	released atomic.Bool
	store    *HandleStore
}

// Release removes the staged copy and forgets the handle. Safe to call
// more than once; only the first call does work.
func (h *MediaHandle) Release() error {
	if h == nil {
		return nil
	}
	if h.released.Swap(true) {
		return nil
	}
	if h.store != nil {
		h.store.forget(h.ID)
	}
	if err := os.Remove(h.Path); err != nil && !os.IsNotExist(err) {
		return &EngineError{Operation: "handle release", Details: h.Path, Err: err}
	}
	log.Debug().Str("handle", h.ID.String()).Str("name", h.Name).Msg("transient handle released")
	return nil
}

// Released reports whether Release has run.
func (h *MediaHandle) Released() bool {
	return h == nil || h.released.Load()
}

// HandleStore stages uploaded files into a session-scoped temp directory
// and tracks outstanding handles so teardown can sweep stragglers.
type HandleStore struct {
	dir string

	mu   sync.Mutex
	open map[uuid.UUID]*MediaHandle
}

func NewHandleStore() (*HandleStore, error) {
	dir, err := os.MkdirTemp("", "clearframe-")
	if err != nil {
		return nil, &EngineError{Operation: "handle store", Details: "temp dir", Err: err}
	}
	return &HandleStore{dir: dir, open: make(map[uuid.UUID]*MediaHandle)}, nil
}

// Acquire copies the file at srcPath into the store and returns the owning
// handle. The copy keeps the original extension so downstream sniffing by
// suffix still works.
func (st *HandleStore) Acquire(srcPath, name string) (*MediaHandle, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return nil, &EngineError{Operation: "handle acquire", Details: srcPath, Err: err}
	}
	defer src.Close()

	id := uuid.New()
	dstPath := filepath.Join(st.dir, id.String()+filepath.Ext(name))
	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, &EngineError{Operation: "handle acquire", Details: dstPath, Err: err}
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return nil, &EngineError{Operation: "handle acquire", Details: "copy " + srcPath, Err: err}
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return nil, &EngineError{Operation: "handle acquire", Details: "close " + dstPath, Err: err}
	}

	h := &MediaHandle{ID: id, Name: name, Path: dstPath, store: st}
	st.mu.Lock()
	st.open[id] = h
	st.mu.Unlock()
	log.Debug().Str("handle", id.String()).Str("name", name).Msg("transient handle staged")
	return h, nil
}

// OpenCount returns the number of unreleased handles.
func (st *HandleStore) OpenCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.open)
}

func (st *HandleStore) forget(id uuid.UUID) {
	st.mu.Lock()
	delete(st.open, id)
	st.mu.Unlock()
}

// Close releases every outstanding handle and removes the staging
// directory.
func (st *HandleStore) Close() error {
	st.mu.Lock()
	stragglers := make([]*MediaHandle, 0, len(st.open))
	for _, h := range st.open {
		stragglers = append(stragglers, h)
	}
	st.mu.Unlock()

	for _, h := range stragglers {
		if err := h.Release(); err != nil {
			log.Warn().Err(err).Msg("handle sweep failed")
		}
	}
	if err := os.RemoveAll(st.dir); err != nil {
		return &EngineError{Operation: "handle store", Details: "remove " + st.dir, Err: err}
	}
	return nil
}
