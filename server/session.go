package server

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/daytrack/models"
	"github.com/daytrack/storage"
)

// Session owns the in-memory document and pushes it whole to the store
// after every successful edit. All mutation is synchronous under one lock:
// single writer, last write wins.
//
// A failed save never loses the in-memory state; the failure is surfaced
// as a notice and the next edit simply tries again.
type Session struct {
	mu      sync.Mutex
	store   storage.Store
	data    *models.UserData
	editing map[models.ChartID]EditState
	notice  string
}

// NewSession builds a session over the given store.
func NewSession(store storage.Store) *Session {
	return &Session{
		store:   store,
		data:    models.NewUserData(),
		editing: map[models.ChartID]EditState{},
	}
}

// Load replaces the in-memory document with the stored one. A missing
// document starts empty rather than failing.
func (s *Session) Load(ctx context.Context) error {
	raw, err := s.store.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		log.Info().Msg("no stored document, starting empty")
		return nil
	}
	if err != nil {
		return err
	}
	// A zero-byte file (e.g. an interrupted first save) is no document,
	// not a corrupt one.
	if len(raw) == 0 {
		log.Info().Msg("empty stored document, starting empty")
		return nil
	}

	data, err := models.DecodeUserData(raw)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Apply runs one edit against the document. On a validation or integrity
// error nothing changed and nothing is saved. On success the whole
// document is serialized and stored.
func (s *Session) Apply(ctx context.Context, edit func(u *models.UserData) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := edit(s.data); err != nil {
		return err
	}
	s.persistLocked(ctx)
	return nil
}

func (s *Session) persistLocked(ctx context.Context) {
	raw, err := s.data.Encode()
	if err == nil {
		err = s.store.Save(ctx, raw)
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to save document")
		s.notice = "Saving failed; your changes are kept in memory and will be retried on the next edit."
		return
	}
	s.notice = ""
}

// View runs a read against the document under the lock.
func (s *Session) View(fn func(u *models.UserData)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.data)
}

// Notice returns the current storage notice, empty when the last save
// succeeded.
func (s *Session) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}
