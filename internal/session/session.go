// Package session holds the table loaded for the current analysis session.
package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/model"
	"github.com/google/uuid"
)

// Enricher runs the cleaning and prediction passes over a freshly loaded table.
type Enricher interface {
	Process(t model.Table) model.Table
	Predict(t model.Table) (model.Table, error)
}

// Session is one loaded table plus its processed form.
type Session struct {
	CreatedAt     time.Time
	predictionErr error
	Source        string
	original      model.Table
	processed     model.Table
	ID            uuid.UUID
}

// Original returns the table as loaded, before any enrichment pass.
func (s *Session) Original() model.Table {
	return s.original
}

// Processed returns the full processed table.
func (s *Session) Processed() model.Table {
	return s.processed
}

// PredictionsAvailable reports whether the prediction pass succeeded.
func (s *Session) PredictionsAvailable() bool {
	return s.predictionErr == nil && s.processed.PredictionsAvailable()
}

// PredictionError returns why predictions are unavailable, if they are.
func (s *Session) PredictionError() error {
	return s.predictionErr
}

// View returns the processed records accepted by the filter as a new table.
// The session's own tables are never modified.
func (s *Session) View(f Filter) model.Table {
	return s.processed.Where(f.Matches)
}

// Options lists the values the filters can select from.
func (s *Session) Options() FilterOptions {
	return OptionsFor(s.processed)
}

// Store owns the current session. A failed load never replaces it.
type Store struct {
	enricher Enricher
	current  *Session
	now      func() time.Time
}

// NewStore creates an empty store.
func NewStore(enricher Enricher) *Store {
	return &Store{
		enricher: enricher,
		now:      time.Now,
	}
}

// Replace builds a session from a loaded table and makes it current. A failed
// prediction pass does not fail the load; the session keeps the cleaned table
// without predictions.
func (s *Store) Replace(source string, loaded model.Table) *Session {
	processed := s.enricher.Process(loaded)

	predicted, err := s.enricher.Predict(processed)
	if err != nil {
		if !errors.Is(err, common.ErrEnrichmentUnavailable) {
			err = errors.Join(common.ErrEnrichmentUnavailable, err)
		}
		slog.Warn("Predictions unavailable for session", "source", source, "error", err)
		predicted = processed
	}

	sess := &Session{
		ID:            uuid.New(),
		CreatedAt:     s.now(),
		Source:        source,
		original:      loaded,
		processed:     predicted,
		predictionErr: err,
	}
	s.current = sess

	slog.Debug("Session replaced",
		"session_id", sess.ID,
		"source", source,
		"records", predicted.Len(),
		"predictions", sess.PredictionsAvailable())

	return sess
}

// Current returns the current session or ErrNoSession.
func (s *Store) Current() (*Session, error) {
	if s.current == nil {
		return nil, common.ErrNoSession
	}
	return s.current, nil
}

// Clear drops the current session.
func (s *Store) Clear() {
	s.current = nil
}
