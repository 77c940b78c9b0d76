package server

import (
	"context"

	"github.com/daytrack/models"
)

// Per-chart editing state machine. Each chart page is in exactly one of
// three modes; opening one chartable row for editing implicitly closes any
// other, and delete/reorder actions always land back in browsing mode.

// EditMode is the chart page's editing mode.
type EditMode int

const (
	// ModeBrowsing: no edit in progress.
	ModeBrowsing EditMode = iota
	// ModeAdding: picking an existing chartable (or "create new") to append.
	ModeAdding
	// ModeEditing: one chartable row expanded for editing.
	ModeEditing
)

// EditState is one chart's editing state.
type EditState struct {
	Mode EditMode

	// Candidate is the currently selected addition while adding. CreateNew
	// means "make a blank chartable" instead, offered when every existing
	// chartable is already on the chart.
	Candidate models.ChartableID
	CreateNew bool

	// Editing is the expanded chartable row while editing.
	Editing models.ChartableID
}

// EditState returns the chart's current editing state (browsing when none
// recorded yet).
func (s *Session) EditState(id models.ChartID) EditState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing[id]
}

// StartAdding moves the chart into adding mode. The default candidate is
// the first available chartable in picker order, or "create new" when
// every chartable is already on the chart.
func (s *Session) StartAdding(id models.ChartID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chart := s.data.ChartByID(id)
	if chart == nil {
		return
	}

	state := EditState{Mode: ModeAdding}
	if available := s.data.AvailableChartables(chart); len(available) > 0 {
		state.Candidate = available[0].ID
	} else {
		state.CreateNew = true
	}
	s.editing[id] = state
}

// SelectCandidate changes the pending addition while in adding mode.
func (s *Session) SelectCandidate(id models.ChartID, candidate models.ChartableID, createNew bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.editing[id]
	if !ok || state.Mode != ModeAdding {
		return
	}
	state.Candidate = candidate
	state.CreateNew = createNew
	s.editing[id] = state
}

// ConfirmAdd appends the candidate to the chart (creating a blank
// chartable first for "create new") and returns to browsing. The new
// entry lands at the head, visible, so it shows up immediately.
func (s *Session) ConfirmAdd(ctx context.Context, id models.ChartID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.editing[id]
	if !ok || state.Mode != ModeAdding {
		return nil
	}

	candidate := state.Candidate
	if state.CreateNew {
		candidate = s.data.AddChartable().ID
	}
	if err := s.data.AddChartEntry(id, models.ChartableRef(candidate)); err != nil {
		return err
	}

	s.editing[id] = EditState{}
	s.persistLocked(ctx)
	return nil
}

// CancelAdd discards the pending addition; nothing is mutated.
func (s *Session) CancelAdd(id models.ChartID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.editing[id]; ok && state.Mode == ModeAdding {
		s.editing[id] = EditState{}
	}
}

// OpenChartable expands one chartable row for editing, closing any other.
// Opening the already-open row closes it (the per-row edit/close toggle).
func (s *Session) OpenChartable(id models.ChartID, chartableID models.ChartableID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.editing[id]
	if state.Mode == ModeEditing && state.Editing == chartableID {
		s.editing[id] = EditState{}
		return
	}
	s.editing[id] = EditState{Mode: ModeEditing, Editing: chartableID}
}

// CloseEditing returns the chart to browsing mode. Called after any
// delete or reorder so the page never keeps an edit row open for an entry
// that moved or vanished.
func (s *Session) CloseEditing(id models.ChartID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing[id] = EditState{}
}
