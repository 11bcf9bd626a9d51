// Package edit holds the edit-in-progress state for one item of a
// collection. The draft is a private copy; the collection keeps the
// authoritative item until a save is acknowledged.
package edit

import (
	"context"
	"errors"
	"sync"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/pkg/logger"
)

const module = "edit"

var ErrNotEditing = errors.New("edit: no draft open")

type State string

const (
	StateClosed  State = "Closed"
	StateEditing State = "Editing"
	StateSaving  State = "Saving"
)

// FieldSetter is satisfied by *entity.Task and *entity.Project.
type FieldSetter[T any] interface {
	*T
	SetField(name, value string) error
}

// Target is the collection an edit session saves through.
type Target[T any] interface {
	Find(id string) (T, bool)
	Update(ctx context.Context, id string, item T) (T, error)
}

type Session[T interface{ GetId() string }, PT FieldSetter[T]] struct {
	target Target[T]
	logger logger.ILogger

	mu    sync.Mutex
	state State
	draft T
	// token changes on every open and discard so a save can tell whether
	// the draft it sent is still the one on screen.
	token uint64
}

func NewSession[T interface{ GetId() string }, PT FieldSetter[T]](target Target[T], l logger.ILogger) *Session[T, PT] {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Session[T, PT]{target: target, logger: l, state: StateClosed}
}

// Open starts editing a copy of item. A draft already open is discarded.
func (s *Session[T, PT]) Open(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateClosed {
		s.logger.Debug(module, "Discarding open draft", map[string]interface{}{"id": s.draft.GetId()})
	}
	s.token++
	s.draft = item
	s.state = StateEditing
}

// OpenById opens the collection's current copy of id.
func (s *Session[T, PT]) OpenById(id string) error {
	item, ok := s.target.Find(id)
	if !ok {
		return apperror.New(apperror.KindUpdate, "Item not found: "+id)
	}
	s.Open(item)
	return nil
}

// MutateField changes one field of the draft.
func (s *Session[T, PT]) MutateField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateClosed:
		return ErrNotEditing
	case StateSaving:
		return apperror.Busy("save")
	}

	next := s.draft
	if err := PT(&next).SetField(name, value); err != nil {
		return err
	}
	s.draft = next
	return nil
}

// Save sends the draft through the collection. Success closes the session;
// failure returns to Editing with the draft intact. If the draft was
// discarded or replaced while saving, the result leaves the session alone.
func (s *Session[T, PT]) Save(ctx context.Context) (T, error) {
	var zero T

	s.mu.Lock()
	switch s.state {
	case StateClosed:
		s.mu.Unlock()
		return zero, ErrNotEditing
	case StateSaving:
		s.mu.Unlock()
		return zero, apperror.Busy("save")
	}
	s.state = StateSaving
	token := s.token
	draft := s.draft
	s.mu.Unlock()

	saved, err := s.target.Update(ctx, draft.GetId(), draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		s.logger.Debug(module, "Ignoring save for a discarded draft", map[string]interface{}{"id": draft.GetId()})
		return saved, err
	}
	if err != nil {
		s.state = StateEditing
		s.logger.Warn(module, "Save failed, draft kept", map[string]interface{}{"id": draft.GetId(), "error": err.Error()})
		return zero, err
	}

	s.state = StateClosed
	s.draft = zero
	s.token++
	return saved, nil
}

// Discard closes the session from any state.
func (s *Session[T, PT]) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.state = StateClosed
	s.draft = zero
	s.token++
}

func (s *Session[T, PT]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns a copy of the open draft.
func (s *Session[T, PT]) Draft() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft, s.state != StateClosed
}
