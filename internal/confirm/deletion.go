// Package confirm guards a collection's remove behind an explicit
// request/confirm step.
package confirm

import (
	"context"
	"sync"

	"taskflow-client/internal/pkg/logger"
)

const module = "confirm"

type State string

const (
	StateIdle           State = "Idle"
	StatePendingConfirm State = "PendingConfirm"
)

// Remover is the collection operation a Deletion wraps.
type Remover interface {
	Remove(ctx context.Context, id string) error
}

// Deletion holds at most one target awaiting confirmation.
type Deletion struct {
	remover Remover
	logger  logger.ILogger

	mu     sync.Mutex
	target string
	armed  bool
}

func NewDeletion(remover Remover, l logger.ILogger) *Deletion {
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Deletion{remover: remover, logger: l}
}

// RequestDelete arms the deletion for id, replacing any earlier target.
func (d *Deletion) RequestDelete(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = id
	d.armed = true
}

// Confirm removes the armed target and returns to Idle whatever the outcome.
// It reports false and does nothing when no target is armed.
func (d *Deletion) Confirm(ctx context.Context) (bool, error) {
	d.mu.Lock()
	if !d.armed {
		d.mu.Unlock()
		return false, nil
	}
	id := d.target
	d.target = ""
	d.armed = false
	d.mu.Unlock()

	if err := d.remover.Remove(ctx, id); err != nil {
		d.logger.Warn(module, "Confirmed deletion failed", map[string]interface{}{"id": id, "error": err.Error()})
		return true, err
	}
	d.logger.Info(module, "Confirmed deletion", map[string]interface{}{"id": id})
	return true, nil
}

func (d *Deletion) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.target = ""
	d.armed = false
}

func (d *Deletion) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.armed {
		return StatePendingConfirm
	}
	return StateIdle
}

// Target returns the armed id, if any.
func (d *Deletion) Target() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.target, d.armed
}

func (d *Deletion) IsPending(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed && d.target == id
}
