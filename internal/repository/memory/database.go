package memory

import (
	"context"
	"fmt"
	"sync"

	"taskflow-client/internal/entity"
	"taskflow-client/internal/repository/contract"
	"taskflow-client/internal/repository/unitofwork"
)

// Database is the in-process backing store used when no
// DB_CONNECTION_STRING is configured. Slices keep creation order.
type Database struct {
	mu       sync.RWMutex
	users    []entity.User
	projects []entity.Project
	tasks    []entity.Task

	// txMu serializes transactions with each other. Writes outside a
	// transaction do not take it; a rollback undoes only its own writes.
	txMu sync.Mutex
}

func NewDatabase() *Database {
	return &Database{}
}

// without drops the items matching match and reports their positions so an
// undo can put them back.
func without[T any](items []T, match func(T) bool) ([]T, []int, []T) {
	kept := items[:0:0]
	var positions []int
	var removed []T
	for i, item := range items {
		if match(item) {
			positions = append(positions, i)
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}
	return kept, positions, removed
}

// reinsert puts removed items back at their old positions, clamped to the
// current length.
func reinsert[T any](items []T, positions []int, removed []T) []T {
	for i, item := range removed {
		at := positions[i]
		if at > len(items) {
			at = len(items)
		}
		items = append(items, item)
		copy(items[at+1:], items[at:])
		items[at] = item
	}
	return items
}

type repositoryFactory struct {
	db *Database
}

func NewRepositoryFactory(db *Database) unitofwork.RepositoryFactory {
	return &repositoryFactory{db: db}
}

func (f *repositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{db: f.db}
}

type unitOfWork struct {
	db     *Database
	active bool
	// undo holds the inverse of every write made since Begin.
	undo []func()
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.active {
		return fmt.Errorf("transaction already started")
	}
	u.db.txMu.Lock()
	u.undo = nil
	u.active = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.active {
		return fmt.Errorf("no transaction to commit")
	}
	u.end()
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.active {
		return fmt.Errorf("no transaction to rollback")
	}
	u.db.mu.Lock()
	for i := len(u.undo) - 1; i >= 0; i-- {
		u.undo[i]()
	}
	u.db.mu.Unlock()
	u.end()
	return nil
}

func (u *unitOfWork) end() {
	u.undo = nil
	u.active = false
	u.db.txMu.Unlock()
}

// record registers the inverse of a write. Callers hold db.mu.
func (u *unitOfWork) record(undo func()) {
	if u.active {
		u.undo = append(u.undo, undo)
	}
}

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return &userRepository{db: u.db, tx: u}
}

func (u *unitOfWork) ProjectRepository() contract.ProjectRepository {
	return &projectRepository{db: u.db, tx: u}
}

func (u *unitOfWork) TaskRepository() contract.TaskRepository {
	return &taskRepository{db: u.db, tx: u}
}
