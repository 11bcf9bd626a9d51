package memory

import (
	"context"
	"strings"
	"time"

	"taskflow-client/internal/entity"

	"github.com/google/uuid"
)

type userRepository struct {
	db *Database
	tx *unitOfWork
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	user.Id = uuid.NewString()
	user.CreatedAt = time.Now()
	r.db.users = append(r.db.users, *user)
	id := user.Id
	r.tx.record(func() {
		r.db.users, _, _ = without(r.db.users, func(u entity.User) bool { return u.Id == id })
	})
	return nil
}

func (r *userRepository) FindById(ctx context.Context, id string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if u.Id == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, u := range r.db.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

type projectRepository struct {
	db *Database
	tx *unitOfWork
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	project.Id = uuid.NewString()
	r.db.projects = append(r.db.projects, *project)
	id := project.Id
	r.tx.record(func() {
		r.db.projects, _, _ = without(r.db.projects, func(p entity.Project) bool { return p.Id == id })
	})
	return nil
}

func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.projects {
		if r.db.projects[i].Id == project.Id {
			prev := r.db.projects[i]
			r.db.projects[i].Title = project.Title
			r.db.projects[i].Description = project.Description
			r.tx.record(func() {
				for j := range r.db.projects {
					if r.db.projects[j].Id == prev.Id {
						r.db.projects[j] = prev
					}
				}
			})
		}
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	kept, positions, removed := without(r.db.projects, func(p entity.Project) bool { return p.Id == id })
	r.db.projects = kept
	r.tx.record(func() {
		r.db.projects = reinsert(r.db.projects, positions, removed)
	})
	return nil
}

func (r *projectRepository) FindById(ctx context.Context, id string) (*entity.Project, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, p := range r.db.projects {
		if p.Id == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *projectRepository) FindAllByOwner(ctx context.Context, ownerId string) ([]*entity.Project, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	projects := make([]*entity.Project, 0)
	for _, p := range r.db.projects {
		if p.Owner == ownerId {
			found := p
			projects = append(projects, &found)
		}
	}
	return projects, nil
}

func (r *projectRepository) CountByOwner(ctx context.Context, ownerId string) (int64, error) {
	projects, err := r.FindAllByOwner(ctx, ownerId)
	return int64(len(projects)), err
}

type taskRepository struct {
	db *Database
	tx *unitOfWork
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	task.Id = uuid.NewString()
	r.db.tasks = append(r.db.tasks, *task)
	id := task.Id
	r.tx.record(func() {
		r.db.tasks, _, _ = without(r.db.tasks, func(t entity.Task) bool { return t.Id == id })
	})
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range r.db.tasks {
		if r.db.tasks[i].Id == task.Id {
			prev := r.db.tasks[i]
			r.db.tasks[i].Title = task.Title
			r.db.tasks[i].Description = task.Description
			r.db.tasks[i].Status = task.Status
			r.tx.record(func() {
				for j := range r.db.tasks {
					if r.db.tasks[j].Id == prev.Id {
						r.db.tasks[j] = prev
					}
				}
			})
		}
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	return r.deleteWhere(func(t entity.Task) bool { return t.Id == id })
}

func (r *taskRepository) DeleteAllByProject(ctx context.Context, projectId string) error {
	return r.deleteWhere(func(t entity.Task) bool { return t.ProjectId == projectId })
}

func (r *taskRepository) deleteWhere(match func(entity.Task) bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	kept, positions, removed := without(r.db.tasks, match)
	r.db.tasks = kept
	r.tx.record(func() {
		r.db.tasks = reinsert(r.db.tasks, positions, removed)
	})
	return nil
}

func (r *taskRepository) FindById(ctx context.Context, id string) (*entity.Task, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, t := range r.db.tasks {
		if t.Id == id {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (r *taskRepository) FindAllByProject(ctx context.Context, projectId string) ([]*entity.Task, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	tasks := make([]*entity.Task, 0)
	for _, t := range r.db.tasks {
		if t.ProjectId == projectId {
			found := t
			tasks = append(tasks, &found)
		}
	}
	return tasks, nil
}
