package collection

import (
	"context"
	"fmt"
	"sync"

	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"
	"taskflow-client/internal/events"
)

// fakeStore is an in-memory Resource Store. A gated operation does its work,
// reports on started and then waits for the gate to close before answering.
type fakeStore[T Entity, D any] struct {
	mu      sync.Mutex
	remote  []T
	build   func(id string, draft D) T
	nextId  int
	errs    map[string]error
	gates   map[string]chan struct{}
	started chan string
	calls   map[string]int
}

func newFakeStore[T Entity, D any](build func(id string, draft D) T, remote ...T) *fakeStore[T, D] {
	return &fakeStore[T, D]{
		remote:  remote,
		build:   build,
		nextId:  len(remote),
		errs:    make(map[string]error),
		gates:   make(map[string]chan struct{}),
		started: make(chan string, 8),
		calls:   make(map[string]int),
	}
}

func (f *fakeStore[T, D]) gate(op string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[op] = ch
	return ch
}

func (f *fakeStore[T, D]) fail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = err
}

func (f *fakeStore[T, D]) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeStore[T, D]) snapshot() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]T(nil), f.remote...)
}

func (f *fakeStore[T, D]) setRemote(items ...T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remote = items
}

func (f *fakeStore[T, D]) enter(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.errs[op]
}

func (f *fakeStore[T, D]) wait(op string) {
	f.mu.Lock()
	gate := f.gates[op]
	f.mu.Unlock()
	if gate == nil {
		return
	}
	f.started <- op
	<-gate
}

func (f *fakeStore[T, D]) List(ctx context.Context) ([]T, error) {
	if err := f.enter("list"); err != nil {
		return nil, err
	}
	items := f.snapshot()
	f.wait("list")
	return items, nil
}

func (f *fakeStore[T, D]) Create(ctx context.Context, draft D) (T, error) {
	var zero T
	if err := f.enter("create"); err != nil {
		return zero, err
	}
	f.mu.Lock()
	f.nextId++
	item := f.build(fmt.Sprintf("id-%d", f.nextId), draft)
	f.remote = append(f.remote, item)
	f.mu.Unlock()
	f.wait("create")
	return item, nil
}

func (f *fakeStore[T, D]) Update(ctx context.Context, id string, item T) (T, error) {
	var zero T
	if err := f.enter("update"); err != nil {
		return zero, err
	}
	f.mu.Lock()
	for i := range f.remote {
		if f.remote[i].GetId() == id {
			f.remote[i] = item
		}
	}
	f.mu.Unlock()
	f.wait("update")
	return item, nil
}

func (f *fakeStore[T, D]) Delete(ctx context.Context, id string) error {
	if err := f.enter("delete"); err != nil {
		return err
	}
	f.mu.Lock()
	for i := range f.remote {
		if f.remote[i].GetId() == id {
			f.remote = append(f.remote[:i], f.remote[i+1:]...)
			break
		}
	}
	f.mu.Unlock()
	f.wait("delete")
	return nil
}

func buildProject(id string, d dto.CreateProjectRequest) entity.Project {
	return entity.Project{Id: id, Title: d.Title, Description: d.Description, Owner: "u1"}
}

func newProjectStore(remote ...entity.Project) *fakeStore[entity.Project, dto.CreateProjectRequest] {
	return newFakeStore[entity.Project, dto.CreateProjectRequest](buildProject, remote...)
}

func project(id, title string) entity.Project {
	return entity.Project{Id: id, Title: title, Description: title + " description", Owner: "u1"}
}

type fakeTaskStore struct {
	*fakeStore[entity.Task, dto.TaskDraft]
	projectId string
}

func (f fakeTaskStore) ProjectId() string {
	return f.projectId
}

func newTaskStore(projectId string, remote ...entity.Task) fakeTaskStore {
	build := func(id string, d dto.TaskDraft) entity.Task {
		req := d.ForProject(projectId)
		return entity.Task{Id: id, Title: req.Title, Description: req.Description, Status: req.Status, ProjectId: projectId}
	}
	return fakeTaskStore{
		fakeStore: newFakeStore[entity.Task, dto.TaskDraft](build, remote...),
		projectId: projectId,
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}
