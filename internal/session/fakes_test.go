package session

import (
	"context"
	"sync"

	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"
	"taskflow-client/internal/events"
)

type fakeAuthority struct {
	mu sync.Mutex

	loginUser  *entity.UserProfile
	loginErr   error
	verifyUser *entity.UserProfile
	verifyErr  error
	logoutErr  error
	signupErr  error

	// when set, Verify signals verifyStarted and waits for releaseVerify.
	verifyStarted chan struct{}
	releaseVerify chan struct{}
	// when set, Logout signals logoutStarted and waits for releaseLogout.
	logoutStarted chan struct{}
	releaseLogout chan struct{}

	loginCalls  int
	logoutCalls int
	verifyCalls int
	signupCalls int
}

func (f *fakeAuthority) Login(ctx context.Context, req dto.LoginRequest) (*entity.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	u := *f.loginUser
	return &u, nil
}

func (f *fakeAuthority) Logout(ctx context.Context) error {
	f.mu.Lock()
	f.logoutCalls++
	started, release := f.logoutStarted, f.releaseLogout
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logoutErr
}

func (f *fakeAuthority) Verify(ctx context.Context) (*entity.UserProfile, error) {
	f.mu.Lock()
	f.verifyCalls++
	started, release := f.verifyStarted, f.releaseVerify
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	u := *f.verifyUser
	return &u, nil
}

func (f *fakeAuthority) Signup(ctx context.Context, req dto.SignupRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signupCalls++
	return f.signupErr
}

func (f *fakeAuthority) calls() (login, logout, verify int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loginCalls, f.logoutCalls, f.verifyCalls
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

var alice = &entity.UserProfile{Id: "u1", Name: "Alice", Email: "alice@example.com", Role: entity.UserRoleMember}
