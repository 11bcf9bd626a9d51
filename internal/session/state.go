// Package session owns the client's authentication truth. State is the single
// writer; everything else reads it through View.
package session

import (
	"context"
	"errors"
	"sync"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"
	"taskflow-client/internal/events"
	"taskflow-client/internal/pkg/logger"
	"taskflow-client/internal/pkg/validation"
)

const module = "session"

// ErrSuperseded is returned when a remote answer arrived after a later
// transition and was therefore not applied.
var ErrSuperseded = errors.New("session: result superseded by a later transition")

type Authority interface {
	Login(ctx context.Context, req dto.LoginRequest) (*entity.UserProfile, error)
	Logout(ctx context.Context) error
	Verify(ctx context.Context) (*entity.UserProfile, error)
	Signup(ctx context.Context, req dto.SignupRequest) error
}

type Status string

const (
	StatusAnonymous     Status = "Anonymous"
	StatusAuthenticated Status = "Authenticated"
)

// Session is an immutable snapshot. User is non-nil iff Authenticated.
type Session struct {
	Authenticated bool
	User          *entity.UserProfile
}

func (s Session) Status() Status {
	if s.Authenticated {
		return StatusAuthenticated
	}
	return StatusAnonymous
}

func anonymous() Session {
	return Session{}
}

func authenticated(user entity.UserProfile) Session {
	return Session{Authenticated: true, User: &user}
}

// View is the read-only handle handed to consumers.
type View interface {
	Snapshot() Session
	IsAuthenticated() bool
}

type State struct {
	authority Authority
	publisher events.IPublisher
	logger    logger.ILogger

	mu      sync.Mutex
	session Session
	// epoch changes whenever the identity behind the session changes.
	epoch uint64
	// loggingOut counts remote logouts still in flight. While it is non-zero
	// the authority may still honor the old credential, so no result may
	// authenticate the session.
	loggingOut int
}

func NewState(authority Authority, publisher events.IPublisher, l logger.ILogger) *State {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &State{
		authority: authority,
		publisher: publisher,
		logger:    l,
		session:   anonymous(),
	}
}

func (s *State) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Session {
	if s.session.User == nil {
		return anonymous()
	}
	return authenticated(*s.session.User)
}

func (s *State) IsAuthenticated() bool {
	return s.Snapshot().Authenticated
}

func (s *State) currentEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// apply installs next if no identity-changing transition happened since the
// request was issued at epoch.
func (s *State) apply(ctx context.Context, epoch uint64, next Session, eventType string) bool {
	s.mu.Lock()
	if s.epoch != epoch || (next.Authenticated && s.loggingOut > 0) {
		s.mu.Unlock()
		return false
	}
	if identityChanged(s.session, next) {
		s.epoch++
	}
	s.session = next
	s.mu.Unlock()

	s.publish(ctx, next, eventType)
	return true
}

func (s *State) reset(ctx context.Context, eventType string) uint64 {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.session = anonymous()
	s.mu.Unlock()

	s.publish(ctx, anonymous(), eventType)
	return epoch
}

func identityChanged(prev, next Session) bool {
	if prev.Authenticated != next.Authenticated {
		return true
	}
	if prev.User == nil || next.User == nil {
		return prev.User != next.User
	}
	return prev.User.Id != next.User.Id
}

func (s *State) publish(ctx context.Context, sess Session, eventType string) {
	data := map[string]interface{}{"status": string(sess.Status())}
	if sess.User != nil {
		data["user_id"] = sess.User.Id
	}
	if err := s.publisher.Publish(ctx, events.TopicSession, events.New(eventType, data)); err != nil {
		s.logger.Warn(module, "Failed to publish session event", map[string]interface{}{"event": eventType, "error": err.Error()})
	}
}

// Login authenticates with the authority. On failure the session is left as
// it was.
func (s *State) Login(ctx context.Context, creds dto.LoginRequest) (*entity.UserProfile, error) {
	if err := validation.Struct(creds); err != nil {
		return nil, err
	}

	epoch := s.currentEpoch()
	user, err := s.authority.Login(ctx, creds)
	if err != nil {
		s.logger.Warn(module, "Login failed", map[string]interface{}{"email": creds.Email, "error": err.Error()})
		return nil, asAuthError(err)
	}

	if !s.apply(ctx, epoch, authenticated(*user), "SESSION_AUTHENTICATED") {
		s.logger.Info(module, "Discarding login result after a later transition", map[string]interface{}{"user_id": user.Id})
		return nil, ErrSuperseded
	}

	s.logger.Info(module, "User logged in", map[string]interface{}{"user_id": user.Id})
	return user, nil
}

// Logout always ends Anonymous. A failed remote call is logged, never
// returned: a user must not get stuck signed in.
func (s *State) Logout(ctx context.Context) {
	s.mu.Lock()
	s.loggingOut++
	s.mu.Unlock()
	s.reset(ctx, "SESSION_LOGGED_OUT")

	if err := s.authority.Logout(ctx); err != nil {
		s.logger.Warn(module, "Remote logout failed; session dropped locally", map[string]interface{}{"error": err.Error()})
	}

	// Requests issued while the remote session was still alive resolve
	// against a stale epoch from here on.
	s.mu.Lock()
	s.loggingOut--
	s.epoch++
	s.mu.Unlock()
}

// Verify asks the authority whether the session is still active. Any failure
// leaves the session Anonymous; the error is returned for display only.
func (s *State) Verify(ctx context.Context) (Session, error) {
	epoch := s.currentEpoch()
	user, err := s.authority.Verify(ctx)
	if err != nil {
		if !s.apply(ctx, epoch, anonymous(), "SESSION_VERIFY_FAILED") {
			return s.Snapshot(), ErrSuperseded
		}
		s.logger.Info(module, "Session verification failed", map[string]interface{}{"error": err.Error()})
		return s.Snapshot(), asAuthError(err)
	}

	if !s.apply(ctx, epoch, authenticated(*user), "SESSION_VERIFIED") {
		return s.Snapshot(), ErrSuperseded
	}
	return s.Snapshot(), nil
}

// Signup registers an account. The session itself does not change.
func (s *State) Signup(ctx context.Context, req dto.SignupRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	if err := s.authority.Signup(ctx, req); err != nil {
		s.logger.Warn(module, "Signup failed", map[string]interface{}{"email": req.Email, "error": err.Error()})
		return err
	}
	s.logger.Info(module, "Account registered", map[string]interface{}{"email": req.Email})
	return nil
}

func asAuthError(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) && (appErr.Kind == apperror.KindAuth || appErr.Kind == apperror.KindNetwork) {
		return appErr
	}
	return &apperror.Error{Kind: apperror.KindAuth, Reason: apperror.ReasonServerError, Err: err}
}
