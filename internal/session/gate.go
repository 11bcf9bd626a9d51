package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"taskflow-client/internal/pkg/logger"

	"golang.org/x/sync/singleflight"
)

type Decision string

const (
	DecisionSkip   Decision = "skip"
	DecisionVerify Decision = "verify"
)

// Policy maps a navigation path to a Decision. It is a pure table lookup.
type Policy struct {
	skip map[string]struct{}
}

// DefaultPolicy skips the landing, login and signup screens.
func DefaultPolicy() Policy {
	return NewPolicy("/", "/login", "/signup")
}

func NewPolicy(skipPaths ...string) Policy {
	p := Policy{skip: make(map[string]struct{}, len(skipPaths))}
	for _, path := range skipPaths {
		p.skip[NormalizePath(path)] = struct{}{}
	}
	return p
}

func (p Policy) Decide(path string) Decision {
	if _, ok := p.skip[NormalizePath(path)]; ok {
		return DecisionSkip
	}
	return DecisionVerify
}

// NormalizePath drops the query, the fragment and any trailing slash.
func NormalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

type Access string

const (
	AccessPublic     Access = "public"
	AccessGranted    Access = "granted"
	AccessDenied     Access = "denied"
	AccessSuperseded Access = "superseded"
)

type Result struct {
	Path     string
	Decision Decision
	Access   Access
	Session  Session
	// Err explains a denial; it is never fatal.
	Err error
}

type Verifier interface {
	Verify(ctx context.Context) (Session, error)
}

// Gate decides per navigation whether the session must be re-confirmed
// before gated content is shown.
type Gate struct {
	policy   Policy
	verifier Verifier
	logger   logger.ILogger

	inflight singleflight.Group

	mu  sync.Mutex
	seq uint64
}

func NewGate(policy Policy, verifier Verifier, l logger.ILogger) *Gate {
	return &Gate{policy: policy, verifier: verifier, logger: l}
}

func (g *Gate) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return g.seq
}

func (g *Gate) isLatest(seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq == seq
}

// Navigate handles one navigation event. Navigations to the same path that
// arrive while a verification is in flight join it instead of issuing
// another one. A result whose navigation was overtaken by a later one comes
// back as AccessSuperseded.
func (g *Gate) Navigate(ctx context.Context, path string) Result {
	seq := g.begin()
	path = NormalizePath(path)
	res := Result{Path: path, Decision: g.policy.Decide(path)}

	if res.Decision == DecisionSkip {
		res.Access = AccessPublic
		return res
	}

	v, err, shared := g.inflight.Do(path, func() (interface{}, error) {
		return g.verifier.Verify(ctx)
	})
	if sess, ok := v.(Session); ok {
		res.Session = sess
	}

	// A joined verify may have been issued before a login or logout. The
	// latest navigation still needs an answer for the current identity.
	if errors.Is(err, ErrSuperseded) && g.isLatest(seq) {
		g.logger.Debug(module, "Re-verifying after a superseded result", map[string]interface{}{"path": path, "shared": shared})
		res.Session, err = g.verifier.Verify(ctx)
	}

	if !g.isLatest(seq) || errors.Is(err, ErrSuperseded) {
		res.Access = AccessSuperseded
		return res
	}

	if err != nil || !res.Session.Authenticated {
		res.Access = AccessDenied
		res.Err = err
		g.logger.Info(module, "Navigation denied", map[string]interface{}{"path": path, "shared": shared})
		return res
	}

	res.Access = AccessGranted
	return res
}
