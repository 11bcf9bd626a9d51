// Package transport talks to the Session Authority and the Resource Store over
// HTTP. Every request carries the ambient session cookie captured at login;
// every reply is unwrapped from the {success, data, message} envelope and
// failures are classified into the apperror taxonomy here, once.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SessionCookieName is the cookie the Session Authority sets on login.
const SessionCookieName = "accessToken"

const module = "transport"

type Client struct {
	baseURL string
	timeout time.Duration
	logger  logger.ILogger
	tracer  trace.Tracer

	mu    sync.RWMutex
	token string
}

func NewClient(baseURL string, timeout time.Duration, l logger.ILogger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  l,
		tracer:  otel.Tracer("taskflow-client/transport"),
	}
}

func (c *Client) SessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setSessionToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type reply struct {
	status  int
	env     envelope
	decoded bool
	// cookie is nil when the response did not touch the session cookie.
	cookie *string
}

func (r *reply) ok() bool {
	return r.status >= 200 && r.status < 300 && r.decoded && r.env.Success
}

func (r *reply) message() string {
	if r.env.Message != "" {
		return r.env.Message
	}
	return http.StatusText(r.status)
}

// send performs one request. Its error is always a NetworkError; remote
// failures come back as a reply for the caller to classify.
func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*reply, error) {
	ctx, span := c.tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", c.baseURL+path),
	)

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, apperror.Network(err)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if body != nil {
		a.JSON(body)
	}
	if token := c.SessionToken(); token != "" {
		a.Cookie(SessionCookieName, token)
	}
	a.Timeout(timeout)

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		span.SetStatus(codes.Error, err.Error())
		return nil, apperror.Network(fmt.Errorf("prepare request: %w", err))
	}

	resp := fiber.AcquireResponse()
	defer fiber.ReleaseResponse(resp)
	a.SetResponse(resp)

	started := time.Now()
	status, raw, errs := a.Bytes()
	if len(errs) > 0 {
		c.logger.Warn(module, "Request failed before a response arrived", map[string]interface{}{
			"method": method,
			"path":   path,
			"error":  errs[0].Error(),
		})
		span.SetStatus(codes.Error, errs[0].Error())
		return nil, apperror.Network(fmt.Errorf("%s %s: %w", method, path, errs[0]))
	}
	if err := ctx.Err(); err != nil {
		return nil, apperror.Network(err)
	}

	span.SetAttributes(attribute.Int("http.status_code", status))
	c.logger.Debug(module, "Request completed", map[string]interface{}{
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": time.Since(started).Milliseconds(),
	})

	r := &reply{status: status}
	if len(raw) > 0 && json.Unmarshal(raw, &r.env) == nil {
		r.decoded = true
	}

	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)
	cookie.SetKey(SessionCookieName)
	if resp.Header.Cookie(cookie) {
		value := string(cookie.Value())
		r.cookie = &value
	}

	if !r.ok() {
		span.SetStatus(codes.Error, r.message())
	}
	return r, nil
}

// call sends a request and decodes the envelope data into out. Remote
// failures are reported as failKind.
func (c *Client) call(ctx context.Context, method, path string, body interface{}, failKind apperror.Kind, out interface{}) error {
	r, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if !r.ok() {
		return apperror.Remote(failKind, r.status, r.message())
	}
	if out == nil || len(r.env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.env.Data, out); err != nil {
		return &apperror.Error{Kind: failKind, Status: r.status, Message: "malformed response", Err: err}
	}
	return nil
}
