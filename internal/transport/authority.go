package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"

	"github.com/gofiber/fiber/v2"
)

func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*entity.UserProfile, error) {
	r, err := c.send(ctx, fiber.MethodPost, "/api/auth/login", req)
	if err != nil {
		return nil, err
	}
	if !r.ok() {
		if r.status >= http.StatusInternalServerError {
			return nil, apperror.Auth(apperror.ReasonServerError, r.status, "Server error. Please try again later.")
		}
		return nil, apperror.Auth(apperror.ReasonInvalidCredentials, r.status, r.message())
	}

	var user entity.UserProfile
	if err := json.Unmarshal(r.env.Data, &user); err != nil {
		return nil, &apperror.Error{Kind: apperror.KindAuth, Reason: apperror.ReasonServerError, Status: r.status, Message: "malformed login response", Err: err}
	}
	if r.cookie != nil {
		c.setSessionToken(*r.cookie)
	}
	return &user, nil
}

// Logout asks the authority to end the session. The local credential is
// dropped whatever the outcome.
func (c *Client) Logout(ctx context.Context) error {
	defer c.setSessionToken("")

	r, err := c.send(ctx, fiber.MethodPost, "/api/auth/logout", nil)
	if err != nil {
		return err
	}
	if !r.ok() {
		return apperror.Auth(apperror.ReasonServerError, r.status, r.message())
	}
	return nil
}

func (c *Client) Verify(ctx context.Context) (*entity.UserProfile, error) {
	r, err := c.send(ctx, fiber.MethodGet, "/api/auth/check-auth", nil)
	if err != nil {
		return nil, err
	}
	if !r.ok() {
		if r.status == http.StatusUnauthorized || r.status == http.StatusForbidden {
			return nil, apperror.Auth(apperror.ReasonUnauthorized, r.status, r.message())
		}
		return nil, apperror.Auth(apperror.ReasonServerError, r.status, r.message())
	}

	var user entity.UserProfile
	if err := json.Unmarshal(r.env.Data, &user); err != nil {
		return nil, &apperror.Error{Kind: apperror.KindAuth, Reason: apperror.ReasonServerError, Status: r.status, Message: "malformed session response", Err: err}
	}
	if r.cookie != nil && *r.cookie != "" {
		c.setSessionToken(*r.cookie)
	}
	return &user, nil
}

func (c *Client) Signup(ctx context.Context, req dto.SignupRequest) error {
	return c.call(ctx, fiber.MethodPost, "/api/auth/signup", req, apperror.KindCreate, nil)
}
