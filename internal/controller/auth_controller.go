package controller

import (
	"time"

	"taskflow-client/internal/dto"
	"taskflow-client/internal/pkg/serverutils"
	"taskflow-client/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Signup(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	CheckAuth(ctx *fiber.Ctx) error
}

type authController struct {
	service      service.IAuthService
	secureCookie bool
}

func NewAuthController(service service.IAuthService, secureCookie bool) IAuthController {
	return &authController{service: service, secureCookie: secureCookie}
}

func (c *authController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/signup", c.Signup)
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
	h.Get("/check-auth", auth, c.CheckAuth)
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	user, err := c.service.Signup(ctx.UserContext(), &req)
	if err != nil {
		return failure(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusCreated, "User registered successfully", user)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ValidateRequest(ctx, &req); err != nil {
		return err
	}

	issued, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return failure(err)
	}

	c.setSessionCookie(ctx, issued.Token, issued.ExpiresAt)
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Login successful", issued.User)
}

// Logout always succeeds and always clears the cookie.
func (c *authController) Logout(ctx *fiber.Ctx) error {
	c.service.Logout(ctx.UserContext(), serverutils.TokenFromRequest(ctx))
	c.setSessionCookie(ctx, "", time.Unix(0, 0))
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Logged out successfully", nil)
}

func (c *authController) CheckAuth(ctx *fiber.Ctx) error {
	user, err := c.service.CheckAuth(ctx.UserContext(), serverutils.UserId(ctx))
	if err != nil {
		return failure(err)
	}
	return serverutils.SuccessResponse(ctx, fiber.StatusOK, "Authenticated", user)
}

func (c *authController) setSessionCookie(ctx *fiber.Ctx, token string, expires time.Time) {
	ctx.Cookie(&fiber.Cookie{
		Name:     serverutils.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   c.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
