package serverutils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie carries the session token; a Bearer header is accepted too.
const SessionCookie = "accessToken"

type TokenParser interface {
	ParseToken(token string) (string, error)
}

func NewJwtMiddleware(parser TokenParser) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := TokenFromRequest(ctx)
		if tokenStr == "" {
			return ErrorResponse(ctx, fiber.StatusUnauthorized, "Missing token")
		}

		userId, err := parser.ParseToken(tokenStr)
		if err != nil {
			return ErrorResponse(ctx, fiber.StatusUnauthorized, "Invalid token")
		}

		ctx.Locals("user_id", userId)
		ctx.Locals("token", tokenStr)
		return ctx.Next()
	}
}

func TokenFromRequest(ctx *fiber.Ctx) string {
	if cookie := ctx.Cookies(SessionCookie); cookie != "" {
		return cookie
	}
	authHeader := ctx.Get(fiber.HeaderAuthorization)
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return authHeader[7:]
}

// UserId returns the id the middleware stored for this request.
func UserId(ctx *fiber.Ctx) string {
	userId, _ := ctx.Locals("user_id").(string)
	return userId
}
