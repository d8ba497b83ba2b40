package serverutils

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware gates wizard pages on a signed-in session. The sign-in
// service itself is external; this only consults session state and bounces
// unauthenticated visitors out with a return-to parameter.
func AuthMiddleware(signInURL string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sess := SessionFromCtx(ctx)
		if sess == nil || !sess.Data.SignInInfo.SignedIn {
			target := signInURL + "?return_to=" + url.QueryEscape(ctx.OriginalURL())
			return ctx.Redirect(target, fiber.StatusFound)
		}
		return ctx.Next()
	}
}
