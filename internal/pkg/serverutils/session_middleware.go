package serverutils

import (
	"extensions-web/internal/constant"
	"extensions-web/internal/model"
	"extensions-web/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionMiddleware resolves the visitor's session record before any route
// runs and parks it in Locals. Handlers mutate that copy and persist through
// the session service.
func SessionMiddleware(sessions service.ISessionService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sess, err := sessions.Resolve(ctx)
		if err != nil {
			return err
		}
		ctx.Locals(constant.LocalsSession, sess)
		return ctx.Next()
	}
}

func SessionFromCtx(ctx *fiber.Ctx) *model.Session {
	sess, _ := ctx.Locals(constant.LocalsSession).(*model.Session)
	return sess
}
