package serverutils

import (
	"time"

	"extensions-web/internal/constant"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/pkg/monitor"

	"github.com/gofiber/fiber/v2"
)

// AdmissionMiddleware sheds load from the downstream processing API: once the
// daily submission ceiling is hit, requests short-circuit to a static page
// until the UTC day rolls over.
func AdmissionMiddleware(m monitor.IRequestCountMonitor, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if m.Exceeded(time.Now()) {
			log.Warn("AdmissionMiddleware", "Daily request ceiling reached, shedding", map[string]interface{}{
				"path": ctx.Path(),
			})
			return ctx.Redirect(constant.PathTooManyRequests, fiber.StatusFound)
		}
		return ctx.Next()
	}
}
