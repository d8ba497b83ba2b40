package serverutils

import (
	"errors"

	"extensions-web/internal/pkg/apperrors"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/pkg/render"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware is the shared error handler. Validation-class upload
// errors never arrive here (the responder consumes them at the route);
// session-integrity errors always do and surface as a generic 500 rendering
// the error page. Downstream errors that call sites did not recognize land
// here too.
func ErrorHandlerMiddleware(renderer render.IRenderer, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var sde *apperrors.SessionDataError
		if errors.As(err, &sde) {
			log.Error("ErrorHandler", "Session data missing", map[string]interface{}{
				"field": sde.Field,
				"path":  ctx.Path(),
			})
			return renderErrorPage(ctx, renderer)
		}

		var de *apperrors.DownstreamError
		if errors.As(err, &de) {
			log.Error("ErrorHandler", "Downstream call failed", map[string]interface{}{
				"operation": de.Operation,
				"status":    de.Status,
				"path":      ctx.Path(),
			})
			return renderErrorPage(ctx, renderer)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).SendString(fe.Message)
		}

		log.Error("ErrorHandler", "Unhandled error", map[string]interface{}{
			"error": err.Error(),
			"path":  ctx.Path(),
		})
		return renderErrorPage(ctx, renderer)
	}
}

func renderErrorPage(ctx *fiber.Ctx, renderer render.IRenderer) error {
	ctx.Status(fiber.StatusInternalServerError)
	html, err := renderer.Render("error", fiber.Map{})
	if err != nil {
		return ctx.SendString("Sorry, there is a problem with the service")
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(html)
}
