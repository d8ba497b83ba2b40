package serverutils

import (
	"net/url"
	"strings"

	"extensions-web/internal/constant"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/service"

	"github.com/gofiber/fiber/v2"
)

// HistoryMiddleware maintains the breadcrumb stack used for "back"
// navigation, reconstructed purely from Referer headers. The stack holds
// distinct, navigable pages only: reason-id links and the remove-document
// path are transient and would corrupt back semantics if recorded.
//
// Runs on GET requests; the back route and the continue-without-documents
// shortcut are skipped entirely.
func HistoryMiddleware(sessions service.ISessionService, signInURL string, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if ctx.Method() != fiber.MethodGet {
			return ctx.Next()
		}
		switch ctx.Path() {
		case constant.PathBack, constant.PathContinueNoDocs:
			return ctx.Next()
		}

		referer := ctx.Get(fiber.HeaderReferer)
		if referer == "" {
			return ctx.Next()
		}

		sess := SessionFromCtx(ctx)
		if sess == nil {
			return ctx.Next()
		}

		// Arriving from the external sign-in service counts as arriving
		// from the start page.
		if signInURL != "" && strings.HasPrefix(referer, signInURL) {
			referer = constant.PathStart
		}

		refPath := RelativePath(referer)
		restart := refPath == constant.PathStart

		if restart {
			sess.Data.NavigationBackFlag = false
			sess.Data.PageHistory.PageHistory = sess.Data.PageHistory.PageHistory[:0]
		}

		if !sess.Data.NavigationBackFlag || restart {
			if shouldRecord(refPath, ctx.Path(), sess.Data.PageHistory.PageHistory) {
				sess.Data.PageHistory.PageHistory = append(sess.Data.PageHistory.PageHistory, refPath)
				log.Debug("HistoryMiddleware", "Breadcrumb pushed", map[string]interface{}{
					"page":  refPath,
					"stack": sess.Data.PageHistory.PageHistory,
				})
			}
		} else {
			// A back navigation just happened; the next forward decision
			// starts clean.
			sess.Data.NavigationBackFlag = false
		}

		if err := sessions.Save(ctx.Context(), sess); err != nil {
			return err
		}
		return ctx.Next()
	}
}

func shouldRecord(refPath, currentPath string, stack []string) bool {
	if refPath == constant.PathStart {
		return false
	}
	if len(stack) > 0 && stack[len(stack)-1] == refPath {
		return false
	}
	if refPath == currentPath {
		return false
	}
	if strings.Contains(refPath, constant.QueryReasonID+"=") {
		return false
	}
	if strings.HasPrefix(refPath, constant.PathRemoveDocument) {
		return false
	}
	return true
}

// RelativePath strips scheme and host from a referer and drops the wizard's
// own template suffix, keeping any query string.
func RelativePath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	path := strings.TrimSuffix(u.Path, constant.TemplateSuffix)
	if path == "" {
		path = constant.PathStart
	}
	if u.RawQuery != "" {
		return path + "?" + u.RawQuery
	}
	return path
}
