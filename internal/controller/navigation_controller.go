package controller

import (
	"extensions-web/internal/constant"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/pkg/serverutils"
	"extensions-web/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INavigationController interface {
	RegisterRoutes(r fiber.Router)
	Back(ctx *fiber.Ctx) error
}

type navigationController struct {
	sessions service.ISessionService
	logger   logger.ILogger
}

func NewNavigationController(sessions service.ISessionService, log logger.ILogger) INavigationController {
	return &navigationController{sessions: sessions, logger: log}
}

func (c *navigationController) RegisterRoutes(r fiber.Router) {
	r.Get(constant.PathBack, c.Back)
}

// Back pops the breadcrumb stack to find where "back" should land. When the
// popped candidate equals the page the user is actually viewing (the
// Referer), the browser's own history already advanced past it and a single
// pop would make the back button appear to do nothing, so it pops twice.
func (c *navigationController) Back(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	sess.Data.NavigationBackFlag = true

	stack := sess.Data.PageHistory.PageHistory
	if len(stack) == 0 {
		c.logger.Info("NavigationController", "Back requested with empty breadcrumb stack", nil)
		if err := c.sessions.Save(ctx.Context(), sess); err != nil {
			return err
		}
		return ctx.Redirect(constant.PathStart, fiber.StatusFound)
	}

	candidate := stack[len(stack)-1]
	stack = stack[:len(stack)-1]

	referer := ctx.Get(fiber.HeaderReferer)
	if referer == "" {
		// Cannot disambiguate, trust the pop.
		sess.Data.PageHistory.PageHistory = stack
		if err := c.sessions.Save(ctx.Context(), sess); err != nil {
			return err
		}
		return ctx.Redirect(candidate, fiber.StatusFound)
	}

	if candidate == serverutils.RelativePath(referer) {
		if len(stack) > 0 {
			candidate = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		} else {
			candidate = ""
		}
	}

	sess.Data.PageHistory.PageHistory = stack
	if err := c.sessions.Save(ctx.Context(), sess); err != nil {
		return err
	}

	if candidate == "" {
		return ctx.Redirect(constant.PathStart, fiber.StatusFound)
	}
	return ctx.Redirect(candidate, fiber.StatusFound)
}
