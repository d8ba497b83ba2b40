package controller

import (
	"extensions-web/internal/constant"
	"extensions-web/internal/pkg/render"

	"github.com/gofiber/fiber/v2"
)

type IStartController interface {
	RegisterRoutes(r fiber.Router)
}

type startController struct {
	renderer render.IRenderer
}

func NewStartController(renderer render.IRenderer) IStartController {
	return &startController{renderer: renderer}
}

func (c *startController) RegisterRoutes(r fiber.Router) {
	r.Get(constant.PathStart, c.page("index"))
	r.Get(constant.PathError, c.page("error"))
	r.Get(constant.PathTooManyRequests, c.page("too-many-requests"))
	r.Get(constant.PathAccessibility, c.page("accessibility-statement"))
	r.Get(constant.PathHealthcheck, c.Healthcheck)
}

func (c *startController) page(template string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		html, err := c.renderer.Render(template, fiber.Map{})
		if err != nil {
			return err
		}
		ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return ctx.SendString(html)
	}
}

func (c *startController) Healthcheck(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}
