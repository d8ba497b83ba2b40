package controller

import (
	"extensions-web/internal/constant"
	"extensions-web/internal/model"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/pkg/serverutils"
	"extensions-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Callback(ctx *fiber.Ctx) error
}

type authController struct {
	sessions service.ISessionService
	logger   logger.ILogger
}

func NewAuthController(sessions service.ISessionService, log logger.ILogger) IAuthController {
	return &authController{sessions: sessions, logger: log}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Get("/signin-callback", c.Callback)
}

// Callback lands the visitor back from the external sign-in service with an
// access token. Claims are read unverified; token verification is the
// identity service's concern, this side only needs the profile for display
// and the raw token for downstream calls.
func (c *authController) Callback(ctx *fiber.Ctx) error {
	token := ctx.Query("token")
	if token == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing token")
	}

	sess := serverutils.SessionFromCtx(ctx)
	sess.Data.SignInInfo = model.SignInInfo{
		SignedIn:    true,
		AccessToken: token,
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if sub, ok := claims["sub"].(string); ok {
			sess.Data.SignInInfo.UserProfile.ID = sub
		}
		if email, ok := claims["email"].(string); ok {
			sess.Data.SignInInfo.UserProfile.Email = email
		}
	} else {
		c.logger.Warn("AuthController", "Access token is not a parseable JWT", map[string]interface{}{"error": err.Error()})
	}

	if err := c.sessions.Save(ctx.Context(), sess); err != nil {
		return err
	}

	returnTo := ctx.Query("return_to")
	if returnTo == "" {
		returnTo = constant.PathCompanyNumber
	}
	return ctx.Redirect(returnTo, fiber.StatusFound)
}
