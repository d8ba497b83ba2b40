package controller

import (
	"extensions-web/internal/constant"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/pkg/render"
	"extensions-web/internal/pkg/serverutils"
	"extensions-web/internal/service"
	"extensions-web/pkg/extensionsapi"

	"github.com/gofiber/fiber/v2"
)

type IConfirmationController interface {
	RegisterRoutes(r fiber.Router)
	ShowCheckYourAnswers(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	ShowConfirmation(ctx *fiber.Ctx) error
}

type confirmationController struct {
	wizardService     service.IWizardService
	submissionService service.ISubmissionService
	apiClient         extensionsapi.IClient
	renderer          render.IRenderer
	logger            logger.ILogger
}

func NewConfirmationController(
	wizardService service.IWizardService,
	submissionService service.ISubmissionService,
	apiClient extensionsapi.IClient,
	renderer render.IRenderer,
	log logger.ILogger,
) IConfirmationController {
	return &confirmationController{
		wizardService:     wizardService,
		submissionService: submissionService,
		apiClient:         apiClient,
		renderer:          renderer,
		logger:            log,
	}
}

func (c *confirmationController) RegisterRoutes(r fiber.Router) {
	r.Get(constant.PathCheckYourAnswers, c.ShowCheckYourAnswers)
	r.Post(constant.PathConfirmation, c.Submit)
	r.Get(constant.PathConfirmation, c.ShowConfirmation)
}

func (c *confirmationController) ShowCheckYourAnswers(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	// Reaching the summary ends any edit detour.
	if sess.Data.ChangingDetails {
		if err := c.wizardService.SetChangingDetails(ctx.Context(), sess, false); err != nil {
			return err
		}
	}

	company, err := c.wizardService.CompanyInContext(sess)
	if err != nil {
		return err
	}
	request, err := c.wizardService.Request(sess)
	if err != nil {
		return err
	}
	reasons, err := c.apiClient.ListReasons(ctx.Context(), sess.Data.SignInInfo.AccessToken, company, request.ExtensionRequestID)
	if err != nil {
		return err
	}

	return c.renderPage(ctx, "check-your-answers", fiber.Map{
		"companyNumber": company,
		"reasons":       reasons,
	})
}

func (c *confirmationController) Submit(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	alreadySubmitted, err := c.submissionService.Submit(ctx.Context(), sess)
	if err != nil {
		return err
	}
	if alreadySubmitted {
		c.logger.Info("ConfirmationController", "Duplicate submission absorbed", nil)
	}
	return ctx.Redirect(constant.PathConfirmation, fiber.StatusFound)
}

func (c *confirmationController) ShowConfirmation(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	return c.renderPage(ctx, "confirmation", fiber.Map{
		"userEmail": sess.Data.SignInInfo.UserProfile.Email,
	})
}

func (c *confirmationController) renderPage(ctx *fiber.Ctx, template string, data fiber.Map) error {
	html, err := c.renderer.Render(template, data)
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(html)
}
