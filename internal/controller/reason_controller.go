package controller

import (
	"extensions-web/internal/constant"
	"extensions-web/internal/dto"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/pkg/render"
	"extensions-web/internal/pkg/serverutils"
	"extensions-web/internal/service"
	"extensions-web/pkg/extensionsapi"

	"github.com/gofiber/fiber/v2"
)

type IReasonController interface {
	RegisterRoutes(r fiber.Router)
	ShowChooseReason(ctx *fiber.Ctx) error
	SubmitChooseReason(ctx *fiber.Ctx) error
	ShowReasonInformation(ctx *fiber.Ctx) error
	SubmitReasonInformation(ctx *fiber.Ctx) error
	RemoveReason(ctx *fiber.Ctx) error
}

type reasonController struct {
	wizardService service.IWizardService
	apiClient     extensionsapi.IClient
	renderer      render.IRenderer
	logger        logger.ILogger
}

func NewReasonController(
	wizardService service.IWizardService,
	apiClient extensionsapi.IClient,
	renderer render.IRenderer,
	log logger.ILogger,
) IReasonController {
	return &reasonController{
		wizardService: wizardService,
		apiClient:     apiClient,
		renderer:      renderer,
		logger:        log,
	}
}

func (c *reasonController) RegisterRoutes(r fiber.Router) {
	r.Get(constant.PathChooseReason, c.ShowChooseReason)
	r.Post(constant.PathChooseReason, c.SubmitChooseReason)
	r.Get(constant.PathReasonInformation, c.ShowReasonInformation)
	r.Post(constant.PathReasonInformation, c.SubmitReasonInformation)
	r.Post(constant.PathRemoveReason, c.RemoveReason)
}

// resolveReasonInContext applies the ?reasonId= marker before a reason page
// renders, so edit links from the summary and inline forward-flow edits share
// one read path. A changingDetails marker flags the edit-link case, which
// redirects post-edit submits back to the summary.
func (c *reasonController) resolveReasonInContext(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	if reasonID := ctx.Query(constant.QueryReasonID); reasonID != "" {
		if err := c.wizardService.SetReasonInContext(ctx.Context(), sess, reasonID); err != nil {
			return err
		}
	}
	if ctx.Query("changingDetails") == "true" {
		if err := c.wizardService.SetChangingDetails(ctx.Context(), sess, true); err != nil {
			return err
		}
	}
	return nil
}

func (c *reasonController) ShowChooseReason(ctx *fiber.Ctx) error {
	if err := c.resolveReasonInContext(ctx); err != nil {
		return err
	}
	return c.renderPage(ctx, "choose-reason", fiber.Map{})
}

func (c *reasonController) SubmitChooseReason(ctx *fiber.Ctx) error {
	var req dto.ChooseReasonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sess := serverutils.SessionFromCtx(ctx)
	company, err := c.wizardService.CompanyInContext(sess)
	if err != nil {
		return err
	}
	request, err := c.wizardService.Request(sess)
	if err != nil {
		return err
	}

	created, err := c.apiClient.AddReason(ctx.Context(), sess.Data.SignInInfo.AccessToken, company, request.ExtensionRequestID, &extensionsapi.Reason{
		Reason: req.Reason,
	})
	if err != nil {
		return err
	}
	if err := c.wizardService.SetReasonInContext(ctx.Context(), sess, created.ID); err != nil {
		return err
	}

	return ctx.Redirect(constant.PathReasonInformation, fiber.StatusFound)
}

func (c *reasonController) ShowReasonInformation(ctx *fiber.Ctx) error {
	if err := c.resolveReasonInContext(ctx); err != nil {
		return err
	}

	sess := serverutils.SessionFromCtx(ctx)
	company, err := c.wizardService.CompanyInContext(sess)
	if err != nil {
		return err
	}
	request, err := c.wizardService.Request(sess)
	if err != nil {
		return err
	}
	reasonID, err := c.wizardService.ReasonInContext(sess)
	if err != nil {
		return err
	}

	reason, err := c.apiClient.GetReason(ctx.Context(), sess.Data.SignInInfo.AccessToken, company, request.ExtensionRequestID, reasonID)
	if err != nil {
		return err
	}
	return c.renderPage(ctx, "reason-information", fiber.Map{"reason": reason})
}

func (c *reasonController) SubmitReasonInformation(ctx *fiber.Ctx) error {
	var req dto.ReasonInformationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sess := serverutils.SessionFromCtx(ctx)
	company, err := c.wizardService.CompanyInContext(sess)
	if err != nil {
		return err
	}
	request, err := c.wizardService.Request(sess)
	if err != nil {
		return err
	}
	reasonID, err := c.wizardService.ReasonInContext(sess)
	if err != nil {
		return err
	}

	_, err = c.apiClient.UpdateReason(ctx.Context(), sess.Data.SignInInfo.AccessToken, company, request.ExtensionRequestID, &extensionsapi.Reason{
		ID:                reasonID,
		ReasonInformation: req.Information,
	})
	if err != nil {
		return err
	}

	if sess.Data.ChangingDetails {
		return ctx.Redirect(constant.PathCheckYourAnswers, fiber.StatusFound)
	}
	return ctx.Redirect(constant.PathDocumentUpload, fiber.StatusFound)
}

func (c *reasonController) RemoveReason(ctx *fiber.Ctx) error {
	var req dto.RemoveReasonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sess := serverutils.SessionFromCtx(ctx)
	company, err := c.wizardService.CompanyInContext(sess)
	if err != nil {
		return err
	}
	request, err := c.wizardService.Request(sess)
	if err != nil {
		return err
	}

	if err := c.apiClient.DeleteReason(ctx.Context(), sess.Data.SignInInfo.AccessToken, company, request.ExtensionRequestID, req.ReasonID); err != nil {
		return err
	}

	// The pointer may now be stale; drop it rather than let it surface as
	// a downstream not-found later.
	if current, err := c.wizardService.ReasonInContext(sess); err == nil && current == req.ReasonID {
		if err := c.wizardService.ClearReasonInContext(ctx.Context(), sess); err != nil {
			return err
		}
	}

	return ctx.Redirect(constant.PathCheckYourAnswers, fiber.StatusFound)
}

func (c *reasonController) renderPage(ctx *fiber.Ctx, template string, data fiber.Map) error {
	html, err := c.renderer.Render(template, data)
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(html)
}
