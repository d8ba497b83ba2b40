package controller

import (
	"bytes"
	"errors"

	"extensions-web/internal/constant"
	"extensions-web/internal/dto"
	"extensions-web/internal/pkg/apperrors"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/pkg/render"
	"extensions-web/internal/pkg/serverutils"
	"extensions-web/internal/service"
	"extensions-web/pkg/extensionsapi"

	"github.com/gofiber/fiber/v2"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	ShowUpload(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	ContinueWithoutDocuments(ctx *fiber.Ctx) error
	RemoveDocument(ctx *fiber.Ctx) error
}

type uploadController struct {
	wizardService service.IWizardService
	uploadService service.IUploadService
	apiClient     extensionsapi.IClient
	renderer      render.IRenderer
	logger        logger.ILogger
}

func NewUploadController(
	wizardService service.IWizardService,
	uploadService service.IUploadService,
	apiClient extensionsapi.IClient,
	renderer render.IRenderer,
	log logger.ILogger,
) IUploadController {
	return &uploadController{
		wizardService: wizardService,
		uploadService: uploadService,
		apiClient:     apiClient,
		renderer:      renderer,
		logger:        log,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	r.Get(constant.PathDocumentUpload, c.ShowUpload)
	r.Post(constant.PathDocumentUpload, c.Upload)
	r.Get(constant.PathContinueNoDocs, c.ContinueWithoutDocuments)
	r.Post(constant.PathRemoveDocument, c.RemoveDocument)
}

func (c *uploadController) ShowUpload(ctx *fiber.Ctx) error {
	attachments, err := c.currentAttachments(ctx)
	if err != nil {
		return err
	}
	html, err := c.renderer.Render(templateDocumentUpload, fiber.Map{"attachments": attachments})
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(html)
}

// Upload streams the multipart body through the processor and answers via
// whichever response protocol the request selected. Validation failures stay
// on this route; only unrecognized errors reach the shared handler.
func (c *uploadController) Upload(ctx *fiber.Ctx) error {
	responder := selectUploadResponder(ctx, c.renderer)
	sess := serverutils.SessionFromCtx(ctx)

	body := ctx.Context().RequestBodyStream()
	if body == nil {
		body = bytes.NewReader(ctx.Body())
	}

	result, err := c.uploadService.ProcessUpload(ctx.Context(), sess, body, ctx.Get(fiber.HeaderContentType))
	if err != nil {
		if message, ok := validationMessage(err); ok {
			attachments, listErr := c.currentAttachments(ctx)
			if listErr != nil {
				return responder.HandleGenericError(ctx, listErr)
			}
			return responder.HandleGovUKError(ctx, dto.UploadErrorData{ErrorMessage: message}, attachments)
		}
		return responder.HandleGenericError(ctx, err)
	}

	if result == service.UploadResultContinue {
		return ctx.Redirect(constant.PathCheckYourAnswers, fiber.StatusFound)
	}

	attachments, err := c.currentAttachments(ctx)
	if err != nil {
		return responder.HandleGenericError(ctx, err)
	}
	return responder.HandleSuccess(ctx, attachments)
}

func (c *uploadController) ContinueWithoutDocuments(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	if err := c.uploadService.ContinueWithoutDocuments(ctx.Context(), sess); err != nil {
		if errors.Is(err, apperrors.ErrNoAttachments) {
			responder := selectUploadResponder(ctx, c.renderer)
			attachments := []extensionsapi.Attachment{}
			return responder.HandleGovUKError(ctx, dto.UploadErrorData{
				ErrorMessage: "You must add a document or continue without adding documents",
			}, attachments)
		}
		return err
	}
	return ctx.Redirect(constant.PathCheckYourAnswers, fiber.StatusFound)
}

func (c *uploadController) RemoveDocument(ctx *fiber.Ctx) error {
	var req dto.RemoveDocumentRequest
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

	if err := c.apiClient.DeleteAttachment(ctx.Context(), sess.Data.SignInInfo.AccessToken, company, request.ExtensionRequestID, reasonID, req.DocumentID); err != nil {
		return err
	}
	return ctx.Redirect(constant.PathDocumentUpload, fiber.StatusFound)
}

func (c *uploadController) currentAttachments(ctx *fiber.Ctx) ([]extensionsapi.Attachment, error) {
	sess := serverutils.SessionFromCtx(ctx)
	company, err := c.wizardService.CompanyInContext(sess)
	if err != nil {
		return nil, err
	}
	request, err := c.wizardService.Request(sess)
	if err != nil {
		return nil, err
	}
	reasonID, err := c.wizardService.ReasonInContext(sess)
	if err != nil {
		return nil, err
	}
	return c.apiClient.ListAttachments(ctx.Context(), sess.Data.SignInInfo.AccessToken, company, request.ExtensionRequestID, reasonID)
}

func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, apperrors.ErrUploadSizeExceeded):
		return "The file you are uploading is too big", true
	case errors.Is(err, apperrors.ErrUploadEmptyFile):
		return "You must choose a file to upload", true
	case errors.Is(err, apperrors.ErrUploadUnsupportedMime):
		return "The file you are uploading is not one of the supported types", true
	case errors.Is(err, apperrors.ErrNoAttachments):
		return "You must add a document or continue without adding documents", true
	}
	return "", false
}
