package controller

import (
	"extensions-web/internal/constant"
	"extensions-web/internal/dto"
	"extensions-web/internal/pkg/render"
	"extensions-web/pkg/extensionsapi"

	"github.com/gofiber/fiber/v2"
)

// Template names the upload route renders. The full page embeds all three
// regions; the fragment protocol re-renders them individually.
const (
	templateDocumentUpload = "document-upload"
	partialFileList        = "file-list"
	partialFilePicker      = "file-picker"
	partialErrorSummary    = "error-summary"

	divFileList     = "fileListDiv"
	divFilePicker   = "fileUploadDiv"
	divErrorSummary = "errorSummaryDiv"
)

// IUploadResponder is the per-request response protocol for the upload route.
// One of the two implementations is picked at request entry from the
// X-Requested-With header and passed through explicitly.
type IUploadResponder interface {
	HandleSuccess(ctx *fiber.Ctx, attachments []extensionsapi.Attachment) error
	HandleGenericError(ctx *fiber.Ctx, err error) error
	HandleGovUKError(ctx *fiber.Ctx, errData dto.UploadErrorData, attachments []extensionsapi.Attachment) error
}

func selectUploadResponder(ctx *fiber.Ctx, renderer render.IRenderer) IUploadResponder {
	if ctx.Get(constant.HeaderXRequestedWith) == constant.XMLHttpRequest {
		return &fragmentResponder{renderer: renderer}
	}
	return &fullPageResponder{renderer: renderer}
}

// fullPageResponder drives the classic browser protocol: redirects and whole
// pages.
type fullPageResponder struct {
	renderer render.IRenderer
}

func (r *fullPageResponder) HandleSuccess(ctx *fiber.Ctx, _ []extensionsapi.Attachment) error {
	return ctx.Redirect(constant.PathDocumentUpload, fiber.StatusFound)
}

func (r *fullPageResponder) HandleGenericError(_ *fiber.Ctx, err error) error {
	// Forwarded to the shared error handler middleware.
	return err
}

func (r *fullPageResponder) HandleGovUKError(ctx *fiber.Ctx, errData dto.UploadErrorData, attachments []extensionsapi.Attachment) error {
	html, err := r.renderer.Render(templateDocumentUpload, fiber.Map{
		"errorMessage": errData.ErrorMessage,
		"attachments":  attachments,
	})
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(html)
}

// fragmentResponder answers AJAX uploads with rendered partials keyed by the
// page region they replace. Any render failure degrades to a JSON redirect
// with a 500.
type fragmentResponder struct {
	renderer render.IRenderer
}

func (r *fragmentResponder) HandleSuccess(ctx *fiber.Ctx, attachments []extensionsapi.Attachment) error {
	fileList, err := r.renderer.Render(partialFileList, fiber.Map{"attachments": attachments})
	if err != nil {
		return r.degrade(ctx)
	}
	filePicker, err := r.renderer.Render(partialFilePicker, fiber.Map{})
	if err != nil {
		return r.degrade(ctx)
	}

	return ctx.JSON(dto.FragmentResponse{Divs: []dto.Div{
		{DivID: divFileList, DivHTML: fileList},
		{DivID: divFilePicker, DivHTML: filePicker},
	}})
}

func (r *fragmentResponder) HandleGenericError(ctx *fiber.Ctx, _ error) error {
	return r.degrade(ctx)
}

func (r *fragmentResponder) HandleGovUKError(ctx *fiber.Ctx, errData dto.UploadErrorData, _ []extensionsapi.Attachment) error {
	errorSummary, err := r.renderer.Render(partialErrorSummary, fiber.Map{"errorMessage": errData.ErrorMessage})
	if err != nil {
		return r.degrade(ctx)
	}
	filePicker, err := r.renderer.Render(partialFilePicker, fiber.Map{"errorMessage": errData.ErrorMessage})
	if err != nil {
		return r.degrade(ctx)
	}

	return ctx.JSON(dto.FragmentResponse{Divs: []dto.Div{
		{DivID: divErrorSummary, DivHTML: errorSummary},
		{DivID: divFilePicker, DivHTML: filePicker},
	}})
}

func (r *fragmentResponder) degrade(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusInternalServerError).JSON(dto.FragmentRedirect{Redirect: constant.PathError})
}
