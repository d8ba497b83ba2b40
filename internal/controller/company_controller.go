package controller

import (
	"net/http"

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

type ICompanyController interface {
	RegisterRoutes(r fiber.Router)
	ShowCompanyNumber(ctx *fiber.Ctx) error
	SubmitCompanyNumber(ctx *fiber.Ctx) error
	ShowConfirmCompany(ctx *fiber.Ctx) error
	ConfirmCompany(ctx *fiber.Ctx) error
}

type companyController struct {
	wizardService service.IWizardService
	apiClient     extensionsapi.IClient
	renderer      render.IRenderer
	logger        logger.ILogger
}

func NewCompanyController(
	wizardService service.IWizardService,
	apiClient extensionsapi.IClient,
	renderer render.IRenderer,
	log logger.ILogger,
) ICompanyController {
	return &companyController{
		wizardService: wizardService,
		apiClient:     apiClient,
		renderer:      renderer,
		logger:        log,
	}
}

func (c *companyController) RegisterRoutes(r fiber.Router) {
	r.Get(constant.PathCompanyNumber, c.ShowCompanyNumber)
	r.Post(constant.PathCompanyNumber, c.SubmitCompanyNumber)
	r.Get(constant.PathConfirmCompany, c.ShowConfirmCompany)
	r.Post(constant.PathConfirmCompany, c.ConfirmCompany)
}

func (c *companyController) ShowCompanyNumber(ctx *fiber.Ctx) error {
	return c.renderPage(ctx, "company-number", fiber.Map{})
}

func (c *companyController) SubmitCompanyNumber(ctx *fiber.Ctx) error {
	var req dto.CompanyNumberRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sess := serverutils.SessionFromCtx(ctx)
	profile, err := c.apiClient.GetCompanyProfile(ctx.Context(), sess.Data.SignInInfo.AccessToken, req.CompanyNumber)
	if err != nil {
		if apperrors.DownstreamStatus(err) == http.StatusNotFound {
			return c.renderPage(ctx, "company-number", fiber.Map{
				"errorMessage":  "No results found for that company number",
				"companyNumber": req.CompanyNumber,
			})
		}
		return err
	}

	if err := c.wizardService.SetCompanyInContext(ctx.Context(), sess, profile.CompanyNumber); err != nil {
		return err
	}
	return ctx.Redirect(constant.PathConfirmCompany, fiber.StatusFound)
}

func (c *companyController) ShowConfirmCompany(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)
	company, err := c.wizardService.CompanyInContext(sess)
	if err != nil {
		return err
	}
	profile, err := c.apiClient.GetCompanyProfile(ctx.Context(), sess.Data.SignInInfo.AccessToken, company)
	if err != nil {
		return err
	}
	return c.renderPage(ctx, "confirm-company", fiber.Map{"company": profile})
}

// ConfirmCompany opens an extension request downstream, once per company per
// session. The pre-check keeps a second confirm from creating a duplicate;
// a race slipping past it is absorbed, not surfaced.
func (c *companyController) ConfirmCompany(ctx *fiber.Ctx) error {
	sess := serverutils.SessionFromCtx(ctx)

	if !c.wizardService.HasExtensionRequest(sess) {
		company, err := c.wizardService.CompanyInContext(sess)
		if err != nil {
			return err
		}
		resource, err := c.apiClient.CreateExtensionRequest(ctx.Context(), sess.Data.SignInInfo.AccessToken, company)
		if err != nil {
			return err
		}
		if err := c.wizardService.AddRequest(ctx.Context(), sess, resource.ID); err != nil {
			if err == apperrors.ErrRequestAlreadyExists {
				c.logger.Warn("CompanyController", "Concurrent confirm created a duplicate request", map[string]interface{}{
					"company_number": company,
				})
			} else {
				return err
			}
		}
	}

	return ctx.Redirect(constant.PathChooseReason, fiber.StatusFound)
}

func (c *companyController) renderPage(ctx *fiber.Ctx, template string, data fiber.Map) error {
	html, err := c.renderer.Render(template, data)
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return ctx.SendString(html)
}
