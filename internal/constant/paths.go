package constant

// Wizard page paths. The flow is fixed: templates and field validation live
// outside this service, these paths are the contract with both.
const (
	PathStart             = "/"
	PathCompanyNumber     = "/company-number"
	PathConfirmCompany    = "/confirm-company"
	PathChooseReason      = "/choose-reason"
	PathReasonInformation = "/reason-information"
	PathDocumentUpload    = "/document-upload"
	PathContinueNoDocs    = "/document-upload-continue-no-docs"
	PathRemoveDocument    = "/remove-document"
	PathRemoveReason      = "/remove-reason"
	PathCheckYourAnswers  = "/check-your-answers"
	PathConfirmation      = "/confirmation"
	PathBack              = "/back"
	PathError             = "/error"
	PathTooManyRequests   = "/too-many-requests"
	PathAccessibility     = "/accessibility-statement"
	PathHealthcheck       = "/healthcheck"
)

const (
	// QueryReasonID selects the reason being edited on reason pages.
	QueryReasonID = "reasonId"

	// TemplateSuffix is stripped from referer paths before they enter the
	// breadcrumb stack.
	TemplateSuffix = ".html"

	// HeaderXRequestedWith marks AJAX uploads; its presence switches the
	// upload route to the fragment response strategy.
	HeaderXRequestedWith = "X-Requested-With"
	XMLHttpRequest       = "XMLHttpRequest"
)

// Fiber Locals keys.
const (
	LocalsSession = "wizard_session"
)
