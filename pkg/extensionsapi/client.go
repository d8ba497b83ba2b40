package extensionsapi

import "context"

type CompanyProfile struct {
	CompanyNumber string `json:"company_number"`
	CompanyName   string `json:"company_name"`
	CompanyStatus string `json:"company_status"`
	AccountsDue   string `json:"accounts_due"`
	AddressLine1  string `json:"address_line_1"`
	PostalCode    string `json:"postal_code"`
}

type ExtensionRequestResource struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type Reason struct {
	ID                string `json:"id"`
	Reason            string `json:"reason"`
	StartOn           string `json:"start_on"`
	EndOn             string `json:"end_on"`
	ReasonInformation string `json:"reason_information"`
}

type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type IClient interface {
	GetCompanyProfile(ctx context.Context, token, companyNumber string) (*CompanyProfile, error)
	CreateExtensionRequest(ctx context.Context, token, companyNumber string) (*ExtensionRequestResource, error)

	AddReason(ctx context.Context, token, companyNumber, requestID string, reason *Reason) (*Reason, error)
	UpdateReason(ctx context.Context, token, companyNumber, requestID string, reason *Reason) (*Reason, error)
	GetReason(ctx context.Context, token, companyNumber, requestID, reasonID string) (*Reason, error)
	ListReasons(ctx context.Context, token, companyNumber, requestID string) ([]Reason, error)
	DeleteReason(ctx context.Context, token, companyNumber, requestID, reasonID string) error

	AddAttachment(ctx context.Context, token, companyNumber, requestID, reasonID, filename string, body []byte) (*Attachment, error)
	ListAttachments(ctx context.Context, token, companyNumber, requestID, reasonID string) ([]Attachment, error)
	DeleteAttachment(ctx context.Context, token, companyNumber, requestID, reasonID, attachmentID string) error

	// ProcessRequest fires the terminal, side-effecting submission. At most
	// one call per session is ever made; the guard lives with the caller.
	ProcessRequest(ctx context.Context, token, companyNumber, requestID string) error
}
