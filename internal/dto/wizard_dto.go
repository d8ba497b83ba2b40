package dto

type CompanyNumberRequest struct {
	CompanyNumber string `form:"companyNumber" validate:"required"`
}

type ChooseReasonRequest struct {
	Reason string `form:"extensionReason" validate:"required"`
}

type ReasonInformationRequest struct {
	Information string `form:"reasonInformation" validate:"required"`
}

type RemoveDocumentRequest struct {
	DocumentID string `form:"documentId" validate:"required"`
}

type RemoveReasonRequest struct {
	ReasonID string `form:"reasonId" validate:"required"`
}
