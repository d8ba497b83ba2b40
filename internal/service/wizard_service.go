package service

import (
	"context"

	"extensions-web/internal/model"
	"extensions-web/internal/pkg/apperrors"
	"extensions-web/internal/pkg/logger"
)

// IWizardService tracks which company, and which reason within that company's
// extension request, the visitor is currently editing. All reads key off
// CompanyInContext; all writes persist the whole session record.
type IWizardService interface {
	CompanyInContext(sess *model.Session) (string, error)
	SetCompanyInContext(ctx context.Context, sess *model.Session, companyNumber string) error

	// Request returns the single ExtensionRequest matching the company in
	// context. Missing request is a session-integrity failure.
	Request(sess *model.Session) (*model.ExtensionRequest, error)
	HasExtensionRequest(sess *model.Session) bool

	// AddRequest appends a request for the company in context. A request
	// already stored for that company fails with ErrRequestAlreadyExists
	// and leaves the list untouched. Checked-then-act, not atomic.
	AddRequest(ctx context.Context, sess *model.Session, extensionRequestID string) error

	ReasonInContext(sess *model.Session) (string, error)
	SetReasonInContext(ctx context.Context, sess *model.Session, reasonID string) error
	ClearReasonInContext(ctx context.Context, sess *model.Session) error

	SetChangingDetails(ctx context.Context, sess *model.Session, flag bool) error
}

type wizardService struct {
	sessionService ISessionService
	logger         logger.ILogger
}

func NewWizardService(sessionService ISessionService, log logger.ILogger) IWizardService {
	return &wizardService{sessionService: sessionService, logger: log}
}

func (s *wizardService) CompanyInContext(sess *model.Session) (string, error) {
	company := sess.Data.ExtensionSession.CompanyInContext
	if company == "" {
		return "", apperrors.MissingSessionField("company in context")
	}
	return company, nil
}

func (s *wizardService) SetCompanyInContext(ctx context.Context, sess *model.Session, companyNumber string) error {
	sess.Data.ExtensionSession.CompanyInContext = companyNumber
	return s.sessionService.Save(ctx, sess)
}

func (s *wizardService) Request(sess *model.Session) (*model.ExtensionRequest, error) {
	company, err := s.CompanyInContext(sess)
	if err != nil {
		return nil, err
	}
	for i := range sess.Data.ExtensionSession.ExtensionRequests {
		if sess.Data.ExtensionSession.ExtensionRequests[i].CompanyNumber == company {
			return &sess.Data.ExtensionSession.ExtensionRequests[i], nil
		}
	}
	return nil, apperrors.MissingSessionField("extension request for company in context")
}

func (s *wizardService) HasExtensionRequest(sess *model.Session) bool {
	company := sess.Data.ExtensionSession.CompanyInContext
	for _, req := range sess.Data.ExtensionSession.ExtensionRequests {
		if req.CompanyNumber == company {
			return true
		}
	}
	return false
}

func (s *wizardService) AddRequest(ctx context.Context, sess *model.Session, extensionRequestID string) error {
	company, err := s.CompanyInContext(sess)
	if err != nil {
		return err
	}
	if s.HasExtensionRequest(sess) {
		return apperrors.ErrRequestAlreadyExists
	}

	sess.Data.ExtensionSession.ExtensionRequests = append(
		sess.Data.ExtensionSession.ExtensionRequests,
		model.ExtensionRequest{
			CompanyNumber:      company,
			ExtensionRequestID: extensionRequestID,
		},
	)
	return s.sessionService.Save(ctx, sess)
}

func (s *wizardService) ReasonInContext(sess *model.Session) (string, error) {
	req, err := s.Request(sess)
	if err != nil {
		return "", err
	}
	if req.ReasonInContext == nil {
		return "", apperrors.MissingSessionField("reason in context")
	}
	return *req.ReasonInContext, nil
}

func (s *wizardService) SetReasonInContext(ctx context.Context, sess *model.Session, reasonID string) error {
	req, err := s.Request(sess)
	if err != nil {
		return err
	}
	req.ReasonInContext = &reasonID
	return s.sessionService.Save(ctx, sess)
}

func (s *wizardService) ClearReasonInContext(ctx context.Context, sess *model.Session) error {
	req, err := s.Request(sess)
	if err != nil {
		return err
	}
	req.ReasonInContext = nil
	return s.sessionService.Save(ctx, sess)
}

func (s *wizardService) SetChangingDetails(ctx context.Context, sess *model.Session, flag bool) error {
	sess.Data.ChangingDetails = flag
	return s.sessionService.Save(ctx, sess)
}
