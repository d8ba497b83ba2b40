package service

import (
	"context"
	"time"

	"extensions-web/internal/model"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/pkg/monitor"
	"extensions-web/pkg/extensionsapi"
)

// ISubmissionService guards the terminal, side-effecting downstream call.
// The submitted flag is persisted before the call fires, so a session replays
// the confirmation route as a logged no-op rather than a second submission.
// The guard is last-write-wins like the rest of the session model, not a
// mutex: two truly concurrent submits can both slip through the window.
type ISubmissionService interface {
	// Submit returns alreadySubmitted=true (and does nothing) when this
	// session has fired before.
	Submit(ctx context.Context, sess *model.Session) (alreadySubmitted bool, err error)
}

type submissionService struct {
	sessionService ISessionService
	wizardService  IWizardService
	apiClient      extensionsapi.IClient
	monitor        monitor.IRequestCountMonitor
	logger         logger.ILogger
	now            func() time.Time
}

func NewSubmissionService(
	sessionService ISessionService,
	wizardService IWizardService,
	apiClient extensionsapi.IClient,
	requestMonitor monitor.IRequestCountMonitor,
	log logger.ILogger,
) ISubmissionService {
	return &submissionService{
		sessionService: sessionService,
		wizardService:  wizardService,
		apiClient:      apiClient,
		monitor:        requestMonitor,
		logger:         log,
		now:            time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, sess *model.Session) (bool, error) {
	if sess.Data.Submitted {
		s.logger.Info("SubmissionService", "Session already submitted, skipping process call", map[string]interface{}{
			"company_number": sess.Data.ExtensionSession.CompanyInContext,
		})
		return true, nil
	}

	company, err := s.wizardService.CompanyInContext(sess)
	if err != nil {
		return false, err
	}
	request, err := s.wizardService.Request(sess)
	if err != nil {
		return false, err
	}

	// Flag first, call second: a crash between the two loses one
	// submission rather than risking two.
	sess.Data.Submitted = true
	if err := s.sessionService.Save(ctx, sess); err != nil {
		return false, err
	}

	if err := s.apiClient.ProcessRequest(ctx, sess.Data.SignInInfo.AccessToken, company, request.ExtensionRequestID); err != nil {
		return false, err
	}

	count := s.monitor.Increment(s.now())
	s.logger.Info("SubmissionService", "Extension request processed", map[string]interface{}{
		"company_number":    company,
		"requests_today":    count,
		"extension_request": request.ExtensionRequestID,
	})
	return false, nil
}
