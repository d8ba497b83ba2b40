package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"extensions-web/internal/model"
	"extensions-web/internal/pkg/apperrors"
	"extensions-web/internal/pkg/logger"
	"extensions-web/pkg/extensionsapi"
)

// Multipart form field names the upload page posts.
const (
	fieldFileUpload     = "file-upload"
	fieldContinueNoDocs = "continueNoDocs"
)

type UploadOutcomeKind int

const (
	// OutcomeCompleted: stream ended normally, Buffer holds the file.
	OutcomeCompleted UploadOutcomeKind = iota
	// OutcomeAborted: the byte ceiling was crossed mid-transfer and the
	// stream was abandoned without waiting for completion.
	OutcomeAborted
	// OutcomeFailed: the stream itself errored.
	OutcomeFailed
	// OutcomeContinueNoDocs: the body carried the continue-without-documents
	// field instead of a file; nothing was buffered.
	OutcomeContinueNoDocs
)

type UploadOutcome struct {
	Kind     UploadOutcomeKind
	Filename string
	Buffer   []byte
	Err      error
}

// UploadResult tells the route which way the form went: a file was attached,
// or the body carried the continue-without-documents field and the wizard
// should advance.
type UploadResult int

const (
	UploadResultAttached UploadResult = iota
	UploadResultContinue
)

// IUploadService ingests the single file field of a streamed multipart body,
// bounded by the configured ceiling, and forwards completed buffers to the
// downstream attachment API. Files are forwarded, never retained.
type IUploadService interface {
	ProcessUpload(ctx context.Context, sess *model.Session, body io.Reader, contentType string) (UploadResult, error)
	ContinueWithoutDocuments(ctx context.Context, sess *model.Session) error
}

type uploadService struct {
	wizardService IWizardService
	apiClient     extensionsapi.IClient
	maxFileSize   int64
	logger        logger.ILogger
}

func NewUploadService(wizardService IWizardService, apiClient extensionsapi.IClient, maxFileSize int64, log logger.ILogger) IUploadService {
	return &uploadService{
		wizardService: wizardService,
		apiClient:     apiClient,
		maxFileSize:   maxFileSize,
		logger:        log,
	}
}

func (s *uploadService) ProcessUpload(ctx context.Context, sess *model.Session, body io.Reader, contentType string) (UploadResult, error) {
	outcome := s.readStream(body, contentType)

	switch outcome.Kind {
	case OutcomeAborted:
		s.logger.Info("UploadService", "Upload aborted, size ceiling exceeded", map[string]interface{}{"max_bytes": s.maxFileSize})
		return UploadResultAttached, apperrors.ErrUploadSizeExceeded

	case OutcomeFailed:
		return UploadResultAttached, outcome.Err

	case OutcomeContinueNoDocs:
		return UploadResultContinue, s.ContinueWithoutDocuments(ctx, sess)
	}

	if len(outcome.Buffer) == 0 {
		return UploadResultAttached, apperrors.ErrUploadEmptyFile
	}

	company, err := s.wizardService.CompanyInContext(sess)
	if err != nil {
		return UploadResultAttached, err
	}
	request, err := s.wizardService.Request(sess)
	if err != nil {
		return UploadResultAttached, err
	}
	reasonID, err := s.wizardService.ReasonInContext(sess)
	if err != nil {
		return UploadResultAttached, err
	}

	token := sess.Data.SignInInfo.AccessToken
	_, err = s.apiClient.AddAttachment(ctx, token, company, request.ExtensionRequestID, reasonID, outcome.Filename, outcome.Buffer)
	if err != nil {
		if apperrors.DownstreamStatus(err) == http.StatusUnsupportedMediaType {
			return UploadResultAttached, apperrors.ErrUploadUnsupportedMime
		}
		return UploadResultAttached, err
	}

	s.logger.Info("UploadService", "Attachment forwarded", map[string]interface{}{
		"company_number": company,
		"filename":       outcome.Filename,
		"bytes":          len(outcome.Buffer),
	})
	return UploadResultAttached, nil
}

func (s *uploadService) ContinueWithoutDocuments(ctx context.Context, sess *model.Session) error {
	company, err := s.wizardService.CompanyInContext(sess)
	if err != nil {
		return err
	}
	request, err := s.wizardService.Request(sess)
	if err != nil {
		return err
	}
	reasonID, err := s.wizardService.ReasonInContext(sess)
	if err != nil {
		return err
	}

	attachments, err := s.apiClient.ListAttachments(ctx, sess.Data.SignInInfo.AccessToken, company, request.ExtensionRequestID, reasonID)
	if err != nil {
		return err
	}
	if len(attachments) == 0 {
		return apperrors.ErrNoAttachments
	}
	return nil
}

// readStream walks the multipart parts as they arrive. File chunks accumulate
// in memory; the moment the running total crosses the ceiling the stream is
// abandoned mid-part rather than drained to completion.
func (s *uploadService) readStream(body io.Reader, contentType string) UploadOutcome {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return UploadOutcome{Kind: OutcomeFailed, Err: err}
	}
	boundary, ok := params["boundary"]
	if !ok {
		return UploadOutcome{Kind: OutcomeFailed, Err: errors.New("multipart body without boundary")}
	}

	reader := multipart.NewReader(body, boundary)
	var buf bytes.Buffer
	var filename string

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return UploadOutcome{Kind: OutcomeFailed, Err: err}
		}

		if part.FileName() == "" {
			if part.FormName() == fieldContinueNoDocs {
				return UploadOutcome{Kind: OutcomeContinueNoDocs}
			}
			continue
		}
		if part.FormName() != fieldFileUpload {
			continue
		}

		filename = part.FileName()

		// Read one byte past the ceiling so an exact-size file survives
		// and an oversize one is caught without consuming the rest.
		limited := io.LimitReader(part, s.maxFileSize-int64(buf.Len())+1)
		if _, err := buf.ReadFrom(limited); err != nil {
			return UploadOutcome{Kind: OutcomeFailed, Err: err}
		}
		if int64(buf.Len()) > s.maxFileSize {
			return UploadOutcome{Kind: OutcomeAborted}
		}
	}

	return UploadOutcome{Kind: OutcomeCompleted, Filename: filename, Buffer: buf.Bytes()}
}
