package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"testing"

	"extensions-web/internal/config"
	"extensions-web/internal/model"
	"extensions-web/internal/pkg/apperrors"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/repository/memory"
	"extensions-web/pkg/extensionsapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPIClient records calls; unstubbed methods panic via the embedded nil
// interface, which is fine for tests that never reach them.
type fakeAPIClient struct {
	extensionsapi.IClient

	addAttachmentCalls int
	addAttachmentErr   error

	attachments []extensionsapi.Attachment
	listErr     error

	processCalls int
	processErr   error
}

func (f *fakeAPIClient) AddAttachment(_ context.Context, _, _, _, _, filename string, body []byte) (*extensionsapi.Attachment, error) {
	f.addAttachmentCalls++
	if f.addAttachmentErr != nil {
		return nil, f.addAttachmentErr
	}
	return &extensionsapi.Attachment{ID: "att-1", Name: filename, Size: int64(len(body))}, nil
}

func (f *fakeAPIClient) ListAttachments(context.Context, string, string, string, string) ([]extensionsapi.Attachment, error) {
	return f.attachments, f.listErr
}

func (f *fakeAPIClient) ProcessRequest(context.Context, string, string, string) error {
	f.processCalls++
	return f.processErr
}

func uploadFixture(api extensionsapi.IClient, maxBytes int64) (IUploadService, *model.Session) {
	repo := memory.NewSessionRepository()
	sessions := NewSessionService(repo, config.SessionConfig{}, logger.NewNopLogger())
	wizard := NewWizardService(sessions, logger.NewNopLogger())
	upload := NewUploadService(wizard, api, maxBytes, logger.NewNopLogger())

	reasonID := "reason-1"
	sess := &model.Session{
		CookieID:   "k",
		SessionKey: "k",
		Data: &model.SessionData{
			SignInInfo: model.SignInInfo{SignedIn: true, AccessToken: "token"},
			ExtensionSession: model.ExtensionSession{
				CompanyInContext: "00006400",
				ExtensionRequests: []model.ExtensionRequest{{
					CompanyNumber:      "00006400",
					ExtensionRequestID: "req-1",
					ReasonInContext:    &reasonID,
				}},
			},
		},
	}
	return upload, sess
}

func multipartBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := writer.CreateFormFile(fieldName, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, writer.WriteField(fieldName, "true"))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestProcessUploadForwardsFile(t *testing.T) {
	api := &fakeAPIClient{}
	upload, sess := uploadFixture(api, 1024)

	body, contentType := multipartBody(t, "file-upload", "evidence.pdf", []byte("pdf bytes"))
	result, err := upload.ProcessUpload(context.Background(), sess, body, contentType)

	require.NoError(t, err)
	assert.Equal(t, UploadResultAttached, result)
	assert.Equal(t, 1, api.addAttachmentCalls)
}

func TestProcessUploadSizeCeilingAbortsBeforeDownstream(t *testing.T) {
	api := &fakeAPIClient{}
	upload, sess := uploadFixture(api, 16)

	body, contentType := multipartBody(t, "file-upload", "big.pdf", bytes.Repeat([]byte("x"), 64))
	_, err := upload.ProcessUpload(context.Background(), sess, body, contentType)

	assert.ErrorIs(t, err, apperrors.ErrUploadSizeExceeded)
	assert.Equal(t, 0, api.addAttachmentCalls, "attachment API must never see an oversize file")
}

func TestProcessUploadExactCeilingSurvives(t *testing.T) {
	api := &fakeAPIClient{}
	upload, sess := uploadFixture(api, 16)

	body, contentType := multipartBody(t, "file-upload", "exact.pdf", bytes.Repeat([]byte("x"), 16))
	_, err := upload.ProcessUpload(context.Background(), sess, body, contentType)

	require.NoError(t, err)
	assert.Equal(t, 1, api.addAttachmentCalls)
}

func TestProcessUploadEmptyFile(t *testing.T) {
	api := &fakeAPIClient{}
	upload, sess := uploadFixture(api, 1024)

	body, contentType := multipartBody(t, "file-upload", "empty.pdf", nil)
	_, err := upload.ProcessUpload(context.Background(), sess, body, contentType)

	assert.ErrorIs(t, err, apperrors.ErrUploadEmptyFile)
	assert.Equal(t, 0, api.addAttachmentCalls)
}

func TestProcessUploadUnsupportedMediaType(t *testing.T) {
	api := &fakeAPIClient{
		addAttachmentErr: &apperrors.DownstreamError{Operation: "add attachment", Status: http.StatusUnsupportedMediaType},
	}
	upload, sess := uploadFixture(api, 1024)

	body, contentType := multipartBody(t, "file-upload", "virus.exe", []byte("MZ"))
	_, err := upload.ProcessUpload(context.Background(), sess, body, contentType)

	assert.ErrorIs(t, err, apperrors.ErrUploadUnsupportedMime)
}

func TestProcessUploadOtherDownstreamFailureBubbles(t *testing.T) {
	downstream := &apperrors.DownstreamError{Operation: "add attachment", Status: http.StatusBadGateway}
	api := &fakeAPIClient{addAttachmentErr: downstream}
	upload, sess := uploadFixture(api, 1024)

	body, contentType := multipartBody(t, "file-upload", "evidence.pdf", []byte("pdf"))
	_, err := upload.ProcessUpload(context.Background(), sess, body, contentType)

	assert.ErrorIs(t, err, downstream)
}

func TestContinueWithoutDocumentsField(t *testing.T) {
	api := &fakeAPIClient{attachments: []extensionsapi.Attachment{{ID: "att-1"}}}
	upload, sess := uploadFixture(api, 1024)

	body, contentType := multipartBody(t, "continueNoDocs", "", nil)
	result, err := upload.ProcessUpload(context.Background(), sess, body, contentType)

	require.NoError(t, err)
	assert.Equal(t, UploadResultContinue, result)
	assert.Equal(t, 0, api.addAttachmentCalls)
}

func TestContinueWithoutDocumentsBlockedWhenNoAttachments(t *testing.T) {
	api := &fakeAPIClient{attachments: nil}
	upload, sess := uploadFixture(api, 1024)

	err := upload.ContinueWithoutDocuments(context.Background(), sess)
	assert.ErrorIs(t, err, apperrors.ErrNoAttachments)
}
