package extensionsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"extensions-web/internal/pkg/apperrors"
)

type httpClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) IClient {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) GetCompanyProfile(ctx context.Context, token, companyNumber string) (*CompanyProfile, error) {
	var profile CompanyProfile
	path := fmt.Sprintf("/company/%s", companyNumber)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *httpClient) CreateExtensionRequest(ctx context.Context, token, companyNumber string) (*ExtensionRequestResource, error) {
	var resource ExtensionRequestResource
	path := fmt.Sprintf("/company/%s/extensions/requests", companyNumber)
	if err := c.doJSON(ctx, http.MethodPost, path, token, map[string]string{}, &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

func (c *httpClient) AddReason(ctx context.Context, token, companyNumber, requestID string, reason *Reason) (*Reason, error) {
	var created Reason
	path := fmt.Sprintf("/company/%s/extensions/requests/%s/reasons", companyNumber, requestID)
	if err := c.doJSON(ctx, http.MethodPost, path, token, reason, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *httpClient) UpdateReason(ctx context.Context, token, companyNumber, requestID string, reason *Reason) (*Reason, error) {
	var updated Reason
	path := fmt.Sprintf("/company/%s/extensions/requests/%s/reasons/%s", companyNumber, requestID, reason.ID)
	if err := c.doJSON(ctx, http.MethodPatch, path, token, reason, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *httpClient) GetReason(ctx context.Context, token, companyNumber, requestID, reasonID string) (*Reason, error) {
	var reason Reason
	path := fmt.Sprintf("/company/%s/extensions/requests/%s/reasons/%s", companyNumber, requestID, reasonID)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &reason); err != nil {
		return nil, err
	}
	return &reason, nil
}

func (c *httpClient) ListReasons(ctx context.Context, token, companyNumber, requestID string) ([]Reason, error) {
	var out struct {
		Items []Reason `json:"items"`
	}
	path := fmt.Sprintf("/company/%s/extensions/requests/%s/reasons", companyNumber, requestID)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *httpClient) DeleteReason(ctx context.Context, token, companyNumber, requestID, reasonID string) error {
	path := fmt.Sprintf("/company/%s/extensions/requests/%s/reasons/%s", companyNumber, requestID, reasonID)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

func (c *httpClient) AddAttachment(ctx context.Context, token, companyNumber, requestID, reasonID, filename string, body []byte) (*Attachment, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(body); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/company/%s/extensions/requests/%s/reasons/%s/attachments", companyNumber, requestID, reasonID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &apperrors.DownstreamError{Operation: "add attachment", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.DownstreamError{Operation: "add attachment", Status: resp.StatusCode}
	}

	var attachment Attachment
	if err := json.NewDecoder(resp.Body).Decode(&attachment); err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (c *httpClient) ListAttachments(ctx context.Context, token, companyNumber, requestID, reasonID string) ([]Attachment, error) {
	var out struct {
		Items []Attachment `json:"items"`
	}
	path := fmt.Sprintf("/company/%s/extensions/requests/%s/reasons/%s/attachments", companyNumber, requestID, reasonID)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *httpClient) DeleteAttachment(ctx context.Context, token, companyNumber, requestID, reasonID, attachmentID string) error {
	path := fmt.Sprintf("/company/%s/extensions/requests/%s/reasons/%s/attachments/%s", companyNumber, requestID, reasonID, attachmentID)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

func (c *httpClient) ProcessRequest(ctx context.Context, token, companyNumber, requestID string) error {
	payload := map[string]string{"status": "submitted"}
	path := fmt.Sprintf("/company/%s/extensions/requests/%s/process", companyNumber, requestID)
	return c.doJSON(ctx, http.MethodPost, path, token, payload, nil)
}

// doJSON runs one JSON round trip. Non-2xx responses surface as
// DownstreamError with the status attached so call sites can pick out the
// codes they recover from (404, 415).
func (c *httpClient) doJSON(ctx context.Context, method, path, token string, in, out interface{}) error {
	operation := fmt.Sprintf("%s %s", method, path)

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &apperrors.DownstreamError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperrors.DownstreamError{Operation: operation, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
