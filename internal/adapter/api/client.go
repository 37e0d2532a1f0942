package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
)

const csrfHeader = "X-CSRFToken"

// Response is a decoded API reply. Body holds the decoded JSON value
// (object, array, or nil for a 204).
type Response struct {
	Status int
	Raw    []byte
	Body   any
}

// Map returns the body as a JSON object, or nil when it is not one.
func (r *Response) Map() map[string]any {
	m, _ := r.Body.(map[string]any)
	return m
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v any) error {
	if len(r.Raw) == 0 {
		return nil
	}
	return json.Unmarshal(r.Raw, v)
}

// Options configures a Client.
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	CSRFCookie    string
	CSRFIssuePath string
}

// Client is the single choke point for all outgoing calls. It attaches the
// anti-forgery token to mutating requests, carries the session cookies,
// classifies failures into *domain.APIError, and decodes JSON bodies.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
	creds   *CredentialStore
	logger  *zap.Logger
}

func NewClient(opts Options, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	httpc := &http.Client{Jar: jar, Timeout: timeout}
	c := &Client{
		baseURL: base,
		httpc:   httpc,
		logger:  logger,
	}
	c.creds = NewCredentialStore(httpc, base, opts.CSRFCookie, opts.CSRFIssuePath, logger)
	return c, nil
}

// Credentials exposes the anti-forgery token store.
func (c *Client) Credentials() *CredentialStore { return c.creds }

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, "", nil)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, "", nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.doJSON(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.doJSON(ctx, http.MethodPut, path, body)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	return c.do(ctx, method, path, "application/json", reader)
}

// Upload sends one batched multipart request carrying every pending
// attachment: an "images" file part per attachment plus parallel indexed
// caption[i] / is_primary[i] fields.
func (c *Client) Upload(ctx context.Context, path string, attachments []domain.MediaAttachment) (*Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for i, att := range attachments {
		part, err := writer.CreateFormFile("images", att.FileName)
		if err != nil {
			return nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, fmt.Errorf("write file part: %w", err)
		}
		if err := writer.WriteField(fmt.Sprintf("caption[%d]", i), att.Caption); err != nil {
			return nil, fmt.Errorf("write caption field: %w", err)
		}
		if err := writer.WriteField(fmt.Sprintf("is_primary[%d]", i), strconv.FormatBool(att.Primary)); err != nil {
			return nil, fmt.Errorf("write primary field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, writer.FormDataContentType(), &buf)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) (*Response, error) {
	requestID := uuid.NewString()[:8]
	fullURL := c.baseURL.String() + path

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if method != http.MethodGet && method != http.MethodHead {
		if token := c.creds.Token(ctx); token != "" {
			req.Header.Set(csrfHeader, token)
		}
	}

	c.logger.Debug("api call",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path))

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Warn("api call failed to reach server",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Error(err))
		return nil, &domain.APIError{Kind: domain.ErrKindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.APIError{Kind: domain.ErrKindNetwork, Message: err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return c.success(resp.StatusCode, raw), nil
	}

	apiErr := c.classify(resp.StatusCode, raw)
	c.logger.Warn("api call returned an error",
		zap.String("request_id", requestID),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("kind", string(apiErr.Kind)))
	return nil, apiErr
}

func (c *Client) success(status int, raw []byte) *Response {
	if status == http.StatusNoContent {
		return &Response{Status: status}
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		// Some endpoints return 200 with an empty or non-JSON body.
		body = map[string]any{"message": "Success"}
	}
	return &Response{Status: status, Raw: raw, Body: body}
}

func (c *Client) classify(status int, raw []byte) *domain.APIError {
	message, fields := parseErrorBody(raw)
	if message == "" {
		message = http.StatusText(status)
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		// Purge before raising, so a retry cannot reuse a stale token.
		c.creds.Purge()
		return &domain.APIError{Kind: domain.ErrKindAuthentication, Status: status, Message: message}
	case status == http.StatusNotFound:
		return &domain.APIError{Kind: domain.ErrKindNotFound, Status: status, Message: message}
	case status >= 400 && status < 500:
		return &domain.APIError{Kind: domain.ErrKindValidation, Status: status, Message: message, Fields: fields}
	default:
		return &domain.APIError{Kind: domain.ErrKindServer, Status: status, Message: message}
	}
}

// parseErrorBody pulls a human-readable message out of a JSON error body,
// preferring a "detail" field, else joining a field->messages map.
func parseErrorBody(raw []byte) (string, map[string][]string) {
	if len(raw) == 0 {
		return "", nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", nil
	}
	if detail, ok := body["detail"].(string); ok {
		return detail, nil
	}

	fields := make(map[string][]string)
	for key, value := range body {
		switch v := value.(type) {
		case string:
			fields[key] = []string{v}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					fields[key] = append(fields[key], s)
				}
			}
		}
	}
	if len(fields) == 0 {
		return "", nil
	}
	err := &domain.APIError{Fields: fields}
	return err.FieldSummary(), fields
}
