// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package httpclient is the single transport used by every service function.

It performs exactly one backend request per call and turns every failure into an
[apperr.AppError], so mutation sets can show the message to the user as-is.

Responsibilities:

  - Authorization: "Token <token>" read from the injected [credential.Provider] per request.
  - Tracing: X-Request-ID propagated from the context or generated (UUIDv7).
  - Throttling: token bucket shared by all calls of one client.
  - Encoding: JSON bodies via goccy/go-json, "data" envelope unwrapping, multipart uploads.
*/
package httpclient

import (
	"bytes"
	stdctx "context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/constants"
	"github.com/taibuivan/civicdesk/internal/platform/credential"
	"github.com/taibuivan/civicdesk/internal/platform/ctxutil"
	"github.com/taibuivan/civicdesk/pkg/uuid"
)

// # Client Definition

// Options configures a [Client].
type Options struct {
	// BaseURL is prepended to every request path (e.g. "https://api.example.org/v1").
	BaseURL string

	// Timeout applies when the caller's context has no deadline. Zero uses the default.
	Timeout time.Duration

	// RateLimitRPS and RateLimitBurst configure outbound throttling. Zero RPS disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	// Credentials supplies the access token. Nil means anonymous.
	Credentials credential.Provider

	// HTTPClient overrides the underlying client (tests use httptest servers).
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Client performs authenticated JSON and multipart requests against the backend.
type Client struct {
	baseURL     string
	timeout     time.Duration
	http        *http.Client
	credentials credential.Provider
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// New constructs a [Client].
func New(options Options) (*Client, error) {
	if strings.TrimSpace(options.BaseURL) == "" {
		return nil, errors.New("httpclient: base URL is required")
	}

	client := &Client{
		baseURL:     strings.TrimRight(options.BaseURL, "/"),
		timeout:     options.Timeout,
		http:        options.HTTPClient,
		credentials: options.Credentials,
		logger:      options.Logger,
	}

	if client.timeout <= 0 {
		client.timeout = constants.DefaultRequestTimeout
	}
	if client.http == nil {
		client.http = &http.Client{}
	}
	if client.credentials == nil {
		client.credentials = credential.Static("")
	}
	if client.logger == nil {
		client.logger = slog.Default()
	}
	if options.RateLimitRPS > 0 {
		burst := options.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		client.limiter = rate.NewLimiter(rate.Limit(options.RateLimitRPS), burst)
	}

	return client, nil
}

// # JSON Verbs

// Get issues a GET request and decodes the response into out.
func (client *Client) Get(context stdctx.Context, path string, out any) error {
	return client.doJSON(context, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body.
func (client *Client) Post(context stdctx.Context, path string, body, out any) error {
	return client.doJSON(context, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (client *Client) Put(context stdctx.Context, path string, body, out any) error {
	return client.doJSON(context, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request. The response body is discarded.
func (client *Client) Delete(context stdctx.Context, path string) error {
	return client.doJSON(context, http.MethodDelete, path, nil, nil)
}

func (client *Client) doJSON(context stdctx.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("httpclient: encode %s %s: %w", method, path, err))
		}
		payload = bytes.NewReader(encoded)
	}

	contentType := ""
	if body != nil {
		contentType = constants.ContentTypeJSON
	}

	return client.do(context, method, path, contentType, payload, out)
}

// # Request Lifecycle

/*
do executes one request and decodes the success body into out.

Parameters:
  - context: context.Context (cancellation is honoured by the transport)
  - method, path: string
  - contentType: string (empty when there is no body)
  - body: io.Reader (may be nil)
  - out: any (nil discards the body)

Returns:
  - error: *apperr.AppError for every failure
*/
func (client *Client) do(context stdctx.Context, method, path, contentType string, body io.Reader, out any) error {
	if _, hasDeadline := context.Deadline(); !hasDeadline {
		var cancel stdctx.CancelFunc
		context, cancel = stdctx.WithTimeout(context, client.timeout)
		defer cancel()
	}

	if client.limiter != nil {
		if err := client.limiter.Wait(context); err != nil {
			return apperr.Unavailable(fmt.Errorf("httpclient: rate limiter: %w", err))
		}
	}

	token, err := client.credentials.Token(context)
	if err != nil {
		if apperr.IsAppError(err) {
			return err
		}
		return apperr.Internal(err)
	}

	request, err := http.NewRequestWithContext(context, method, client.baseURL+path, body)
	if err != nil {
		return apperr.Internal(fmt.Errorf("httpclient: build %s %s: %w", method, path, err))
	}

	requestID := ctxutil.GetRequestID(context)
	if requestID == "" {
		requestID = uuid.New()
	}

	request.Header.Set(constants.HeaderAccept, "application/json")
	request.Header.Set(constants.HeaderUserAgent, constants.AppName+"/"+constants.AppVersion)
	request.Header.Set(constants.HeaderXRequestID, requestID)
	if contentType != "" {
		request.Header.Set(constants.HeaderContentType, contentType)
	}
	if token != "" {
		request.Header.Set(constants.HeaderAuthorization, constants.AuthScheme+" "+token)
	}

	startTime := time.Now()
	response, err := client.http.Do(request)
	if err != nil {
		client.logger.WarnContext(context, "backend_request_failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return apperr.Unavailable(err)
	}
	defer response.Body.Close()

	client.logger.DebugContext(context, "backend_request_finished",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("operation", ctxutil.GetOperation(context)),
		slog.String("request_id", requestID),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return decodeError(response)
	}

	return decodeSuccess(response, out)
}

// # Decoding

// errorEnvelope accepts both the civicdesk envelope and the plain {"detail": "..."} form.
type errorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Detail  string              `json:"detail"`
	Details []apperr.FieldError `json:"details"`
}

func decodeError(response *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(response.Body, constants.MaxErrorBodyBytes))

	envelope := errorEnvelope{}
	_ = json.Unmarshal(raw, &envelope)

	message := envelope.Error
	if message == "" {
		message = envelope.Detail
	}

	return apperr.FromStatus(response.StatusCode, envelope.Code, message, envelope.Details)
}

func decodeSuccess(response *http.Response, out any) error {
	if out == nil || response.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return apperr.Unavailable(fmt.Errorf("httpclient: read body: %w", err))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	// Unwrap {"data": ...} when the backend uses the envelope.
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		raw = envelope.Data
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return apperr.Internal(fmt.Errorf("httpclient: decode body: %w", err))
	}
	return nil
}
