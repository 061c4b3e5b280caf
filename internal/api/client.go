// Package api is the typed HTTP client for the LocoTranz backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"locotranz/internal/domain"

	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// Client talks to the backend. Zero-value fields fall back to defaults;
// only BaseURL is required.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// Timeout bounds every request. The pages this replaces had none and
	// would hang a loading spinner forever on a stuck request.
	Timeout time.Duration
	// Token supplies the bearer credential. Nil or empty means the call
	// goes out unauthenticated.
	Token func() (string, error)
	// OnUnauthorized runs once per 401 so the caller can clear the stored
	// session before the error propagates.
	OnUnauthorized func()
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

// errorBody covers both backend shapes: FastAPI's {"detail": ...} and the
// dev backend's {"error": ...}.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Error  string          `json:"error"`
	Msg    string          `json:"message"`
}

func (e errorBody) text() string {
	if e.Error != "" {
		return e.Error
	}
	if e.Msg != "" {
		return e.Msg
	}
	if len(e.Detail) > 0 {
		var s string
		if json.Unmarshal(e.Detail, &s) == nil {
			return s
		}
		return string(e.Detail)
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	endpoint := strings.TrimRight(c.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return domain.InternalError{Msg: "encode request", Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return domain.InternalError{Msg: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != nil {
		token, err := c.Token()
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.httpClient().Do(req)
	if err != nil {
		return domain.UnavailableError{Op: method + " " + path, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return c.errorFrom(res, method, path)
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return domain.InternalError{Msg: "decode response", Err: err}
	}
	return nil
}

func (c *Client) errorFrom(res *http.Response, method, path string) error {
	var body errorBody
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	_ = json.Unmarshal(raw, &body)
	msg := body.text()

	switch res.StatusCode {
	case http.StatusUnauthorized:
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		if msg == "" {
			msg = "session expired"
		}
		return domain.UnauthorizedError{Msg: msg}
	case http.StatusNotFound:
		return domain.NotFoundError{Resource: strings.Trim(path, "/")}
	case http.StatusConflict:
		return domain.ConflictError{Msg: msg}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ValidationError{Msg: msg}
	default:
		if msg == "" {
			msg = fmt.Sprintf("%s %s: status %d", method, path, res.StatusCode)
		}
		return domain.InternalError{Msg: msg}
	}
}
