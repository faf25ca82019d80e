package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client talks to an Appwrite-compatible backend over its REST API.
// It is constructed once at startup and shared by the Databases,
// Storage and Account services.
type Client struct {
	Endpoint string // e.g. https://cloud.appwrite.io/v1, no trailing slash
	Project  string
	Key      string // optional server API key

	HTTP *http.Client
}

func NewClient(endpoint, project, key string) *Client {
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Project:  project,
		Key:      key,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Error is the backend's error payload. A 404 with type
// *_not_found is a normal outcome for lookups, not a failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("appwrite: %d %s (%s)", e.Code, e.Message, e.Type)
}

func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == http.StatusNotFound
}

// do sends a JSON request. session, when non-empty, is a session secret
// replayed via the X-Appwrite-Session header.
func (c *Client) do(ctx context.Context, method, path, session string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Endpoint+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setHeaders(req, session)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("appwrite request failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

// doMultipart posts a multipart form, used for file uploads.
func (c *Client) doMultipart(ctx context.Context, path, session string, fields map[string]string, arrays map[string][]string, fileField, fileName string, file []byte, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}
	for k, vs := range arrays {
		for _, v := range vs {
			if err := mw.WriteField(k+"[]", v); err != nil {
				return err
			}
		}
	}
	fw, err := mw.CreateFormFile(fileField, fileName)
	if err != nil {
		return err
	}
	if _, err := fw.Write(file); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.setHeaders(req, session)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("appwrite upload failed: %w", err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func (c *Client) setHeaders(req *http.Request, session string) {
	req.Header.Set("X-Appwrite-Project", c.Project)
	req.Header.Set("X-Appwrite-Response-Format", "1.6.0")
	if c.Key != "" {
		req.Header.Set("X-Appwrite-Key", c.Key)
	}
	if session != "" {
		req.Header.Set("X-Appwrite-Session", session)
	}
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode >= 400 {
		apiErr := &Error{Code: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		if apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
