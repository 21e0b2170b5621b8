package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"focusbot/internal/domain"
	"focusbot/internal/service"
)

const apiPrefix = "/api/v1"

// APIError is an error envelope returned by the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnauthorized reports whether err means the session token was rejected
// or the session behind it has expired.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Health is the body of the readiness probe.
type Health struct {
	Status string `json:"status"`
	Model  string `json:"model"`
	Error  string `json:"error"`
}

// Download is a file returned by an attachment endpoint.
type Download struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Client talks to the FocusBot HTTP API and holds the current session token.
// A session is created lazily on the first session-scoped call and recreated
// once if the server reports it expired.
type Client struct {
	baseURL string
	client  *http.Client

	mu    sync.Mutex
	token string
}

// New creates a Client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Token returns the current session token, or "" if no session is open.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// StartSession creates a new server session and stores its token.
func (c *Client) StartSession(ctx context.Context) (*service.SessionToken, error) {
	var tok service.SessionToken
	if err := c.do(ctx, http.MethodPost, "/sessions", "", nil, "", &tok); err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.token = tok.Token
	c.mu.Unlock()
	return &tok, nil
}

// EndSession tears down the server session, if one is open.
func (c *Client) EndSession(ctx context.Context) error {
	token := c.Token()
	if token == "" {
		return nil
	}
	err := c.do(ctx, http.MethodDelete, "/sessions", token, nil, "", nil)
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if IsUnauthorized(err) {
		return nil
	}
	return err
}

// SendMessage sends one chat message and returns the reply with the updated log.
func (c *Client) SendMessage(ctx context.Context, message string) (*service.ChatReply, error) {
	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return nil, err
	}
	var reply service.ChatReply
	if err := c.scoped(ctx, http.MethodPost, "/chat/messages", body, "application/json", &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// History returns the conversation log, oldest first.
func (c *Client) History(ctx context.Context) ([]domain.ChatTurn, error) {
	var history []domain.ChatTurn
	if err := c.scoped(ctx, http.MethodGet, "/chat/messages", nil, "", &history); err != nil {
		return nil, err
	}
	return history, nil
}

// ClearHistory empties the conversation log.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.scoped(ctx, http.MethodDelete, "/chat/messages", nil, "", nil)
}

// ExportTranscript downloads the conversation log as csv or xlsx.
func (c *Client) ExportTranscript(ctx context.Context, format domain.ExportFormat) (*Download, error) {
	return c.download(ctx, "/chat/export?format="+url.QueryEscape(string(format)))
}

// UploadDocument uploads r as a document named fileName.
func (c *Client) UploadDocument(ctx context.Context, fileName string, r io.Reader) (*service.DocumentInfo, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	var info service.DocumentInfo
	if err := c.scoped(ctx, http.MethodPost, "/documents", buf.Bytes(), mw.FormDataContentType(), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UploadFile uploads the file at path.
func (c *Client) UploadFile(ctx context.Context, path string) (*service.DocumentInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return c.UploadDocument(ctx, filepath.Base(path), f)
}

// CurrentDocument describes the session's document.
func (c *Client) CurrentDocument(ctx context.Context) (*service.DocumentInfo, error) {
	var info service.DocumentInfo
	if err := c.scoped(ctx, http.MethodGet, "/documents/current", nil, "", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Page returns the 1-based page of the current document.
func (c *Client) Page(ctx context.Context, index int) (*domain.PageView, error) {
	var view domain.PageView
	path := "/documents/current/pages/" + strconv.Itoa(index)
	if err := c.scoped(ctx, http.MethodGet, path, nil, "", &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// Summarize asks the server to summarize the current document.
func (c *Client) Summarize(ctx context.Context) (*service.SummaryResult, error) {
	var res service.SummaryResult
	if err := c.scoped(ctx, http.MethodPost, "/documents/current/summary", nil, "", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DownloadSummary fetches the last summary as a text attachment.
func (c *Client) DownloadSummary(ctx context.Context) (*Download, error) {
	return c.download(ctx, "/documents/current/summary.txt")
}

// Ask asks a question about the current document.
func (c *Client) Ask(ctx context.Context, question string) (*service.Answer, error) {
	body, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return nil, err
	}
	var ans service.Answer
	if err := c.scoped(ctx, http.MethodPost, "/documents/current/questions", body, "application/json", &ans); err != nil {
		return nil, err
	}
	return &ans, nil
}

// Currencies lists the currency codes offered for conversion.
func (c *Client) Currencies(ctx context.Context) ([]string, error) {
	var codes []string
	if err := c.do(ctx, http.MethodGet, "/currencies", "", nil, "", &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// Convert converts an amount between two currencies.
func (c *Client) Convert(ctx context.Context, input service.ConvertInput) (*domain.Conversion, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	var conv domain.Conversion
	if err := c.do(ctx, http.MethodPost, "/currencies/convert", "", body, "application/json", &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// EmbedVideo resolves a pasted YouTube URL to its video ID and embed URL.
func (c *Client) EmbedVideo(ctx context.Context, videoURL string) (*domain.VideoEmbed, error) {
	var embed domain.VideoEmbed
	path := "/videos/embed?url=" + url.QueryEscape(videoURL)
	if err := c.do(ctx, http.MethodGet, path, "", nil, "", &embed); err != nil {
		return nil, err
	}
	return &embed, nil
}

// Ready calls the readiness probe.
func (c *Client) Ready(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/readyz", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var h Health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return nil, fmt.Errorf("decoding readiness: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &h, &APIError{StatusCode: resp.StatusCode, Message: h.Error}
	}
	return &h, nil
}

// ensureSession returns the current token, creating a session if needed.
func (c *Client) ensureSession(ctx context.Context) (string, error) {
	if token := c.Token(); token != "" {
		return token, nil
	}
	tok, err := c.StartSession(ctx)
	if err != nil {
		return "", fmt.Errorf("starting session: %w", err)
	}
	return tok.Token, nil
}

// scoped performs a session-scoped call, opening a fresh session and
// retrying once when the server rejects the current one.
func (c *Client) scoped(ctx context.Context, method, path string, body []byte, contentType string, out any) error {
	token, err := c.ensureSession(ctx)
	if err != nil {
		return err
	}
	err = c.do(ctx, method, path, token, body, contentType, out)
	if !IsUnauthorized(err) {
		return err
	}

	c.mu.Lock()
	if c.token == token {
		c.token = ""
	}
	c.mu.Unlock()

	token, err = c.ensureSession(ctx)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, token, body, contentType, out)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body []byte, contentType string) (*http.Request, error) {
	var rdr io.Reader = http.NoBody
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body []byte, contentType string, out any) error {
	req, err := c.newRequest(ctx, method, path, token, body, contentType)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: truncate(string(raw), 200)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

func (c *Client) download(ctx context.Context, path string) (*Download, error) {
	var dl *Download
	fetch := func(token string) error {
		req, err := c.newRequest(ctx, http.MethodGet, path, token, nil, "")
		if err != nil {
			return err
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("calling server: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			apiErr := &APIError{StatusCode: resp.StatusCode}
			var env envelope
			if json.Unmarshal(data, &env) == nil && env.Error != nil {
				apiErr.Code = env.Error.Code
				apiErr.Message = env.Error.Message
			}
			return apiErr
		}
		dl = &Download{
			FileName:    attachmentName(resp.Header.Get("Content-Disposition")),
			ContentType: resp.Header.Get("Content-Type"),
			Data:        data,
		}
		return nil
	}

	token, err := c.ensureSession(ctx)
	if err != nil {
		return nil, err
	}
	err = fetch(token)
	if IsUnauthorized(err) {
		c.mu.Lock()
		if c.token == token {
			c.token = ""
		}
		c.mu.Unlock()
		if token, err = c.ensureSession(ctx); err != nil {
			return nil, err
		}
		err = fetch(token)
	}
	if err != nil {
		return nil, err
	}
	return dl, nil
}

// attachmentName pulls the filename out of a Content-Disposition header.
func attachmentName(header string) string {
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
