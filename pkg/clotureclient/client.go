// Package clotureclient is the Go client of the farm period-close API: an
// authenticated session, the per-year registry of closures with its guarded
// transitions, and the derived detail view.
package clotureclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/SscSPs/farm_management_app/internal/dto"
)

// GenericErrorMessage is shown when the server gives no usable message.
const GenericErrorMessage = "Une erreur est survenue. Veuillez réessayer."

// APIError is an error status returned by the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return e.Message
}

// UserMessage returns the text to show for err: the server message when there
// is one, the generic localized message otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var clientErr *clientError
	if errors.As(err, &clientErr) {
		return clientErr.Error()
	}
	return GenericErrorMessage
}

// Cloture is the client's read copy of a period closure.
type Cloture struct {
	domain.PeriodClosure
	LectureSeule bool `json:"lecture_seule"`
}

// Actions returns the mutating actions the UI may offer for the closure.
// It is derived from the status alone, never from the server payload.
func (c Cloture) Actions() domain.Actions {
	return domain.AllowedActions(c.Statut)
}

// ExportFile is a generated document returned as base64.
type ExportFile struct {
	domain.ExportFile
}

// Decode returns the raw bytes of the document.
func (f ExportFile) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(f.ContentBase64)
}

// Client performs typed calls against the REST API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API rooted at baseURL, e.g. "http://localhost:8080/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token sent with every request. An empty token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login exchanges credentials for an access token. It does not store the token.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListClotures fetches every closure of a year.
func (c *Client) ListClotures(ctx context.Context, annee int) ([]Cloture, error) {
	var out []Cloture
	q := url.Values{"annee": {strconv.Itoa(annee)}}
	if err := c.do(ctx, http.MethodGet, "/clotures?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCloture fetches one closure.
func (c *Client) GetCloture(ctx context.Context, id string) (*Cloture, error) {
	var out Cloture
	if err := c.do(ctx, http.MethodGet, "/clotures/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCloture opens the closure of (mois, annee).
func (c *Client) CreateCloture(ctx context.Context, mois, annee int) (*Cloture, error) {
	var out Cloture
	if err := c.do(ctx, http.MethodPost, "/clotures", dto.CreateClotureRequest{Mois: mois, Annee: annee}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateCloture requests the ouverte to validee transition.
func (c *Client) ValidateCloture(ctx context.Context, id string) (*Cloture, error) {
	return c.transition(ctx, id, domain.ActionValidate)
}

// CloseCloture requests the validee to cloturee transition.
func (c *Client) CloseCloture(ctx context.Context, id string) (*Cloture, error) {
	return c.transition(ctx, id, domain.ActionClose)
}

func (c *Client) transition(ctx context.Context, id string, action domain.ClotureAction) (*Cloture, error) {
	var out Cloture
	path := "/clotures/" + url.PathEscape(id) + "/" + string(action)
	if err := c.do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportClotures fetches the spreadsheet export of a year.
func (c *Client) ExportClotures(ctx context.Context, annee int) (*ExportFile, error) {
	var out ExportFile
	q := url.Values{"annee": {strconv.Itoa(annee)}, "format": {"xlsx"}}
	if err := c.do(ctx, http.MethodGet, "/clotures/export?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{StatusCode: resp.StatusCode, Message: serverMessage(raw)}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// serverMessage extracts the human readable message of an error body.
// Both {"error": ...} and {"message": ...} shapes are accepted.
func serverMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
