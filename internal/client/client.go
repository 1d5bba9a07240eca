// Package client drives the inventory edit form against a running server:
// it seeds a form from the API and sends its single update request.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/erazemk/zaloga/internal/form"
	"github.com/erazemk/zaloga/internal/model"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 15 * time.Second

// ErrUnauthenticated is returned when the server rejects the token.
var ErrUnauthenticated = errors.New("client: not authenticated")

// StatusError reports a response the client has no outcome for.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("client: unexpected status %d: %s", e.Code, e.Message)
}

// Outcome is the result of one submission that reached the server.
type Outcome struct {
	// Saved is true when the update was accepted.
	Saved bool
	// Location is where the server redirected after a save.
	Location string
	// Errors holds the field errors of a rejected update.
	Errors form.Errors
}

// Client talks to a zaloga server with a bearer token.
type Client struct {
	httpClient *resty.Client
}

// New builds a client for the server at baseURL. Redirects are never
// followed so the status of the update itself is observed.
func New(baseURL string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(DefaultTimeout).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))

	return &Client{httpClient: restyClient}
}

// SetToken sets the bearer token sent with every request.
func (c *Client) SetToken(token string) {
	c.httpClient.SetAuthToken(token)
}

type apiError struct {
	Error string `json:"error"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type editResponse struct {
	Inventory  *model.InventoryItem `json:"inventory"`
	Categories []model.Category     `json:"categories"`
}

type validationResponse struct {
	Errors form.Errors `json:"errors"`
}

func statusError(resp *resty.Response, apiErr *apiError) error {
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	msg := ""
	if apiErr != nil {
		msg = apiErr.Error
	}
	if msg == "" {
		msg = strings.TrimSpace(resp.String())
	}
	return &StatusError{Code: resp.StatusCode(), Message: msg}
}

// Login exchanges credentials for a token and uses it from then on.
func (c *Client) Login(ctx context.Context, username, password string) error {
	result := new(loginResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(result).
		SetError(apiErr).
		Post("/api/auth/login")
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return statusError(resp, apiErr)
	}

	c.SetToken(result.Token)
	return nil
}

func (c *Client) fetch(ctx context.Context, id int64) (*editResponse, error) {
	result := new(editResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr).
		Get("/api/inventory/" + strconv.FormatInt(id, 10))
	if err != nil {
		return nil, fmt.Errorf("load inventory item %d: %w", id, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, statusError(resp, apiErr)
	}
	if result.Inventory == nil {
		return nil, fmt.Errorf("load inventory item %d: empty response", id)
	}
	return result, nil
}

// LoadEdit fetches an item with its category options and returns an edit
// form seeded from it.
func (c *Client) LoadEdit(ctx context.Context, id int64) (*form.Form, error) {
	res, err := c.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return form.New(res.Inventory, res.Categories), nil
}

// Reload fetches the form's record again. The form is re-seeded from the
// fresh record, dropping unsaved edits, and its category options are
// refreshed.
func (c *Client) Reload(ctx context.Context, f *form.Form) error {
	rec := f.Record()
	if rec == nil {
		return form.ErrNoRecord
	}
	res, err := c.fetch(ctx, rec.ID)
	if err != nil {
		return err
	}
	f.SetCategories(res.Categories)
	f.Sync(res.Inventory)
	return nil
}

// Submit sends the form's update request. A save or a validation
// rejection is reported in the Outcome and recorded on the form. Any other
// failure returns the form to editing with its values intact.
func (c *Client) Submit(ctx context.Context, f *form.Form) (*Outcome, error) {
	req, err := f.Submit()
	if err != nil {
		return nil, err
	}

	rejected := new(validationResponse)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req.Body).
		SetError(rejected).
		Execute(req.Method, req.Path)
	if err != nil {
		f.Abort()
		return nil, fmt.Errorf("submit %s %s: %w", req.Method, req.Path, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusSeeOther || (code >= 200 && code < 300):
		f.Complete(nil)
		return &Outcome{Saved: true, Location: resp.Header().Get("Location")}, nil
	case code == http.StatusUnprocessableEntity:
		errs := rejected.Errors
		if len(errs) == 0 {
			errs = form.Errors{"": "The update was rejected."}
		}
		f.Complete(errs)
		return &Outcome{Errors: f.Errors()}, nil
	default:
		f.Abort()
		return nil, statusError(resp, nil)
	}
}
