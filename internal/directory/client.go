// Package directory looks up companies and their active drivers from the
// dispatch dashboard API. Lookups feed the task form's pickers; a failure is
// reported to the user but never blocks manual entry.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Burh0n/LogiTrack-Pro/internal/logging"
)

const (
	companiesPath = "/api/dashboards/getcompanies"
	driversPath   = "/api/dashboards/v2/activedrivers"
	maxErrorBody  = 64 << 10
)

// Company is one selectable carrier.
type Company struct {
	ID   string
	Name string
}

// Driver is one active driver of a company.
type Driver struct {
	ID        string
	FirstName string
	LastName  string
}

// FullName is the label the task form stores in its driver field.
func (d Driver) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// Directory is what the CLI depends on.
type Directory interface {
	ListCompanies(ctx context.Context) ([]Company, error)
	ListDriversForCompany(ctx context.Context, companyID string) ([]Driver, error)
}

// Client talks to the dashboard API over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client. timeout bounds each request.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx answer from the directory.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type companiesResponse struct {
	Companies []struct {
		UID  flexID `json:"uid"`
		Name string `json:"name"`
	} `json:"companies"`
}

type driversResponse struct {
	Drivers []struct {
		ID         flexID `json:"id"`
		FirstName  string `json:"first_name"`
		SecondName string `json:"second_name"`
	} `json:"drivers"`
}

// ListCompanies returns every company visible to the token.
func (c *Client) ListCompanies(ctx context.Context) ([]Company, error) {
	var body companiesResponse
	if err := c.get(ctx, companiesPath, nil, "Failed to fetch companies", &body); err != nil {
		return nil, err
	}
	companies := make([]Company, 0, len(body.Companies))
	for _, co := range body.Companies {
		companies = append(companies, Company{ID: string(co.UID), Name: co.Name})
	}
	return companies, nil
}

// ListDriversForCompany returns the active drivers of a company. An empty
// company ID yields no drivers and no request.
func (c *Client) ListDriversForCompany(ctx context.Context, companyID string) ([]Driver, error) {
	if strings.TrimSpace(companyID) == "" {
		return nil, nil
	}
	var body driversResponse
	headers := map[string]string{"companyuid": companyID}
	if err := c.get(ctx, driversPath, headers, "Failed to fetch drivers", &body); err != nil {
		return nil, err
	}
	drivers := make([]Driver, 0, len(body.Drivers))
	for _, d := range body.Drivers {
		drivers = append(drivers, Driver{ID: string(d.ID), FirstName: d.FirstName, LastName: d.SecondName})
	}
	return drivers, nil
}

func (c *Client) get(ctx context.Context, path string, headers map[string]string, failMsg string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", failMsg, err)
	}
	req.Header.Set("authorization", c.token)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logging.Debugf("GET %s\n", req.URL)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", failMsg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp, failMsg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", failMsg, err)
	}
	return nil
}

// apiError prefers the server's own message and falls back to
// "<msg>: <status> <status text>".
func apiError(resp *http.Response, failMsg string) error {
	fallback := fmt.Sprintf("%s: %d %s", failMsg, resp.StatusCode, http.StatusText(resp.StatusCode))
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && strings.TrimSpace(body.Message) != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: body.Message}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: fallback}
}

// flexID accepts identifiers encoded as JSON strings or numbers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}
