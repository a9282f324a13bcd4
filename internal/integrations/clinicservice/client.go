package clinicservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger is the logging surface the client needs.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the main platform's catalog API. The scheduling service
// uses it only to validate that clinics and treatments referenced by a
// booking actually exist; availability reads never consult the catalog.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a clinic service client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetClinic fetches a clinic by id. Returns ErrClinicNotFound on 404.
func (c *Client) GetClinic(ctx context.Context, clinicID int64) (*Clinic, error) {
	url := fmt.Sprintf("%s/api/v1/clinics/%d", c.baseURL, clinicID)

	var clinic Clinic
	if err := c.getJSON(ctx, url, &clinic, ErrClinicNotFound); err != nil {
		return nil, err
	}
	return &clinic, nil
}

// GetTreatment fetches one treatment of a clinic. Returns
// ErrTreatmentNotFound on 404, which also covers treatments that exist
// but belong to another clinic.
func (c *Client) GetTreatment(ctx context.Context, clinicID, treatmentID int64) (*Treatment, error) {
	url := fmt.Sprintf("%s/api/v1/clinics/%d/treatments/%d", c.baseURL, clinicID, treatmentID)

	var treatment Treatment
	if err := c.getJSON(ctx, url, &treatment, ErrTreatmentNotFound); err != nil {
		return nil, err
	}
	return &treatment, nil
}

func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("clinicservice: GET %s failed: %v", url, err)
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrRequestFailed, err)
		}
		return nil
	case http.StatusNotFound:
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return notFound
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Warn("clinicservice: GET %s returned status %d", url, resp.StatusCode)
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
}
