package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrSMSRejected is returned when the SMS provider does not accept a message.
var ErrSMSRejected = errors.New("sms provider rejected the message")

// SMSConfig configures the bulk-SMS provider client.
type SMSConfig struct {
	// BaseURL is the provider endpoint, e.g. https://www.fast2sms.com/dev/bulkV2.
	BaseURL string
	// APIKey is sent in the authorization header.
	APIKey string
	// Timeout bounds each delivery call; an expired timeout is a delivery failure.
	Timeout time.Duration
}

// SMSClient sends one-time codes through a bulk-SMS HTTP API.
type SMSClient struct {
	httpc   *http.Client
	baseURL string
	apiKey  string
}

func NewSMSClient(cfg SMSConfig) *SMSClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &SMSClient{
		httpc:   &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

type smsRequest struct {
	VariablesValues string `json:"variables_values"`
	Route           string `json:"route"`
	Numbers         string `json:"numbers"`
}

type smsResponse struct {
	Return  bool   `json:"return"`
	Message any    `json:"message"`
	Request string `json:"request_id"`
}

// SendOTP posts the code to the provider's OTP route for the given number.
func (c *SMSClient) SendOTP(ctx context.Context, phone, code string) error {
	body, err := json.Marshal(smsRequest{
		VariablesValues: code,
		Route:           "otp",
		Numbers:         phone,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrSMSRejected, resp.StatusCode)
	}

	var out smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}
	if !out.Return {
		return fmt.Errorf("%w: %v", ErrSMSRejected, out.Message)
	}

	return nil
}
