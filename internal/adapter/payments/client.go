package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/washpoint/washpoint/internal/domain/model"
)

// ErrUnknownReference indicates the collector doesn't know the payment.
var ErrUnknownReference = errors.New("unknown payment reference")

// TooManyRequestsError represents a rate limiting signal from the collector.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// ProviderError carries the collector's own failure message.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e ProviderError) Error() string {
	return fmt.Sprintf("payment collector rejected request (%d): %s", e.StatusCode, e.Message)
}

// Collection is the collector's answer to a successful initiation.
type Collection struct {
	Reference string
	Operator  string
	USSDCode  string
}

// PaymentStatus reports the current state of an initiated payment.
type PaymentStatus struct {
	Reference string
	Status    model.TransactionStatus
}

// Client exposes operations against the mobile-money payment collector.
type Client interface {
	Collect(ctx context.Context, amount float64, phoneNumber, description string) (*Collection, error)
	CheckStatus(ctx context.Context, reference string) (*PaymentStatus, error)
}

// HTTPClient implements Client via the collector's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type collectRequest struct {
	Amount      float64 `json:"amount"`
	PhoneNumber string  `json:"phone_number"`
	Description string  `json:"description"`
}

type collectResponse struct {
	Reference string `json:"reference"`
	Operator  string `json:"operator"`
	USSDCode  string `json:"ussd_code"`
}

type statusResponse struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPClient creates an HTTP collector client with the given call timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse collector url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("collector url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Collect initiates a mobile-money charge. Transport failures are retried
// once; collector rejections are returned as ProviderError.
func (c *HTTPClient) Collect(ctx context.Context, amount float64, phoneNumber, description string) (*Collection, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/collect")

	payload, err := json.Marshal(collectRequest{Amount: amount, PhoneNumber: phoneNumber, Description: description})
	if err != nil {
		return nil, err
	}

	var resp *http.Response
	for attempt := 0; attempt < 2; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err = c.httpClient.Do(req)
		if err == nil {
			break
		}
		if ctx.Err() != nil || attempt == 1 {
			return nil, err
		}
		c.logger.Warn("payment collect attempt failed, retrying", slog.String("error", err.Error()))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data collectResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &Collection{Reference: data.Reference, Operator: data.Operator, USSDCode: data.USSDCode}, nil
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		return nil, c.providerError(resp)
	}
}

// CheckStatus queries the collector for the state of an initiated payment.
func (c *HTTPClient) CheckStatus(ctx context.Context, reference string) (*PaymentStatus, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/payments/", reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data statusResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		return &PaymentStatus{Reference: data.Reference, Status: model.TransactionStatus(data.Status)}, nil
	case http.StatusNotFound:
		return nil, ErrUnknownReference
	case http.StatusTooManyRequests:
		return nil, TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		return nil, c.providerError(resp)
	}
}

func (c *HTTPClient) providerError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	message := resp.Status
	var data errorResponse
	if err := json.Unmarshal(body, &data); err == nil && data.Message != "" {
		message = data.Message
	}
	c.logger.Error("payment collector request failed", slog.Int("status", resp.StatusCode), slog.String("message", message))
	return ProviderError{StatusCode: resp.StatusCode, Message: message}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
