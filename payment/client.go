// Package payment wraps the external payment gateway. The gateway is an
// opaque ledger: we query invoices by customer id and payment state by
// payment id, nothing else.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	// ErrUnavailable marks transient gateway failures. Callers degrade to
	// local data instead of surfacing these to the end user.
	ErrUnavailable = errors.New("payment gateway unavailable")
	// ErrNotFound marks an unknown customer or payment id.
	ErrNotFound = errors.New("payment gateway: not found")
)

// Invoice is a gateway-side invoice as returned by the ledger.
type Invoice struct {
	InvoiceID   string     `json:"invoiceId"`
	Status      string     `json:"status"` // Pending, Paid, Failed
	Total       int64      `json:"total"`
	Currency    string     `json:"currency"`
	DownloadURL string     `json:"downloadUrl"`
	IssuedAt    *time.Time `json:"issuedAt"`
	PaidAt      *time.Time `json:"paidAt"`
}

type invoiceListResponse struct {
	Invoices []Invoice `json:"invoices"`
	Message  string    `json:"message"`
}

type paymentStateResponse struct {
	PaymentID string `json:"paymentId"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// LocalInvoiceID derives a placeholder gateway invoice id for rows booked
// before the gateway assigns its own. Unique per subscription and moment.
func LocalInvoiceID(subscriptionID uint, at time.Time) string {
	return fmt.Sprintf("local-%d-%d", subscriptionID, at.UnixNano())
}

// Client is a thin resty wrapper over the gateway REST API.
type Client struct {
	http   *resty.Client
	posKey string
}

// NewClient builds a gateway client. posKey may be empty, in which case
// every call fails with ErrUnavailable and callers run on local data only.
func NewClient(baseURL, posKey string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &Client{http: httpClient, posKey: posKey}
}

// InvoicesByCustomer lists the gateway invoices of one customer.
func (c *Client) InvoicesByCustomer(ctx context.Context, customerID string) ([]Invoice, error) {
	if c.posKey == "" {
		return nil, ErrUnavailable
	}
	if customerID == "" {
		return nil, ErrNotFound
	}

	var result invoiceListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-pos-key", c.posKey).
		SetQueryParam("customerId", customerID).
		SetResult(&result).
		Get("/invoices")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode() == 404:
		return nil, ErrNotFound
	case resp.StatusCode() >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	case resp.IsError():
		return nil, fmt.Errorf("payment gateway error: status %d: %s", resp.StatusCode(), result.Message)
	}

	return result.Invoices, nil
}

// PaymentState returns the gateway status string of one payment.
func (c *Client) PaymentState(ctx context.Context, paymentID string) (string, error) {
	if c.posKey == "" {
		return "", ErrUnavailable
	}

	var result paymentStateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-pos-key", c.posKey).
		SetQueryParam("paymentId", paymentID).
		SetResult(&result).
		Get("/payment/state")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode() == 404:
		return "", ErrNotFound
	case resp.StatusCode() >= 500:
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	case resp.IsError():
		return "", fmt.Errorf("payment gateway error: status %d: %s", resp.StatusCode(), result.Message)
	}

	return result.Status, nil
}
