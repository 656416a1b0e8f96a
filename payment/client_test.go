package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-pos-key")
}

func TestInvoicesByCustomer(t *testing.T) {
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-pos-key", r.Header.Get("x-pos-key"))
		assert.Equal(t, "cust-42", r.URL.Query().Get("customerId"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"invoices":[
			{"invoiceId":"inv-1","status":"Paid","total":14990,"currency":"HUF","downloadUrl":"https://gw/inv-1.pdf"},
			{"invoiceId":"inv-2","status":"Pending","total":14990,"currency":"HUF"}
		]}`))
	})

	invoices, err := client.InvoicesByCustomer(context.Background(), "cust-42")
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "inv-1", invoices[0].InvoiceID)
	assert.Equal(t, "Paid", invoices[0].Status)
	assert.Equal(t, int64(14990), invoices[0].Total)
	assert.Equal(t, "https://gw/inv-1.pdf", invoices[0].DownloadURL)
}

func TestInvoicesByCustomerNotFound(t *testing.T) {
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.InvoicesByCustomer(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoicesByCustomerServerErrorIsUnavailable(t *testing.T) {
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.InvoicesByCustomer(context.Background(), "cust-42")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMissingPosKeyDisablesGateway(t *testing.T) {
	client := NewClient("https://unused.example", "")

	_, err := client.InvoicesByCustomer(context.Background(), "cust-42")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = client.PaymentState(context.Background(), "pay-1")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPaymentState(t *testing.T) {
	client := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pay-7", r.URL.Query().Get("paymentId"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"paymentId":"pay-7","status":"Succeeded"}`))
	})

	state, err := client.PaymentState(context.Background(), "pay-7")
	require.NoError(t, err)
	assert.Equal(t, "Succeeded", state)
}
