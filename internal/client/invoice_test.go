package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callcenter-analysis-be/internal/dto"
)

func TestInvoiceWizardFilesTicket(t *testing.T) {
	var got dto.ServiceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tibco/service-request", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(dto.ServiceRequestResponse{Success: true, SRNumber: "SR-1001"})
	}))
	defer srv.Close()

	w := NewInvoiceWizard(srv.URL, srv.Client())
	sr, err := w.Submit(context.Background(), "5321234567", "2024", "3")
	require.NoError(t, err)
	assert.Equal(t, "SR-1001", sr)
	assert.Equal(t, InvoiceResult, w.Step())

	assert.Equal(t, "5321234567", got.MSISDN)
	qs := got.SRStructure.ListOfExternalQuestions.ExternalQuestions
	require.Len(t, qs, 3)
	assert.Equal(t, "2024", qs[0].Answer)
	assert.Equal(t, "3", qs[1].Answer)

	w.Reset()
	assert.Equal(t, InvoiceForm, w.Step())
	assert.Empty(t, w.SRNumber())
}

func TestInvoiceWizardValidation(t *testing.T) {
	w := NewInvoiceWizard("http://unused", nil)
	tests := []struct {
		name, phone, year, month, want string
	}{
		{name: "missing phone", phone: "", year: "2024", month: "1", want: "invalid phone"},
		{name: "letters in phone", phone: "53212abc67", year: "2024", month: "1", want: "invalid phone"},
		{name: "month out of range", phone: "5321234567", year: "2024", month: "13", want: "invalid month"},
		{name: "year not a number", phone: "5321234567", year: "last", month: "1", want: "invalid year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.Submit(context.Background(), tt.phone, tt.year, tt.month)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, InvoiceForm, w.Step())
		})
	}
}

func TestInvoiceWizardReturnsToFormOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(dto.ServiceRequestResponse{Success: false, Message: "ticketing unavailable"})
	}))
	defer srv.Close()

	w := NewInvoiceWizard(srv.URL, srv.Client())
	_, err := w.Submit(context.Background(), "5321234567", "2024", "3")
	require.EqualError(t, err, "ticketing unavailable")
	assert.Equal(t, InvoiceForm, w.Step())
}
