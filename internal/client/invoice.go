package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"callcenter-analysis-be/internal/dto"
)

type InvoiceStep int

const (
	InvoiceForm InvoiceStep = iota
	InvoiceProcessing
	InvoiceResult
)

var ErrInvoiceBusy = errors.New("an invoice request is already being processed")

type invoiceForm struct {
	Phone string `validate:"required,numeric,min=10,max=12"`
	Year  int    `validate:"required,gte=2000,lte=2100"`
	Month int    `validate:"required,gte=1,lte=12"`
}

// InvoiceWizard drives the self-service detailed invoice request:
// Form, then Processing while the ticket is filed, then Result with the SR number.
// A failure sends the wizard back to Form.
type InvoiceWizard struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate

	step     InvoiceStep
	srNumber string
}

func NewInvoiceWizard(baseURL string, httpClient *http.Client) *InvoiceWizard {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &InvoiceWizard{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		validate: validator.New(),
	}
}

func (w *InvoiceWizard) Step() InvoiceStep { return w.step }
func (w *InvoiceWizard) SRNumber() string  { return w.srNumber }

// Submit validates the form and files the ticket.
func (w *InvoiceWizard) Submit(ctx context.Context, phone, year, month string) (string, error) {
	if w.step == InvoiceProcessing {
		return "", ErrInvoiceBusy
	}
	form, err := w.parse(phone, year, month)
	if err != nil {
		return "", err
	}

	w.step = InvoiceProcessing
	sr, err := w.file(ctx, dto.NewInvoiceRequest(form.Phone, form.Year, form.Month))
	if err != nil {
		w.step = InvoiceForm
		return "", err
	}
	w.step = InvoiceResult
	w.srNumber = sr
	return sr, nil
}

// Reset starts a new request.
func (w *InvoiceWizard) Reset() {
	w.step = InvoiceForm
	w.srNumber = ""
}

func (w *InvoiceWizard) parse(phone, year, month string) (invoiceForm, error) {
	form := invoiceForm{Phone: strings.TrimSpace(phone)}
	if y, err := strconv.Atoi(strings.TrimSpace(year)); err == nil {
		form.Year = y
	}
	if m, err := strconv.Atoi(strings.TrimSpace(month)); err == nil {
		form.Month = m
	}
	if err := w.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return form, fmt.Errorf("invalid %s", strings.ToLower(verrs[0].Field()))
		}
		return form, err
	}
	return form, nil
}

func (w *InvoiceWizard) file(ctx context.Context, req dto.ServiceRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode service request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/api/tibco/service-request", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send service request: %w", err)
	}
	defer resp.Body.Close()

	var out dto.ServiceRequestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode service response (status %d): %w", resp.StatusCode, err)
	}
	if !out.Success || out.SRNumber == "" {
		msg := out.Message
		if msg == "" {
			msg = "no SR number returned"
		}
		return "", errors.New(msg)
	}
	return out.SRNumber, nil
}
