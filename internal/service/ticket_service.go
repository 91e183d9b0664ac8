package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"callcenter-analysis-be/internal/dto"
	"callcenter-analysis-be/internal/pkg/logger"
	"callcenter-analysis-be/internal/pkg/serverutils"
)

// srNumberKeys are the response fields the ticketing system has used for the
// created service request number, in order of preference.
var srNumberKeys = []string{"ServiceRequestNumber", "SRNumber", "srNumber", "ServiceRequestID"}

type ITicketService interface {
	CreateServiceRequest(ctx context.Context, req dto.ServiceRequest) (*dto.ServiceRequestResponse, error)
}

type ticketService struct {
	endpoint string
	client   *http.Client
	logger   logger.ILogger
}

func NewTicketService(endpoint string, timeout time.Duration, log logger.ILogger) ITicketService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ticketService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   log,
	}
}

// CreateServiceRequest forwards the ticket and reports the SR number. Upstream
// failures are returned as an unsuccessful response, not as an error, so the
// caller can show the message.
func (s *ticketService) CreateServiceRequest(ctx context.Context, req dto.ServiceRequest) (*dto.ServiceRequestResponse, error) {
	if s.endpoint == "" {
		return nil, serverutils.NewAppError(503, "ticketing endpoint is not configured", nil)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode service request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.logger.Error("Ticket", "Ticketing request failed", map[string]interface{}{
			"msisdn": req.MSISDN, "error": err.Error(),
		})
		return &dto.ServiceRequestResponse{Success: false, Message: "ticketing system unreachable"}, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read ticketing response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("Ticket", "Ticketing system rejected request", map[string]interface{}{
			"msisdn": req.MSISDN, "status": resp.StatusCode, "body": string(raw),
		})
		return &dto.ServiceRequestResponse{
			Success: false,
			Message: fmt.Sprintf("ticketing system returned status %d", resp.StatusCode),
		}, nil
	}

	sr := extractSRNumber(raw)
	if sr == "" {
		return &dto.ServiceRequestResponse{Success: false, Message: "ticketing system returned no SR number"}, nil
	}

	s.logger.Info("Ticket", "Service request created", map[string]interface{}{
		"msisdn": req.MSISDN, "sr_number": sr,
	})
	return &dto.ServiceRequestResponse{Success: true, SRNumber: sr}, nil
}

func extractSRNumber(raw []byte) string {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	for _, key := range srNumberKeys {
		switch v := fields[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
