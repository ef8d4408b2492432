package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"strings"

	"github.com/suchimauz/clinic-slot-planner/internal/config"
	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
)

type ClinicBackendAdapter struct {
	client   *http.Client
	baseURL  string
	username string
	password string
	logger   out.LoggerPort
}

type bulkCreateResponse struct {
	Count int `json:"count"`
}

func NewClinicBackendAdapter(cfg *config.Config, logger out.LoggerPort) *ClinicBackendAdapter {
	return &ClinicBackendAdapter{
		client:   &http.Client{Timeout: cfg.ClinicAPI.Timeout},
		baseURL:  strings.TrimRight(cfg.ClinicAPI.URL, "/"),
		username: cfg.ClinicAPI.Username,
		password: cfg.ClinicAPI.Password,
		logger:   logger.WithModule("ClinicBackendAdapter"),
	}
}

// Получение записей клиники за период, обе даты включительно
func (a *ClinicBackendAdapter) ListBookings(ctx context.Context, clinicID string, from, to json_types.Date) ([]domain.Booking, error) {
	a.logger.Info("backend.bookings.fetch", out.LogFields{
		"clinicId": clinicID,
		"from":     from,
		"to":       to,
	})

	url := fmt.Sprintf("%s/slots", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.logger.Error("backend.bookings.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	query := nurl.Values{}
	if clinicID != "" {
		query.Add("clinicId", clinicID)
	}
	query.Add("from", from.String())
	query.Add("to", to.String())
	req.URL.RawQuery = query.Encode()

	resp, err := a.do(req)
	if err != nil {
		a.logger.Error("backend.bookings.fetch_failed", out.LogFields{
			"clinicId": clinicID,
			"error":    err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	var bookings []domain.Booking
	if err := json.NewDecoder(resp.Body).Decode(&bookings); err != nil {
		a.logger.Error("backend.bookings.decode_failed", out.LogFields{
			"clinicId": clinicID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("%w: decode bookings: %v", out.ErrBackendUnavailable, err)
	}

	a.logger.Debug("backend.bookings.fetch_success", out.LogFields{
		"clinicId": clinicID,
		"count":    len(bookings),
	})

	return bookings, nil
}

// Создание слотов одним запросом, бэкенд сам разворачивает повторение
func (a *ClinicBackendAdapter) CreateSlots(ctx context.Context, creation domain.SlotCreationRequest) (int, error) {
	body, err := json.Marshal(creation)
	if err != nil {
		return 0, err
	}

	a.logger.Info("backend.slots.create", out.LogFields{
		"date":         creation.Date,
		"slotDuration": creation.SlotDuration,
	})

	url := fmt.Sprintf("%s/slots/bulk", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.do(req)
	if err != nil {
		a.logger.Error("backend.slots.create_failed", out.LogFields{
			"date":  creation.Date,
			"error": err.Error(),
		})
		return 0, err
	}
	defer resp.Body.Close()

	var result bulkCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		a.logger.Error("backend.slots.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return 0, fmt.Errorf("%w: decode create response: %v", out.ErrBackendUnavailable, err)
	}

	a.logger.Debug("backend.slots.create_success", out.LogFields{
		"count": result.Count,
	})

	return result.Count, nil
}

// do выполняет запрос с basic-авторизацией; любой ответ кроме 2xx считается ошибкой бэкенда
func (a *ClinicBackendAdapter) do(req *http.Request) (*http.Response, error) {
	if a.username != "" {
		req.SetBasicAuth(a.username, a.password)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", out.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", out.ErrBackendUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	return resp, nil
}
