// Package storeclient talks to the candidate/selection CRUD REST service.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// Client implements ports.Store over HTTP. It performs no retries.
type Client struct {
	baseURL string
	httpDo  *http.Client
	logger  zerolog.Logger
}

func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpDo:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	var out []candidateDTO
	if err := c.do(ctx, "list candidates", http.MethodGet, "/candidates", nil, &out, nil); err != nil {
		return nil, err
	}
	list := make([]domain.Candidate, 0, len(out))
	for _, dto := range out {
		list = append(list, dto.toDomain())
	}
	return list, nil
}

func (c *Client) GetCandidate(ctx context.Context, id string) (domain.Candidate, error) {
	var out candidateDTO
	if err := c.do(ctx, "get candidate", http.MethodGet, "/candidates/"+url.PathEscape(id), nil, &out, domain.ErrCandidateNotFound); err != nil {
		return domain.Candidate{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) CreateCandidate(ctx context.Context, cand domain.Candidate) (domain.Candidate, error) {
	var out candidateDTO
	if err := c.do(ctx, "create candidate", http.MethodPost, "/candidates", fromDomain(cand), &out, nil); err != nil {
		return domain.Candidate{}, err
	}
	if out.ID == "" {
		return domain.Candidate{}, &domain.StoreError{Op: "create candidate", Err: errors.New("store returned no id")}
	}
	return out.toDomain(), nil
}

func (c *Client) UpdateCandidate(ctx context.Context, cand domain.Candidate) (domain.Candidate, error) {
	var out candidateDTO
	if err := c.do(ctx, "update candidate", http.MethodPut, "/candidates/"+url.PathEscape(cand.ID), fromDomain(cand), &out, domain.ErrCandidateNotFound); err != nil {
		return domain.Candidate{}, err
	}
	updated := out.toDomain()
	// The store does not persist custom fields on update; keep ours when it omits them.
	if len(updated.CustomFields) == 0 {
		updated.CustomFields = cand.CustomFields
	}
	return updated, nil
}

func (c *Client) DeleteCandidate(ctx context.Context, id string) error {
	return c.do(ctx, "delete candidate", http.MethodDelete, "/candidates/"+url.PathEscape(id), nil, nil, domain.ErrCandidateNotFound)
}

func (c *Client) CountCreatedToday(ctx context.Context) (int, error) {
	var out struct {
		Count *int `json:"count"`
	}
	if err := c.do(ctx, "count today", http.MethodGet, "/candidates/count/today", nil, &out, nil); err != nil {
		return 0, err
	}
	if out.Count == nil {
		return 0, &domain.StoreError{Op: "count today", Err: errors.New("response missing count")}
	}
	return *out.Count, nil
}

// Name and Ping let the readiness probe check the store.
func (c *Client) Name() string { return "store" }

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.CountCreatedToday(ctx)
	return err
}

func (c *Client) LoadSelections(ctx context.Context, candidateID string) (domain.RecipientSelections, error) {
	var out selectionsDTO
	if err := c.do(ctx, "load selections", http.MethodGet, "/selections/"+url.PathEscape(candidateID), nil, &out, domain.ErrSelectionsNotFound); err != nil {
		return domain.RecipientSelections{}, err
	}
	return out.toDomain(candidateID), nil
}

func (c *Client) SaveSelections(ctx context.Context, s domain.RecipientSelections) (domain.RecipientSelections, error) {
	in := selectionsDTO{
		CandidateID:     flexString(s.CandidateID),
		FieldVisibility: s.FieldVisibility.Clone(),
		FieldOrder:      s.FieldOrder.Clone(),
	}
	var out selectionsDTO
	if err := c.do(ctx, "save selections", http.MethodPut, "/selections/"+url.PathEscape(s.CandidateID), in, &out, nil); err != nil {
		return domain.RecipientSelections{}, err
	}
	saved := out.toDomain(s.CandidateID)
	// Older stores only persist visibility and echo no order.
	if out.FieldOrder == nil {
		saved.FieldOrder = s.FieldOrder.Clone()
	}
	return saved, nil
}

// do issues one request. A 404 maps to notFound when it is non-nil; every
// other failure becomes a *domain.StoreError.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any, notFound error) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &domain.StoreError{Op: op, Err: err}
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return &domain.StoreError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return &domain.StoreError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("store request")

	if resp.StatusCode == http.StatusNotFound && notFound != nil {
		return notFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.StoreError{Op: op, Status: resp.StatusCode, Err: errors.New(errorMessage(resp))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.StoreError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessage extracts the store's {"error": "...", "details": "..."} body.
func errorMessage(resp *http.Response) string {
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		if body.Details != "" {
			return body.Error + ": " + body.Details
		}
		return body.Error
	}
	return http.StatusText(resp.StatusCode)
}
