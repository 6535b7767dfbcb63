package rateprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/personal_ledger/internal/apperrors"
	"github.com/SscSPs/personal_ledger/internal/core/domain"
	portsprov "github.com/SscSPs/personal_ledger/internal/core/ports/providers"
	"github.com/SscSPs/personal_ledger/internal/middleware"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL serves GET {base}/{currency} with the full table for that currency.
const DefaultBaseURL = "https://api.exchangerate-api.com/v4/latest"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// latestRatesResponse is the provider payload. Fields we do not use are ignored.
type latestRatesResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// ExchangeRateAPIClient fetches rate tables from exchangerate-api.com or a compatible endpoint.
type ExchangeRateAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ portsprov.RateProvider = (*ExchangeRateAPIClient)(nil)

// NewExchangeRateAPIClient builds a client. An empty baseURL selects DefaultBaseURL.
func NewExchangeRateAPIClient(baseURL string, timeout time.Duration) *ExchangeRateAPIClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ExchangeRateAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchRates returns the provider's current table. Every failure wraps apperrors.ErrRefreshFailed.
func (c *ExchangeRateAPIClient) FetchRates(ctx context.Context, baseCurrency string) (*domain.RateTable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	endpoint := c.baseURL + "/" + url.PathEscape(baseCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrRefreshFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Rate provider request failed", slog.String("url", endpoint), slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrRefreshFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", apperrors.ErrRefreshFailed, err)
	}

	logger.Debug("Rate provider responded",
		slog.String("url", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned %d: %s", apperrors.ErrRefreshFailed, resp.StatusCode, snippet(body))
	}

	var payload latestRatesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", apperrors.ErrRefreshFailed, err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("%w: payload has no rates", apperrors.ErrRefreshFailed)
	}

	table := &domain.RateTable{
		BaseCurrency: strings.ToUpper(payload.Base),
		Rates:        payload.Rates,
	}
	if payload.Date != "" {
		if d, err := domain.ParseDate(payload.Date); err == nil {
			table.FetchedAt = d
		} else {
			logger.Warn("Ignoring unparseable rate date", slog.String("date", payload.Date))
		}
	}
	return table, nil
}

func snippet(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
