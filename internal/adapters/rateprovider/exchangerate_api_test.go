package rateprovider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/personal_ledger/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRates_Success(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","date":"2024-01-01","time_last_updated":1704067201,"rates":{"USD":1,"EUR":0.9,"JPY":141.35}}`))
	}))
	defer server.Close()

	client := NewExchangeRateAPIClient(server.URL+"/v4/latest/", time.Second)
	table, err := client.FetchRates(context.Background(), "USD")

	require.NoError(t, err)
	assert.Equal(t, "/v4/latest/USD", gotPath)
	assert.Equal(t, "USD", table.BaseCurrency)
	assert.Equal(t, "2024-01-01", table.FetchedAt.String())
	assert.Equal(t, "0.9", table.Rates["EUR"].String())
	assert.Equal(t, "141.35", table.Rates["JPY"].String())
	assert.Len(t, table.Rates, 3)
}

func TestFetchRates_UnparseableDateIsDropped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","date":"yesterday","rates":{"EUR":0.9}}`))
	}))
	defer server.Close()

	table, err := NewExchangeRateAPIClient(server.URL, time.Second).FetchRates(context.Background(), "USD")

	require.NoError(t, err)
	assert.True(t, table.FetchedAt.IsZero())
}

func TestFetchRates_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"base":"USD","rates":`))
		}},
		{"non-numeric rate", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":"lots"}}`))
		}},
		{"no rates", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"base":"USD","rates":{}}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			table, err := NewExchangeRateAPIClient(server.URL, time.Second).FetchRates(context.Background(), "USD")

			assert.Nil(t, table)
			assert.True(t, errors.Is(err, apperrors.ErrRefreshFailed), "got %v", err)
		})
	}
}

func TestFetchRates_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewExchangeRateAPIClient(server.URL, 50*time.Millisecond)
	_, err := client.FetchRates(context.Background(), "USD")

	assert.True(t, errors.Is(err, apperrors.ErrRefreshFailed))
}

func TestFetchRates_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9}}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExchangeRateAPIClient(server.URL, time.Second).FetchRates(ctx, "USD")

	assert.True(t, errors.Is(err, apperrors.ErrRefreshFailed))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFetchRates_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewExchangeRateAPIClient(url, time.Second).FetchRates(context.Background(), "USD")

	assert.True(t, errors.Is(err, apperrors.ErrRefreshFailed))
}
