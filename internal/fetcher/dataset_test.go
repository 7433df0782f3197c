package fetcher

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Zachdehooge/temperature-heatmap/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDataset = `{
  "baseTemperature": 8.66,
  "monthlyVariance": [
    {"year": 1753, "month": 1, "variance": -1.366},
    {"year": 1753, "month": 2, "variance": -2.223},
    {"year": 2015, "month": 9, "variance": 1.221}
  ]
}`

func testClient(url string, retries int) *Client {
	c := NewClient(url, 5*time.Second, retries,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetricsForTesting())
	c.initialInterval = time.Millisecond
	return c
}

func TestDecode(t *testing.T) {
	ds, err := Decode([]byte(sampleDataset))
	require.NoError(t, err)

	assert.Equal(t, 8.66, ds.BaseTemperature)
	require.Len(t, ds.MonthlyVariance, 3)
	assert.Equal(t, Record{Year: 1753, Month: 1, Variance: -1.366}, ds.MonthlyVariance[0])
	assert.InDelta(t, 7.294, ds.Temperature(ds.MonthlyVariance[0]), 1e-9)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"empty records", `{"baseTemperature": 8.66, "monthlyVariance": []}`, ErrEmptyDataset},
		{"missing records", `{"baseTemperature": 8.66}`, ErrEmptyDataset},
		{"month zero", `{"monthlyVariance": [{"year": 1800, "month": 0, "variance": 0}]}`, ErrMonthOutOfRange},
		{"month thirteen", `{"monthlyVariance": [{"year": 1800, "month": 13, "variance": 0}]}`, ErrMonthOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte(`{"monthlyVariance": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestClient_FetchDataset_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Contains(t, r.Header.Get("User-Agent"), "temperature-heatmap")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, sampleDataset) //nolint:errcheck
	}))
	defer srv.Close()

	ds, err := testClient(srv.URL, 0).FetchDataset(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.MonthlyVariance, 3)
}

func TestClient_FetchDataset_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
			return
		}
		io.WriteString(w, sampleDataset) //nolint:errcheck
	}))
	defer srv.Close()

	ds, err := testClient(srv.URL, 2).FetchDataset(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.MonthlyVariance, 3)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_FetchDataset_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 1).FetchDataset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_FetchDataset_ClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 3).FetchDataset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_FetchDataset_InvalidPayloadIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		io.WriteString(w, `{"baseTemperature": 8.66, "monthlyVariance": []}`) //nolint:errcheck
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 3).FetchDataset(context.Background())
	assert.ErrorIs(t, err, ErrEmptyDataset)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_FetchDataset_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := testClient(url, 0).FetchDataset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch dataset")
}

func TestClient_FetchDataset_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, sampleDataset) //nolint:errcheck
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL, 2).FetchDataset(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
