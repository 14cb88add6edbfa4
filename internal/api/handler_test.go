package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/engine"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/metrics"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/internal/report"
)

func newTestRouter(t *testing.T, maxBars int) (*gin.Engine, *metrics.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := metrics.New()
	now := func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	e := engine.New(zap.NewNop(), engine.WithObserver(m), engine.WithLimit(2))
	h := NewHandler(e, report.NewBuilder(now), m, zap.NewNop(), maxBars)
	return NewRouter(h, m, zap.NewNop()), m
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	return rec
}

const fiveBars = `[
	{"time": 5, "open": 5, "high": 5, "low": 5, "close": 5, "volume": 1},
	{"time": 1, "open": 1, "high": 1, "low": 1, "close": 1, "volume": 1},
	{"t": 2, "o": 2, "h": 2, "l": 2, "c": 2, "v": 1},
	{"time": 3, "open": "3", "high": "3", "low": "3", "close": "3", "volume": "1"},
	{"time": 4, "open": 4, "high": 4, "low": 4, "close": 4, "volume": 1}
]`

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t, 0)
	rec := do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListIndicators(t *testing.T) {
	r, _ := newTestRouter(t, 0)
	rec := do(r, http.MethodGet, "/v1/indicators", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"indicators":["atr","bollinger","ema","macd","rsi","sma","vwap"]}`,
		rec.Body.String())
}

func TestComputeSMA(t *testing.T) {
	r, m := newTestRouter(t, 0)

	body := `{"symbol":"EUR_USD","bars":` + fiveBars + `,"indicators":[{"name":"sma","period":3}]}`
	rec := do(r, http.MethodPost, "/v1/indicators", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "EUR_USD", got.Symbol)
	assert.Equal(t, 5, got.Bars)
	assert.Equal(t, int64(1), got.From)
	assert.Equal(t, int64(5), got.To)
	require.Len(t, got.Results, 1)

	res := got.Results[0]
	assert.Equal(t, "sma(3)", res.Key)
	line := res.Lines["value"]
	require.Len(t, line, 3)
	assert.Equal(t, int64(3), line[0].Time)
	assert.InDelta(t, 2.0, line[0].Value, 1e-9)
	assert.InDelta(t, 4.0, line[2].Value, 1e-9)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IndicatorsTotal.WithLabelValues("sma")))
}

func TestComputeMultiple(t *testing.T) {
	r, _ := newTestRouter(t, 0)

	body := `{"bars":` + fiveBars + `,"indicators":[
		{"name":"ema","period":2},
		{"name":"macd","fast":1,"slow":2,"signal":1},
		{"name":"vwap"}
	]}`
	rec := do(r, http.MethodPost, "/v1/indicators", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Results, 3)
	assert.Equal(t, "ema(2)", got.Results[0].Key)
	assert.Equal(t, "macd(1,2,1)", got.Results[1].Key)
	assert.Equal(t, "vwap", got.Results[2].Key)
	assert.Len(t, got.Results[2].Lines["value"], 5)
	assert.NotEmpty(t, got.Results[1].Histogram)
}

func TestComputeInsufficientHistory(t *testing.T) {
	r, _ := newTestRouter(t, 0)

	body := `{"bars":` + fiveBars + `,"indicators":[{"name":"rsi","period":14}]}`
	rec := do(r, http.MethodPost, "/v1/indicators", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var got report.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Results, 1)
	assert.True(t, got.Results[0].Empty())
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		maxBars    int
		wantStatus int
		wantField  string
	}{
		{
			name:       "not json",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed bar",
			body:       `{"bars":[{"time":1,"open":1,"high":1,"low":2,"close":1}],"indicators":[{"name":"sma"}]}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "low",
		},
		{
			name:       "missing close",
			body:       `{"bars":[{"time":1,"open":1,"high":1,"low":1}],"indicators":[{"name":"sma"}]}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "close",
		},
		{
			name:       "unknown indicator",
			body:       `{"bars":` + fiveBars + `,"indicators":[{"name":"stochastic"}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid period",
			body:       `{"bars":` + fiveBars + `,"indicators":[{"name":"sma","period":-1}]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no indicators",
			body:       `{"bars":` + fiveBars + `,"indicators":[]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "too many bars",
			body:       `{"bars":` + fiveBars + `,"indicators":[{"name":"sma"}]}`,
			maxBars:    4,
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(t, tt.maxBars)
			rec := do(r, http.MethodPost, "/v1/indicators", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, resp.Field)
				require.NotNil(t, resp.Index)
				assert.Equal(t, 0, *resp.Index)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, 0)
	do(r, http.MethodGet, "/healthz", "")

	rec := do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `signals_requests_total{status="200"} 1`)
}
