package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/monielab/monieshop-analytics/internal/core/metrics"
	"github.com/monielab/monieshop-analytics/internal/core/sale"
	"github.com/monielab/monieshop-analytics/internal/report"
)

func testView(t *testing.T) report.View {
	t.Helper()
	e := metrics.NewEngine()
	s, err := sale.ParseRecord("4,2025-01-01T16:58:53,[726107:5|553776:5],2114.235")
	require.NoError(t, err)
	e.Update(s)
	snap, err := e.Report()
	require.NoError(t, err)
	return report.NewView(snap, "run-1")
}

func doGet(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Engine.ServeHTTP(w, req)
	return w
}

func TestServer_NotReady(t *testing.T) {
	s := New("127.0.0.1:0", "release")

	w := doGet(t, s, "/health")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doGet(t, s, "/v1/metrics")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "report_not_ready")
}

func TestServer_ServesSnapshot(t *testing.T) {
	s := New("127.0.0.1:0", "release")
	s.SetView(testView(t))

	w := doGet(t, s, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	w = doGet(t, s, "/v1/metrics")
	require.Equal(t, http.StatusOK, w.Code)

	var v report.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	require.Equal(t, "run-1", v.RunID)
	require.Equal(t, "726107", v.TopProduct.ProductID)
	require.Equal(t, int64(10), v.PeakVolumeDay.Volume)
}

func TestServer_TextReport(t *testing.T) {
	s := New("127.0.0.1:0", "release")
	view := testView(t)
	s.SetView(view)

	w := doGet(t, s, "/v1/metrics/report")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, view.Text(), w.Body.String())
}
