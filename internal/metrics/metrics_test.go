package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestNewCollector_DuplicateRegistrationPanics は同一レジストリへの二重登録がpanicすることを検証する。
func TestNewCollector_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewCollector(reg)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	_ = NewCollector(reg)
}

// TestRecordLogin_CountsByResult はログイン結果がラベル別に集計されることを検証する。
func TestRecordLogin_CountsByResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin(ResultSuccess)
	c.RecordLogin(ResultSuccess)
	c.RecordLogin("invalid_credentials")

	if got := testutil.ToFloat64(c.logins.WithLabelValues(ResultSuccess)); got != 2 {
		t.Errorf("logins{result=success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.logins.WithLabelValues("invalid_credentials")); got != 1 {
		t.Errorf("logins{result=invalid_credentials} = %v, want 1", got)
	}
}

// TestRecordRegistration_IncrementsCounter はアカウント登録カウンタが増加することを検証する。
func TestRecordRegistration_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRegistration("duplicate_email")

	if got := testutil.ToFloat64(c.registrations.WithLabelValues("duplicate_email")); got != 1 {
		t.Errorf("registrations{result=duplicate_email} = %v, want 1", got)
	}
}

// TestRecordLogout_IncrementsCounter はログアウトカウンタが増加することを検証する。
func TestRecordLogout_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogout("session_not_found")

	if got := testutil.ToFloat64(c.logouts.WithLabelValues("session_not_found")); got != 1 {
		t.Errorf("logouts{result=session_not_found} = %v, want 1", got)
	}
}

// TestRecordHTTPStatus_LabelsByCode はHTTPステータスがコード別に記録されることを検証する。
func TestRecordHTTPStatus_LabelsByCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(404)
	c.RecordHTTPStatus(404)

	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("200")); got != 1 {
		t.Errorf("http_status{200} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("404")); got != 2 {
		t.Errorf("http_status{404} = %v, want 2", got)
	}
}

// TestRecordRequestLatency_ObservesHistogram はレイテンシがヒストグラムに記録されることを検証する。
func TestRecordRequestLatency_ObservesHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequestLatency(150 * time.Millisecond)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	found := false
	for _, mf := range metrics {
		if mf.GetName() == "accountapi_http_request_duration_seconds" {
			found = true
			h := mf.GetMetric()[0].GetHistogram()
			if h.GetSampleCount() != 1 {
				t.Errorf("sample count = %d, want 1", h.GetSampleCount())
			}
			if h.GetSampleSum() < 0.149 || h.GetSampleSum() > 0.151 {
				t.Errorf("sample sum = %v, want ~0.15", h.GetSampleSum())
			}
		}
	}
	if !found {
		t.Error("accountapi_http_request_duration_seconds metric not found")
	}
}

// TestRegisterActiveSessions_ReportsCurrentCount はゲージが収集時点の値を返すことを検証する。
func TestRegisterActiveSessions_ReportsCurrentCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	n := 3
	RegisterActiveSessions(reg, func() int { return n })

	if got, err := testutil.GatherAndCount(reg, "accountapi_active_sessions"); err != nil || got != 1 {
		t.Fatalf("GatherAndCount = %d, %v; want 1, nil", got, err)
	}

	expected := `
# HELP accountapi_active_sessions メモリ上のアクティブセッション数
# TYPE accountapi_active_sessions gauge
accountapi_active_sessions 3
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "accountapi_active_sessions"); err != nil {
		t.Errorf("unexpected gauge output: %v", err)
	}

	n = 5
	expected = strings.Replace(expected, "accountapi_active_sessions 3", "accountapi_active_sessions 5", 1)
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "accountapi_active_sessions"); err != nil {
		t.Errorf("gauge should reflect updated count: %v", err)
	}
}

// TestHandler_ServesMetrics はハンドラーがメトリクスを返すことを検証する。
func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLogin(ResultSuccess)

	handler := Handler(reg)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "accountapi_logins_total") {
		t.Error("response should contain accountapi_logins_total metric")
	}
}
