package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	pr := NewPrometheusRecorder(nil)

	pr.ObserveRender(RenderOK, 2*time.Millisecond)
	pr.ObserveRender(RenderOK, time.Millisecond)
	pr.ObserveRender(RenderNotFound, time.Millisecond)
	pr.ObserveReindex(time.Second, true)
	pr.SetRegulations(12)
	pr.IncHTTPRequest("/regulations/{id}", 200)

	assert.Equal(t, 2.0, testutil.ToFloat64(pr.renders.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.renders.WithLabelValues("not_found")))
	assert.Equal(t, 12.0, testutil.ToFloat64(pr.regulations))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.httpRequests.WithLabelValues("/regulations/{id}", "200")))

	mfs, err := pr.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_Handler(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetRegulations(3)

	rec := httptest.NewRecorder()
	pr.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "lawtext_regulations 3")
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveRender(RenderOK, time.Second)
	r.ObserveReindex(time.Second, false)
	r.SetRegulations(1)
	r.IncHTTPRequest("/", 404)
}
