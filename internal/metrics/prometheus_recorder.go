package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lawtext"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	renders         *prom.CounterVec
	renderDuration  prom.Histogram
	reindexDuration *prom.HistogramVec
	regulations     prom.Gauge
	httpRequests    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg, or on a
// new private registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Regulation renders by outcome",
		}, []string{"outcome"}),
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent loading and rendering a regulation",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}),
		reindexDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "reindex_duration_seconds",
			Help:      "Duration of full library reindex runs",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
		regulations: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "regulations",
			Help:      "Regulations currently in the catalogue",
		}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code",
		}, []string{"route", "status"}),
	}
	reg.MustRegister(pr.renders, pr.renderDuration, pr.reindexDuration, pr.regulations, pr.httpRequests)
	return pr
}

func (p *PrometheusRecorder) ObserveRender(outcome RenderOutcome, d time.Duration) {
	p.renders.WithLabelValues(string(outcome)).Inc()
	p.renderDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveReindex(d time.Duration, success bool) {
	res := "failed"
	if success {
		res = "success"
	}
	p.reindexDuration.WithLabelValues(res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetRegulations(n int) {
	p.regulations.Set(float64(n))
}

func (p *PrometheusRecorder) IncHTTPRequest(route string, status int) {
	p.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
