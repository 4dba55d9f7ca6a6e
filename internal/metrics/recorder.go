package metrics

import "time"

// RenderOutcome labels a render.
type RenderOutcome string

const (
	RenderOK       RenderOutcome = "ok"
	RenderEmpty    RenderOutcome = "empty"
	RenderPlain    RenderOutcome = "plain"
	RenderNotFound RenderOutcome = "not_found"
	RenderFailed   RenderOutcome = "failed"
)

// Recorder defines the observability hooks. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveRender(outcome RenderOutcome, d time.Duration)
	ObserveReindex(d time.Duration, success bool)
	SetRegulations(n int)
	IncHTTPRequest(route string, status int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRender(RenderOutcome, time.Duration) {}
func (NoopRecorder) ObserveReindex(time.Duration, bool)         {}
func (NoopRecorder) SetRegulations(int)                         {}
func (NoopRecorder) IncHTTPRequest(string, int)                 {}
