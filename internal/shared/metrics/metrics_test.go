package metrics

import (
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 50, 100})
	h.Observe(5)
	h.Observe(40)
	h.Observe(84)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("expected 3 observations, got %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 || snap.counts[2] != 1 {
		t.Fatalf("unexpected bucket counts %v", snap.counts)
	}
}

func TestRenderIncludesCounters(t *testing.T) {
	IncApplicationSubmitted()
	ObserveScore(84)

	out := Render()
	for _, want := range []string{
		"# TYPE ats_applications_submitted_total counter",
		"ats_application_score_percent_bucket{le=\"90\"}",
		"ats_application_score_percent_bucket{le=\"+Inf\"}",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
