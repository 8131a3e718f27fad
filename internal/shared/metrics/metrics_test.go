package metrics

import (
	"strings"
	"testing"
)

func TestHistogramCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	snap := h.Snapshot()
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("each observation lands in one bucket, got %v", snap.counts)
	}
}

func TestRenderIncludesPlanCounters(t *testing.T) {
	IncPlanGenerated()
	IncLLMFallback()
	AddPruned(3)
	ObservePlanDurationMs(12.5)

	out := Render()
	for _, want := range []string{
		"# TYPE plan_generated_total counter",
		"llm_fallback_total ",
		"plan_pruned_total ",
		`plan_generation_duration_ms_bucket{le="+Inf"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
