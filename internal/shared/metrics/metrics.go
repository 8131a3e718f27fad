package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	planGeneratedTotal atomic.Uint64
	planFailedTotal    atomic.Uint64
	llmFallbackTotal   atomic.Uint64
	exportsTotal       atomic.Uint64
	prunedTotal        atomic.Uint64

	planDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000, 30000})
)

// IncPlanGenerated increments the generated-plans counter.
func IncPlanGenerated() {
	planGeneratedTotal.Add(1)
}

// IncPlanFailed increments the failed-generation counter.
func IncPlanFailed() {
	planFailedTotal.Add(1)
}

// IncLLMFallback counts explanations that fell back to the rule text.
func IncLLMFallback() {
	llmFallbackTotal.Add(1)
}

func IncExport() {
	exportsTotal.Add(1)
}

// AddPruned adds n to the retention counter.
func AddPruned(n int) {
	if n > 0 {
		prunedTotal.Add(uint64(n))
	}
}

// ObservePlanDurationMs records a generation duration in milliseconds.
func ObservePlanDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	planDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "plan_generated_total", "Total plans generated", planGeneratedTotal.Load())
	writeCounter(&buf, "plan_failed_total", "Total plan generations that failed", planFailedTotal.Load())
	writeCounter(&buf, "llm_fallback_total", "Explanations served from rules after an LLM failure", llmFallbackTotal.Load())
	writeCounter(&buf, "plan_exports_total", "Total plan workbooks exported", exportsTotal.Load())
	writeCounter(&buf, "plan_pruned_total", "Plans removed by retention", prunedTotal.Load())
	writeHistogram(&buf, "plan_generation_duration_ms", "Plan generation duration in milliseconds", planDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe counts value in the first bucket whose bound holds it.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// SinceMillis returns the elapsed time since start in fractional milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
