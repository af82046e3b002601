package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	applicationsSubmittedTotal atomic.Uint64
	applicationsInvalidTotal   atomic.Uint64
	applicationsRejectedTotal  atomic.Uint64
	stageTransitionsTotal      atomic.Uint64
	uploadsStoredTotal         atomic.Uint64

	applicationScore = newHistogram([]float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100})
)

// IncApplicationSubmitted counts a stored application.
func IncApplicationSubmitted() {
	applicationsSubmittedTotal.Add(1)
}

// IncApplicationInvalid counts a submission refused by field validation.
func IncApplicationInvalid() {
	applicationsInvalidTotal.Add(1)
}

// IncApplicationAutoRejected counts a submission moved straight to a rejected stage.
func IncApplicationAutoRejected() {
	applicationsRejectedTotal.Add(1)
}

// IncStageTransition counts a pipeline move.
func IncStageTransition() {
	stageTransitionsTotal.Add(1)
}

// IncUploadStored counts a stored candidate file.
func IncUploadStored() {
	uploadsStoredTotal.Add(1)
}

// ObserveScore records an application score percentage.
func ObserveScore(percent int) {
	if percent < 0 {
		percent = 0
	}
	applicationScore.Observe(float64(percent))
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
	writeCounter(&buf, "ats_applications_submitted_total", "Applications stored through intake", applicationsSubmittedTotal.Load())
	writeCounter(&buf, "ats_applications_invalid_total", "Submissions refused by field validation", applicationsInvalidTotal.Load())
	writeCounter(&buf, "ats_applications_auto_rejected_total", "Applications moved to a rejected stage on intake", applicationsRejectedTotal.Load())
	writeCounter(&buf, "ats_stage_transitions_total", "Application stage transitions", stageTransitionsTotal.Load())
	writeCounter(&buf, "ats_uploads_stored_total", "Candidate files stored", uploadsStoredTotal.Load())
	writeHistogram(&buf, "ats_application_score_percent", "Application score percentage", applicationScore.Snapshot())
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

// Observe adds value to the first bucket whose bound covers it.
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
