package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	documentUploadsTotal   *prometheus.CounterVec
	uploadRejectedTotal    *prometheus.CounterVec
	pipelineLatencySeconds *prometheus.HistogramVec
	approvalsTotal         prometheus.Counter
	adminRequestsTotal     *prometheus.CounterVec
	adminLatencySeconds    *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used by the verification pipeline.
func RegisterMetrics() {
	registerOnce.Do(func() {
		documentUploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "document_uploads_total",
			Help: "Document uploads processed, by type and verdict outcome.",
		}, []string{"document_type", "outcome"})

		uploadRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "document_upload_rejected_total",
			Help: "Uploads rejected before reaching the AI adapter.",
		}, []string{"reason"})

		pipelineLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "verification_pipeline_latency_seconds",
			Help:    "End-to-end latency of the upload/verify/aggregate pipeline.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		}, []string{"document_type"})

		approvalsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "candidate_approvals_total",
			Help: "Candidates auto-approved after all documents verified.",
		})

		adminRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_requests_total",
			Help: "Total number of admin API requests served.",
		}, []string{"method", "route", "status"})

		adminLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admin_latency_seconds",
			Help:    "Latency distribution for admin API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		prometheus.MustRegister(
			documentUploadsTotal,
			uploadRejectedTotal,
			pipelineLatencySeconds,
			approvalsTotal,
			adminRequestsTotal,
			adminLatencySeconds,
		)
	})
}

// DocumentUploads exposes the counter for processed uploads.
func DocumentUploads() *prometheus.CounterVec {
	RegisterMetrics()
	return documentUploadsTotal
}

// UploadRejected exposes the counter for rejected uploads.
func UploadRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return uploadRejectedTotal
}

// PipelineLatency exposes the pipeline latency histogram.
func PipelineLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return pipelineLatencySeconds
}

// Approvals exposes the counter for candidate auto-approvals.
func Approvals() prometheus.Counter {
	RegisterMetrics()
	return approvalsTotal
}

// AdminRequests exposes the counter for admin requests.
func AdminRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return adminRequestsTotal
}

// AdminLatency exposes the latency histogram for admin requests.
func AdminLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return adminLatencySeconds
}
