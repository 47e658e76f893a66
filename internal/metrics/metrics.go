package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancies_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vacancies_http_request_duration_seconds",
			Help:    "Duration of handled HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	JobsCreatedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vacancies_jobs_created_total",
			Help: "Total number of created job postings.",
		},
	)
	ApplicationsSubmittedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vacancies_applications_submitted_total",
			Help: "Total number of accepted applications.",
		},
	)
	ApplicationsRejectedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vacancies_applications_rejected_total",
			Help: "Total number of rejected applications.",
		},
		[]string{"reason"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ErrorsCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(JobsCreatedCounter)
		prometheus.MustRegister(ApplicationsSubmittedCounter)
		prometheus.MustRegister(ApplicationsRejectedCounter)
	})
}

func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}
