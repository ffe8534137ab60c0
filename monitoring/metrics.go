package monitoring

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	formSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Form submissions by outcome",
		},
		[]string{"outcome"},
	)

	studentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "student_add_requests_total",
			Help: "Add-student requests received by status code",
		},
		[]string{"status"},
	)

	storedStudents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stored_students",
			Help: "Student records currently held",
		},
	)
)

// Submission outcomes.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
)

func TrackSubmission(outcome string) {
	formSubmissions.WithLabelValues(outcome).Inc()
}

func TrackStudentRequest(status int) {
	studentRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}

func SetStoredStudents(n int) {
	storedStudents.Set(float64(n))
}
