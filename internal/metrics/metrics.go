package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AttendanceWrites = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schoolattend", Name: "attendance_records_written_total", Help: "Attendance records inserted or overwritten",
	})
	SessionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schoolattend", Name: "sessions_created_total", Help: "Login sessions created",
	})
	AuthFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "schoolattend", Name: "auth_failures_total", Help: "Requests rejected with 401 or 403",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "schoolattend", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(AttendanceWrites, SessionsCreated, AuthFailures, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
