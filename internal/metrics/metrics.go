package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance", Name: "http_requests_total", Help: "HTTP requests by route and status",
	}, []string{"route", "status"})
	StoreCallSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "attendance", Name: "sheet_call_seconds", Help: "Row store call latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(RequestsTotal, StoreCallSeconds)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveRequest(route string, status int) {
	RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func ObserveStoreCall(op string, d time.Duration) {
	StoreCallSeconds.WithLabelValues(op).Observe(d.Seconds())
}
