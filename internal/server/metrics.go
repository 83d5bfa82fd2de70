package server

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/pivisor/internal/telemetry"
)

// Metrics holds the Prometheus instruments exported by the server.
//
// Two families live here: the telemetry gauges, refreshed once per
// second from the sampler, and the HTTP instruments tracking the
// exporter's own traffic.
type Metrics struct {
	cpuPercent  prometheus.Gauge
	memPercent  prometheus.Gauge
	diskPercent prometheus.Gauge
	tempCelsius prometheus.Gauge
	tempOK      prometheus.Gauge
	downKBps    prometheus.Gauge
	upKBps      prometheus.Gauge

	requestsTotal  prometheus.Counter
	activeRequests prometheus.Gauge

	handler http.Handler
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

// NewMetrics returns the process-wide Metrics instance.
//
// Prometheus collectors are global singletons; registering the same
// collector twice panics, so construction is guarded by sync.Once and
// every caller shares one instance.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			cpuPercent: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pivisor_cpu_percent",
				Help: "System-wide CPU utilization percentage.",
			}),
			memPercent: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pivisor_mem_percent",
				Help: "Physical memory utilization percentage.",
			}),
			diskPercent: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pivisor_disk_percent",
				Help: "Root filesystem utilization percentage.",
			}),
			tempCelsius: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pivisor_cpu_temp_celsius",
				Help: "CPU temperature in degrees Celsius.",
			}),
			tempOK: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pivisor_cpu_temp_available",
				Help: "1 when a temperature reading succeeded this tick, 0 otherwise.",
			}),
			downKBps: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pivisor_net_down_kbps",
				Help: "Aggregate download throughput in KB/s.",
			}),
			upKBps: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pivisor_net_up_kbps",
				Help: "Aggregate upload throughput in KB/s.",
			}),
			requestsTotal: promauto.NewCounter(prometheus.CounterOpts{
				Name: "pivisor_requests_total",
				Help: "Total number of HTTP requests served.",
			}),
			activeRequests: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pivisor_active_requests",
				Help: "Number of HTTP requests currently in flight.",
			}),
			handler: promhttp.Handler(),
		}
	})
	return metricsInstance
}

// Record publishes a telemetry snapshot to the gauges.
//
// When the temperature probe chain failed for this tick the Celsius
// gauge keeps its previous value and only the availability gauge is
// cleared, so scrapes never see the zero sentinel as a reading.
func (m *Metrics) Record(snap telemetry.Snapshot) {
	m.cpuPercent.Set(snap.CPUPercent)
	m.memPercent.Set(snap.MemPercent)
	m.diskPercent.Set(snap.DiskPercent)
	m.downKBps.Set(snap.DownKBps)
	m.upKBps.Set(snap.UpKBps)
	if snap.TempOK {
		m.tempCelsius.Set(snap.TempCelsius)
		m.tempOK.Set(1)
	} else {
		m.tempOK.Set(0)
	}
}

// IncrementActiveRequests marks the start of an in-flight request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests marks the end of an in-flight request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
