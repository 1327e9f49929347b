package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector records pipeline outcomes as Prometheus metrics.
type Collector struct {
	Fetches     *prometheus.CounterVec
	Writes      *prometheus.CounterVec
	Reports     *prometheus.CounterVec
	RunDuration *prometheus.HistogramVec
	RunFailures *prometheus.GaugeVec
}

// NewCollector creates the pipeline metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		Fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pogo_weather_fetches_total",
				Help: "Forecast fetch attempts by location and outcome",
			},
			[]string{"location_id", "outcome"},
		),
		Writes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pogo_weather_record_writes_total",
				Help: "Forecast record writes by location and outcome",
			},
			[]string{"location_id", "outcome"},
		),
		Reports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pogo_weather_reports_total",
				Help: "Forecast reports by location and outcome",
			},
			[]string{"location_id", "outcome"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pogo_weather_run_duration_seconds",
				Help:    "Duration of pipeline invocations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"pipeline"},
		),
		RunFailures: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pogo_weather_run_failed_locations",
				Help: "Locations that failed in the most recent invocation",
			},
			[]string{"pipeline"},
		),
	}
	if reg != nil {
		reg.MustRegister(c.Fetches, c.Writes, c.Reports, c.RunDuration, c.RunFailures)
	}
	return c
}

func (c *Collector) ObserveFetch(locationID, outcome string) {
	c.Fetches.WithLabelValues(locationID, outcome).Inc()
}

func (c *Collector) ObserveWrite(locationID, outcome string) {
	c.Writes.WithLabelValues(locationID, outcome).Inc()
}

func (c *Collector) ObserveReport(locationID, outcome string) {
	c.Reports.WithLabelValues(locationID, outcome).Inc()
}

func (c *Collector) ObserveRun(pipeline string, duration time.Duration, failed int) {
	c.RunDuration.WithLabelValues(pipeline).Observe(duration.Seconds())
	c.RunFailures.WithLabelValues(pipeline).Set(float64(failed))
}
