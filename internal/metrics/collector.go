package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the counters of one conversion run on a private registry.
// Collector 在独立的注册表上保存一次转换运行的计数器。
type Collector struct {
	Registry *prometheus.Registry

	LinesRead      prometheus.Counter
	LinesConverted prometheus.Counter
	LineErrors     *prometheus.CounterVec
	LastEpoch      prometheus.Gauge
	RunDuration    prometheus.Gauge
}

// New creates a Collector with all series registered.
// New 创建并注册所有指标。
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		Registry: reg,
		LinesRead: factory.NewCounter(prometheus.CounterOpts{
			Name: "epochline_lines_read_total",
			Help: "Input lines read",
		}),
		LinesConverted: factory.NewCounter(prometheus.CounterOpts{
			Name: "epochline_lines_converted_total",
			Help: "Lines converted and written to stdout",
		}),
		LineErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "epochline_line_errors_total",
			Help: "Lines that aborted the run, by reason",
		}, []string{"reason"}),
		LastEpoch: factory.NewGauge(prometheus.GaugeOpts{
			Name: "epochline_last_epoch_seconds",
			Help: "Epoch timestamp of the last converted line",
		}),
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "epochline_run_duration_seconds",
			Help: "Wall time of the conversion run",
		}),
	}
}

// ObserveConverted records one written line.
func (c *Collector) ObserveConverted(epoch int64) {
	c.LinesConverted.Inc()
	c.LastEpoch.Set(float64(epoch))
}

// ObserveError records the line that stopped the run.
func (c *Collector) ObserveError(reason string) {
	if reason == "" {
		return
	}
	c.LineErrors.WithLabelValues(reason).Inc()
}

// ObserveDuration records the run wall time.
func (c *Collector) ObserveDuration(d time.Duration) {
	c.RunDuration.Set(d.Seconds())
}

// WriteTextfile writes all series in the text exposition format, for the
// node_exporter textfile collector. The file is replaced atomically.
// WriteTextfile 以文本格式写出所有指标，供 node_exporter textfile 收集器使用。
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.Registry)
}
