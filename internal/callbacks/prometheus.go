package callbacks

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arvindmuralie77/gradsflow/internal/tracker"
)

// MetricsExporter publishes the tracker's epoch aggregates as Prometheus
// gauges on a caller-supplied registry, refreshed at every epoch end. The
// caller owns serving the registry (promhttp or a push gateway).
type MetricsExporter struct {
	Base
	trainer Trainer

	epoch   prometheus.Gauge
	loss    *prometheus.GaugeVec
	metrics *prometheus.GaugeVec
}

// NewMetricsExporter creates the exporter and registers its collectors on reg.
func NewMetricsExporter(trainer Trainer, reg prometheus.Registerer) (*MetricsExporter, error) {
	c := &MetricsExporter{
		trainer: trainer,
		epoch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gradsflow",
			Name:      "current_epoch",
			Help:      "Epoch currently being trained.",
		}),
		loss: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gradsflow",
			Name:      "loss_avg",
			Help:      "Epoch-average loss per mode.",
		}, []string{"mode"}),
		metrics: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "gradsflow",
			Name:      "metric_avg",
			Help:      "Epoch-average metric value per mode and metric.",
		}, []string{"mode", "metric"}),
	}

	for _, col := range []prometheus.Collector{c.epoch, c.loss, c.metrics} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *MetricsExporter) OnEpochEnd() error {
	t := c.trainer.Tracker()

	c.epoch.Set(float64(t.CurrentEpoch))
	c.loss.WithLabelValues(tracker.ModeTrain).Set(t.TrainLoss())
	if t.Val.Loss.Computed {
		c.loss.WithLabelValues(tracker.ModeVal).Set(t.ValLoss())
	}

	for name, avg := range t.TrainMetrics() {
		c.metrics.WithLabelValues(tracker.ModeTrain, name).Set(avg)
	}
	for name, avg := range t.ValMetrics() {
		c.metrics.WithLabelValues(tracker.ModeVal, name).Set(avg)
	}
	return nil
}
