package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitenav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	checkDuration prom.Histogram
	checkOutcomes *prom.CounterVec
	issues        *prom.GaugeVec
	documents     prom.Gauge
	triggers      *prom.CounterVec
	publishes     *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.checkDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "check_duration_seconds",
			Help:      "Duration of navigation check runs, discovery included",
			Buckets:   prom.DefBuckets,
		})
		pr.checkOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "check_outcomes_total",
			Help:      "Check runs by outcome",
		}, []string{"outcome"})
		pr.issues = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "issues",
			Help:      "Issues reported by the last check run, by severity",
		}, []string{"severity"})
		pr.documents = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "documents",
			Help:      "Pages in the document set of the last check run",
		})
		pr.triggers = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "check_triggers_total",
			Help:      "Check runs requested, by trigger source",
		}, []string{"source"})
		pr.publishes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "report_publishes_total",
			Help:      "Report publish attempts by result",
		}, []string{"result"})
		reg.MustRegister(pr.checkDuration, pr.checkOutcomes, pr.issues, pr.documents, pr.triggers, pr.publishes)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveCheckDuration(d time.Duration) {
	if p == nil || p.checkDuration == nil {
		return
	}
	p.checkDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCheckOutcome(result ResultLabel) {
	if p == nil || p.checkOutcomes == nil {
		return
	}
	p.checkOutcomes.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) SetIssues(severity string, n int) {
	if p == nil || p.issues == nil {
		return
	}
	p.issues.WithLabelValues(severity).Set(float64(n))
}

func (p *PrometheusRecorder) SetDocuments(n int) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.Set(float64(n))
}

func (p *PrometheusRecorder) IncTrigger(source string) {
	if p == nil || p.triggers == nil {
		return
	}
	p.triggers.WithLabelValues(source).Inc()
}

func (p *PrometheusRecorder) IncPublishResult(success bool) {
	if p == nil || p.publishes == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.publishes.WithLabelValues(res).Inc()
}
