package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the service's Prometheus instruments. Register once per
// process; tests pass their own registry.
type Metrics struct {
	SnapshotsTotal      prometheus.Counter
	FeedErrorsTotal     prometheus.Counter
	RemindersDispatched prometheus.Counter
	ReminderErrors      prometheus.Counter
	GigsInSnapshot      prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SnapshotsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gigfort",
			Name:      "feed_snapshots_total",
			Help:      "Number of full gig snapshots delivered to subscribers",
		}),
		FeedErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gigfort",
			Name:      "feed_errors_total",
			Help:      "Number of failed snapshot refreshes",
		}),
		RemindersDispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gigfort",
			Name:      "reminders_dispatched_total",
			Help:      "Number of reminders handed to the notifier",
		}),
		ReminderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gigfort",
			Name:      "reminder_errors_total",
			Help:      "Number of reminder dispatch failures",
		}),
		GigsInSnapshot: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gigfort",
			Name:      "gigs_in_snapshot",
			Help:      "Size of the last delivered gig snapshot",
		}),
	}

	reg.MustRegister(
		m.SnapshotsTotal,
		m.FeedErrorsTotal,
		m.RemindersDispatched,
		m.ReminderErrors,
		m.GigsInSnapshot,
	)
	return m
}
