package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	GachaPulls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGachaPulls,
			Help: HelpTextGachaPulls,
		},
		[]string{LabelRarity},
	)

	GachaDuplicates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGachaDuplicates,
			Help: HelpTextGachaDuplicates,
		},
	)

	ItemsPurchased = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsPurchased,
			Help: HelpTextItemsPurchased,
		},
		[]string{LabelItem},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
	)

	CoinsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsEarned,
			Help: HelpTextCoinsEarned,
		},
	)

	StepsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStepsRecorded,
			Help: HelpTextStepsRecorded,
		},
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameUsersRegistered,
			Help: HelpTextUsersRegistered,
		},
	)

	FriendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFriendRequests,
			Help: HelpTextFriendRequests,
		},
		[]string{LabelOutcome},
	)

	DailyResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyResets,
			Help: HelpTextDailyResets,
		},
	)
)
