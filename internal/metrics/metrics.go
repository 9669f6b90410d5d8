package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
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
			Buckets: prometheus.DefBuckets,
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

// Simulation metrics
var (
	DaysSimulated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDaysSimulatedTotal,
			Help: HelpTextDaysSimulatedTotal,
		},
	)

	ActionsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsExecutedTotal,
			Help: HelpTextActionsExecutedTotal,
		},
		[]string{LabelAction},
	)

	ActionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsCompletedTotal,
			Help: HelpTextActionsCompletedTotal,
		},
		[]string{LabelAction},
	)

	Harvests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHarvestsTotal,
			Help: HelpTextHarvestsTotal,
		},
		[]string{LabelCrop},
	)

	HarvestYieldTonnes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHarvestYieldTonnes,
			Help: HelpTextHarvestYieldTonnes,
		},
		[]string{LabelCrop},
	)

	PlayerLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePlayerLevel,
			Help: HelpTextPlayerLevel,
		},
	)
)

// Economy metrics
var (
	MoneyEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneyEarnedTotal,
			Help: HelpTextMoneyEarnedTotal,
		},
	)

	MoneySpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpentTotal,
			Help: HelpTextMoneySpentTotal,
		},
	)

	MarketTrades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMarketTradesTotal,
			Help: HelpTextMarketTradesTotal,
		},
		[]string{LabelDirection, LabelItem},
	)
)

// Infrastructure metrics
var (
	SyncFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncFailuresTotal,
			Help: HelpTextSyncFailuresTotal,
		},
		[]string{LabelStore},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublishedTotal,
			Help: HelpTextEventsPublishedTotal,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)
