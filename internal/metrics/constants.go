package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal     = "farmsim_http_requests_total"
	MetricNameHTTPRequestDuration   = "farmsim_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight  = "farmsim_http_requests_in_flight"
	MetricNameDaysSimulatedTotal    = "farmsim_days_simulated_total"
	MetricNameActionsExecutedTotal  = "farmsim_actions_executed_total"
	MetricNameActionsCompletedTotal = "farmsim_actions_completed_total"
	MetricNameHarvestsTotal         = "farmsim_harvests_total"
	MetricNameHarvestYieldTonnes    = "farmsim_harvest_yield_tonnes_total"
	MetricNameMoneyEarnedTotal      = "farmsim_money_earned_total"
	MetricNameMoneySpentTotal       = "farmsim_money_spent_total"
	MetricNameMarketTradesTotal     = "farmsim_market_trades_total"
	MetricNamePlayerLevel           = "farmsim_player_level"
	MetricNameSyncFailuresTotal     = "farmsim_sync_failures_total"
	MetricNameEventsPublishedTotal  = "farmsim_events_published_total"
	MetricNameEventHandlerErrors    = "farmsim_event_handler_errors_total"
)

// Help text for metrics
const (
	HelpTextHTTPRequestsTotal     = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration   = "HTTP request duration in seconds"
	HelpTextHTTPRequestsInFlight  = "Number of HTTP requests currently being processed"
	HelpTextDaysSimulatedTotal    = "Total number of simulated days completed"
	HelpTextActionsExecutedTotal  = "Total number of farm actions started, by action"
	HelpTextActionsCompletedTotal = "Total number of farm actions resolved, by action"
	HelpTextHarvestsTotal         = "Total number of harvests, by crop"
	HelpTextHarvestYieldTonnes    = "Total harvested yield in tonnes, by crop"
	HelpTextMoneyEarnedTotal      = "Total money earned from sales and harvests"
	HelpTextMoneySpentTotal       = "Total money spent on purchases and actions"
	HelpTextMarketTradesTotal     = "Total number of market trades, by direction and item"
	HelpTextPlayerLevel           = "Current player level"
	HelpTextSyncFailuresTotal     = "Total number of failed state persistence attempts"
	HelpTextEventsPublishedTotal  = "Total number of events published, by type"
	HelpTextEventHandlerErrors    = "Total number of event handler errors, by type"
)

// Label names
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelAction    = "action"
	LabelCrop      = "crop"
	LabelDirection = "direction"
	LabelItem      = "item"
	LabelType      = "type"
	LabelStore     = "store"
)

// Log messages
const (
	LogMsgEventPayloadMismatch = "event payload did not match expected type"
	LogMsgMetricsRecorded      = "metrics recorded for event"
)
