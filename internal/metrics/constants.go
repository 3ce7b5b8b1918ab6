package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameGachaPulls      = "gacha_pulls_total"
	MetricNameGachaDuplicates = "gacha_duplicate_pulls_total"
	MetricNameItemsPurchased  = "items_purchased_total"
	MetricNameCoinsSpent      = "coins_spent_total"
	MetricNameCoinsEarned     = "coins_earned_total"
	MetricNameStepsRecorded   = "steps_recorded_total"
	MetricNameUsersRegistered = "users_registered_total"
	MetricNameFriendRequests  = "friend_requests_total"
	MetricNameDailyResets     = "daily_step_resets_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextGachaPulls      = "Total number of gacha pulls resolved"
	HelpTextGachaDuplicates = "Total number of pulls that landed on an already-owned item"
	HelpTextItemsPurchased  = "Total number of direct shop purchases"
	HelpTextCoinsSpent      = "Total coins debited for pulls and purchases"
	HelpTextCoinsEarned     = "Total coins credited from step conversion"
	HelpTextStepsRecorded   = "Total steps recorded across all users"
	HelpTextUsersRegistered = "Total number of new user registrations"
	HelpTextFriendRequests  = "Total number of friend requests by outcome"
	HelpTextDailyResets     = "Total number of completed daily step counter resets"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelRarity  = "rarity"
	LabelItem    = "item"
	LabelOutcome = "outcome"
)

// Friend request outcomes
const (
	OutcomeSent     = "sent"
	OutcomeAccepted = "accepted"
	OutcomeDeclined = "declined"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
