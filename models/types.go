package models

// District status constants
const (
	StatusActive = "active"
	StatusPaused = "paused"
)

// Stats scope constants
const (
	ScopeDistrict = "district"
	ScopeOverall  = "overall"
)

// Request types

type RecordCallRequest struct {
	DistrictID string `json:"district_id"`
}

// Response types

type CreateSessionResponse struct {
	SessionID  string `json:"session_id"`
	SessionKey string `json:"session_key"`
}

type RecordCallResponse struct {
	DistrictID string `json:"district_id"`
	CalledAt   int64  `json:"called_at"`
}

type CallHistoryResponse struct {
	SessionID string           `json:"session_id"`
	Calls     map[string]int64 `json:"calls"`
}

// ConfirmationResponse is returned by the thank-you endpoint.
// EligibleCallTargets is null when recommendations could not be computed and
// an empty array when nothing is worth calling next.
type ConfirmationResponse struct {
	District            District               `json:"district"`
	HomeDistrictNumber  string                 `json:"home_district_number,omitempty"`
	TrackingToken       string                 `json:"tracking_token,omitempty"`
	CallerID            string                 `json:"caller_id,omitempty"`
	EligibleCallTargets []EligibilityCandidate `json:"eligible_call_targets"`
	Stats               *StatsView             `json:"stats"`
	StatsError          string                 `json:"stats_error,omitempty"`
}

// StatsView carries every available chart so a client can switch scopes
// without another request.
type StatsView struct {
	ActiveScope string           `json:"active_scope"`
	Charts      map[string]Chart `json:"charts"`
}

// Domain types

type District struct {
	ID     string `json:"district_id"`
	State  string `json:"state"`
	Number int    `json:"number"`
	Status string `json:"status"`
}

type EligibilityCandidate struct {
	District
	AlreadyCalled bool `json:"already_called"`
}

// CallStats maps a YYYY-MM key to the number of calls made that month.
// Malformed lists months whose count was not an integer.
type CallStats struct {
	CallsByMonth map[string]int `json:"calls_by_month"`
	Malformed    []string       `json:"-"`
}

type ChartSegment struct {
	MonthKey     string  `json:"month_key"`
	MonthDisplay string  `json:"month_display"`
	NumCalls     int     `json:"num_calls"`
	Magnitude    float64 `json:"magnitude"`
	Color        string  `json:"color"`
}

type Chart struct {
	Segments     []ChartSegment `json:"segments"`
	Total        int            `json:"total"`
	TotalDisplay string         `json:"total_display"`
	MaxCalls     int            `json:"max_calls"`
	Skipped      []string       `json:"skipped,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
