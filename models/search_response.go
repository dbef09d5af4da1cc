package models

// SearchResponse is the body of a successful gym search.
type SearchResponse struct {
	Results []DisplayGym `json:"results"`
}

// DecoyResponse is served in place of real results to blocked callers.
type DecoyResponse struct {
	Results []DisplayGym `json:"results"`
	Warning string       `json:"warning"`
}

// ErrorResponse is the JSON error body used by every handler.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// FailedSearchResponse is returned when the upstream lookup fails. Results is
// always an empty array so clients can render "no results" and offer a retry.
type FailedSearchResponse struct {
	Error   string       `json:"error"`
	Details string       `json:"details,omitempty"`
	Results []DisplayGym `json:"results"`
}

// ViolationReport is posted by the honeypot bait when it is touched.
type ViolationReport struct {
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}
