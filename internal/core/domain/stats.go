package domain

// Stats summarises the candidate pool for the dashboard.
type Stats struct {
	Total int `json:"totalCandidates"`
	Today int `json:"addedToday"`
}
