package models

type SummaryPostRequest struct {
	Query string `json:"query"`
}

type SummaryPostResponse struct {
	// Summary is empty if no completion service is configured.
	Summary string         `json:"summary" yaml:"summary"`
	Results []SearchResult `json:"results" yaml:"results"`
}
