package models

import "time"

type HistoryGetResponse struct {
	Entries []HistoryEntry `json:"entries"`
}

type HistoryEntry struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	ResultCount int64     `json:"resultCount"`
	DurationMs  int64     `json:"durationMs"`
	CreatedAt   time.Time `json:"createdAt"`
}
