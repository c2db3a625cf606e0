package models

import "time"

// AnalysisRecord is a stored summary of a completed analysis. It never
// carries the image or the raw model text.
type AnalysisRecord struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Provider  string    `json:"provider"`
	Status    bool      `json:"status"`
	Message   string    `json:"message"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}
