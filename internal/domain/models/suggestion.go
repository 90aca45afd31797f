// internal/domain/models/suggestion.go
package models

import "time"

// Suggestion is free-form feedback from a volunteer to an NGO. Suggestions
// are write-once: there is no update or delete operation.
type Suggestion struct {
	ID          int64     `bson:"id" json:"id"`
	VolunteerID int64     `bson:"volunteer_id" json:"volunteerId"`
	NGOID       int64     `bson:"ngo_id" json:"ngoId"`
	Content     string    `bson:"content" json:"content"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// NewSuggestion is the creation input for a Suggestion.
type NewSuggestion struct {
	VolunteerID int64
	NGOID       int64
	Content     string
}
