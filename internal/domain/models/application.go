// internal/domain/models/application.go
package models

import "time"

// Application statuses. Pending is the only non-terminal state.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Application links a volunteer to an opportunity. NGOID is a denormalized
// copy of the opportunity's owner, captured by the store at create time so
// recruiters can filter by organization without a join.
type Application struct {
	ID            int64     `bson:"id" json:"id"`
	VolunteerID   int64     `bson:"volunteer_id" json:"volunteerId"`
	OpportunityID int64     `bson:"opportunity_id" json:"opportunityId"`
	NGOID         int64     `bson:"ngo_id" json:"ngoId"`
	Status        string    `bson:"status" json:"status"` // pending | accepted | rejected
	Message       string    `bson:"message,omitempty" json:"message,omitempty"`
	Resume        string    `bson:"resume,omitempty" json:"resume,omitempty"` // URL or opaque blob
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

// NewApplication is the creation input for an Application. The store derives
// NGOID from the opportunity and defaults Status to pending.
type NewApplication struct {
	VolunteerID   int64
	OpportunityID int64
	Message       string
	Resume        string
}

// ApplicationPatch lists the updatable Application fields. Status may only
// move out of pending, and only to accepted or rejected.
type ApplicationPatch struct {
	Status  *string
	Message *string
	Resume  *string
}
