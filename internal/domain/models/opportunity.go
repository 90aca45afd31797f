// internal/domain/models/opportunity.go
package models

import "time"

// Opportunity is a volunteering position owned by one NGO.
//
// Deleted is a soft-delete flag: deleted opportunities are excluded from all
// list queries but stay fetchable by id for audit. CreatedAt is set once by
// the store and never changes.
type Opportunity struct {
	ID          int64      `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	NGOID       int64      `bson:"ngo_id" json:"ngoId"`
	Location    string     `bson:"location" json:"location"`
	Remote      bool       `bson:"remote" json:"remote"`
	Skills      []string   `bson:"skills,omitempty" json:"skills,omitempty"`
	Commitment  string     `bson:"commitment" json:"commitment"`
	StartDate   *time.Time `bson:"start_date,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time `bson:"end_date,omitempty" json:"endDate,omitempty"`
	Openings    int        `bson:"openings" json:"openings"`
	Deleted     bool       `bson:"deleted" json:"deleted"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
}

// NewOpportunity is the creation input for an Opportunity. Openings defaults
// to 1 when zero; Remote and Deleted default to false.
type NewOpportunity struct {
	Title       string
	Description string
	NGOID       int64
	Location    string
	Remote      bool
	Skills      []string
	Commitment  string
	StartDate   *time.Time
	EndDate     *time.Time
	Openings    int
}

// OpportunityPatch lists the updatable Opportunity fields. Nil means
// untouched; Skills replaces the whole list when set. Setting Deleted to true
// is how an opportunity is removed — there is no hard delete.
type OpportunityPatch struct {
	Title       *string
	Description *string
	Location    *string
	Remote      *bool
	Skills      []string
	Commitment  *string
	StartDate   *time.Time
	EndDate     *time.Time
	Openings    *int
	Deleted     *bool
}
