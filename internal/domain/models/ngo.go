// internal/domain/models/ngo.go
package models

// NGO is an organization volunteers can browse and apply to.
// CauseCI is the folded cause for case-insensitive filtering in the durable
// backend.
type NGO struct {
	ID          int64  `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description" json:"description"`
	Cause       string `bson:"cause" json:"cause"`
	CauseCI     string `bson:"cause_ci,omitempty" json:"-"`
	Location    string `bson:"location" json:"location"`
	Email       string `bson:"email" json:"email"`
	PhoneNumber string `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`
	Logo        string `bson:"logo,omitempty" json:"logo,omitempty"`
}

// NewNGO is the creation input for an NGO.
type NewNGO struct {
	Name        string
	Description string
	Cause       string
	Location    string
	Email       string
	PhoneNumber string
	Website     string
	Logo        string
}

// NGOPatch lists the updatable NGO fields. Nil means untouched.
type NGOPatch struct {
	Name        *string
	Description *string
	Cause       *string
	Location    *string
	Email       *string
	PhoneNumber *string
	Website     *string
	Logo        *string
}
