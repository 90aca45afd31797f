// internal/domain/models/user.go
package models

// User types.
const (
	UserTypeVolunteer = "volunteer"
	UserTypeRecruiter = "recruiter"
)

// User represents volunteers and recruiters.
//
// The surrogate ID is an integer assigned by the owning store at create time
// and stored in the "id" field, never in Mongo's "_id". Username and email are
// unique case-insensitively; the *_ci shadow fields hold the folded forms the
// durable backend indexes and queries (the volatile backend ignores them).
//
// Password holds whatever opaque credential the auth layer hands us — the
// store never hashes or verifies it.
type User struct {
	ID          int64    `bson:"id" json:"id"`
	Username    string   `bson:"username" json:"username"`
	UsernameCI  string   `bson:"username_ci,omitempty" json:"-"`
	Password    string   `bson:"password" json:"-"`
	Email       string   `bson:"email" json:"email"`
	EmailCI     string   `bson:"email_ci,omitempty" json:"-"`
	FullName    string   `bson:"full_name" json:"fullName"`
	UserType    string   `bson:"user_type" json:"userType"` // volunteer | recruiter
	PhoneNumber string   `bson:"phone_number,omitempty" json:"phoneNumber,omitempty"`
	Location    string   `bson:"location,omitempty" json:"location,omitempty"`
	Bio         string   `bson:"bio,omitempty" json:"bio,omitempty"`
	Interests   []string `bson:"interests,omitempty" json:"interests,omitempty"`
	NGOID       *int64   `bson:"ngo_id,omitempty" json:"ngoId,omitempty"` // recruiters only
}

// NewUser is the creation input for a User. The store assigns the ID.
type NewUser struct {
	Username    string
	Password    string
	Email       string
	FullName    string
	UserType    string
	PhoneNumber string
	Location    string
	Bio         string
	Interests   []string
	NGOID       *int64
}

// UserPatch lists the fields a profile update may touch. Nil fields are left
// untouched; there is no way to unset a field back to absent. Identity and
// credential fields (id, username, email, password, user type) are not
// patchable at all — the allow-list lives here instead of in every caller.
type UserPatch struct {
	FullName    *string
	PhoneNumber *string
	Location    *string
	Bio         *string
	Interests   []string
	NGOID       *int64
}
