// internal/app/store/storage/storage.go

// Package storage defines the persistence contract every backend must
// satisfy. Route handlers depend only on the Storage interface; the concrete
// backend (memstore or mongostore) is selected once at startup and injected.
package storage

import (
	"context"
	"errors"

	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Sentinel errors shared by all backends. Absence is a value to check with
// errors.Is, never a reason to panic; only transport failures (backend
// unreachable) surface as other error values.
var (
	// ErrNotFound is returned by Get/Update when no record has the given id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUsername is returned when creating a user whose username is
	// already taken (case-insensitively).
	ErrDuplicateUsername = errors.New("a user with this username already exists")

	// ErrDuplicateEmail is returned when creating a user whose email is
	// already taken (case-insensitively).
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrDuplicateApplication is returned when a volunteer already has an
	// application for the same opportunity.
	ErrDuplicateApplication = errors.New("volunteer has already applied to this opportunity")

	// ErrInvalidStatus is returned when an application patch carries a status
	// outside pending/accepted/rejected.
	ErrInvalidStatus = errors.New("invalid application status")

	// ErrStatusFinal is returned when an application patch tries to change
	// the status of an application that already left pending.
	ErrStatusFinal = errors.New("application status is final")

	// ErrNGONotFound is returned when a write references an NGO id that does
	// not resolve to an existing organization.
	ErrNGONotFound = errors.New("referenced NGO does not exist")

	// ErrOpportunityUnavailable is returned when an application targets an
	// opportunity that does not exist or has been soft-deleted.
	ErrOpportunityUnavailable = errors.New("opportunity does not exist or has been removed")
)

// Storage is the uniform contract over the five persisted entity types.
//
// List results are unordered; neither backend guarantees insertion order.
// Create assigns a fresh integer id (per entity type, starting at 1, never
// reused) and fills server-controlled defaults. Update merges only the fields
// present in the patch and returns the merged record, or ErrNotFound.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, in models.NewUser) (models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
	ListVolunteers(ctx context.Context) ([]models.User, error)
	ListRecruiters(ctx context.Context) ([]models.User, error)
	CountUsers(ctx context.Context) (int64, error)

	// NGOs
	GetNGO(ctx context.Context, id int64) (models.NGO, error)
	ListNGOs(ctx context.Context) ([]models.NGO, error)
	ListNGOsByCause(ctx context.Context, cause string) ([]models.NGO, error)
	CreateNGO(ctx context.Context, in models.NewNGO) (models.NGO, error)
	UpdateNGO(ctx context.Context, id int64, patch models.NGOPatch) (models.NGO, error)
	CountNGOs(ctx context.Context) (int64, error)

	// Opportunities. List queries exclude soft-deleted records; GetOpportunity
	// still returns them for audit.
	GetOpportunity(ctx context.Context, id int64) (models.Opportunity, error)
	ListOpportunities(ctx context.Context) ([]models.Opportunity, error)
	ListOpportunitiesByNGO(ctx context.Context, ngoID int64) ([]models.Opportunity, error)
	ListOpportunitiesByCause(ctx context.Context, cause string) ([]models.Opportunity, error)
	CreateOpportunity(ctx context.Context, in models.NewOpportunity) (models.Opportunity, error)
	UpdateOpportunity(ctx context.Context, id int64, patch models.OpportunityPatch) (models.Opportunity, error)

	// Applications
	GetApplication(ctx context.Context, id int64) (models.Application, error)
	ListApplicationsByVolunteer(ctx context.Context, volunteerID int64) ([]models.Application, error)
	ListApplicationsByNGO(ctx context.Context, ngoID int64) ([]models.Application, error)
	ListApplicationsByOpportunity(ctx context.Context, opportunityID int64) ([]models.Application, error)
	CreateApplication(ctx context.Context, in models.NewApplication) (models.Application, error)
	UpdateApplication(ctx context.Context, id int64, patch models.ApplicationPatch) (models.Application, error)

	// Suggestions
	GetSuggestion(ctx context.Context, id int64) (models.Suggestion, error)
	ListSuggestionsByVolunteer(ctx context.Context, volunteerID int64) ([]models.Suggestion, error)
	ListSuggestionsByNGO(ctx context.Context, ngoID int64) ([]models.Suggestion, error)
	CreateSuggestion(ctx context.Context, in models.NewSuggestion) (models.Suggestion, error)
}
