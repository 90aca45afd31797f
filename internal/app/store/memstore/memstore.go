// internal/app/store/memstore/memstore.go

// Package memstore is the volatile Storage backend: one identity-keyed map
// per entity type held in process memory, plus a monotonically increasing
// counter per type. Intended for development and tests; all data is lost on
// process exit.
package memstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Compile-time contract assertion.
var _ storage.Storage = (*Store)(nil)

// Store is an in-memory Storage implementation. The mutex makes every
// operation atomic under Go's parallel runtime; counters are only ever
// incremented, never reused or reset, even after a soft delete.
type Store struct {
	mu sync.RWMutex

	users         map[int64]models.User
	ngos          map[int64]models.NGO
	opportunities map[int64]models.Opportunity
	applications  map[int64]models.Application
	suggestions   map[int64]models.Suggestion

	nextUserID        int64
	nextNGOID         int64
	nextOpportunityID int64
	nextApplicationID int64
	nextSuggestionID  int64
}

// New returns an empty in-memory store. Callers inject it wherever a
// storage.Storage is needed; it is never a package-level singleton.
func New() *Store {
	return &Store{
		users:             make(map[int64]models.User),
		ngos:              make(map[int64]models.NGO),
		opportunities:     make(map[int64]models.Opportunity),
		applications:      make(map[int64]models.Application),
		suggestions:       make(map[int64]models.Suggestion),
		nextUserID:        1,
		nextNGOID:         1,
		nextOpportunityID: 1,
		nextApplicationID: 1,
		nextSuggestionID:  1,
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

/* ------------------------------- Users ---------------------------------- */

func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) CreateUser(ctx context.Context, in models.NewUser) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, in.Username) {
			return models.User{}, storage.ErrDuplicateUsername
		}
		if strings.EqualFold(u.Email, in.Email) {
			return models.User{}, storage.ErrDuplicateEmail
		}
	}
	if in.NGOID != nil {
		if _, ok := s.ngos[*in.NGOID]; !ok {
			return models.User{}, storage.ErrNGONotFound
		}
	}

	u := models.User{
		ID:          s.nextUserID,
		Username:    in.Username,
		Password:    in.Password,
		Email:       in.Email,
		FullName:    in.FullName,
		UserType:    in.UserType,
		PhoneNumber: in.PhoneNumber,
		Location:    in.Location,
		Bio:         in.Bio,
		Interests:   cloneStrings(in.Interests),
		NGOID:       in.NGOID,
	}
	s.nextUserID++
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	if patch.NGOID != nil {
		if _, ok := s.ngos[*patch.NGOID]; !ok {
			return models.User{}, storage.ErrNGONotFound
		}
		u.NGOID = patch.NGOID
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Location != nil {
		u.Location = *patch.Location
	}
	if patch.Bio != nil {
		u.Bio = *patch.Bio
	}
	if patch.Interests != nil {
		u.Interests = cloneStrings(patch.Interests)
	}
	s.users[id] = u
	return u, nil
}

func (s *Store) ListVolunteers(ctx context.Context) ([]models.User, error) {
	return s.listUsersByType(models.UserTypeVolunteer), nil
}

func (s *Store) ListRecruiters(ctx context.Context) ([]models.User, error) {
	return s.listUsersByType(models.UserTypeRecruiter), nil
}

func (s *Store) listUsersByType(userType string) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.User{}
	for _, u := range s.users {
		if u.UserType == userType {
			out = append(out, u)
		}
	}
	return out
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

/* -------------------------------- NGOs ----------------------------------- */

func (s *Store) GetNGO(ctx context.Context, id int64) (models.NGO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.ngos[id]
	if !ok {
		return models.NGO{}, storage.ErrNotFound
	}
	return n, nil
}

func (s *Store) ListNGOs(ctx context.Context) ([]models.NGO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.NGO{}
	for _, n := range s.ngos {
		out = append(out, n)
	}
	return out, nil
}

func (s *Store) ListNGOsByCause(ctx context.Context, cause string) ([]models.NGO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.NGO{}
	for _, n := range s.ngos {
		if strings.EqualFold(n.Cause, cause) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *Store) CreateNGO(ctx context.Context, in models.NewNGO) (models.NGO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := models.NGO{
		ID:          s.nextNGOID,
		Name:        in.Name,
		Description: in.Description,
		Cause:       in.Cause,
		Location:    in.Location,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Website:     in.Website,
		Logo:        in.Logo,
	}
	s.nextNGOID++
	s.ngos[n.ID] = n
	return n, nil
}

func (s *Store) UpdateNGO(ctx context.Context, id int64, patch models.NGOPatch) (models.NGO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.ngos[id]
	if !ok {
		return models.NGO{}, storage.ErrNotFound
	}
	if patch.Name != nil {
		n.Name = *patch.Name
	}
	if patch.Description != nil {
		n.Description = *patch.Description
	}
	if patch.Cause != nil {
		n.Cause = *patch.Cause
	}
	if patch.Location != nil {
		n.Location = *patch.Location
	}
	if patch.Email != nil {
		n.Email = *patch.Email
	}
	if patch.PhoneNumber != nil {
		n.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Website != nil {
		n.Website = *patch.Website
	}
	if patch.Logo != nil {
		n.Logo = *patch.Logo
	}
	s.ngos[id] = n
	return n, nil
}

func (s *Store) CountNGOs(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.ngos)), nil
}

/* ---------------------------- Opportunities ------------------------------ */

func (s *Store) GetOpportunity(ctx context.Context, id int64) (models.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.opportunities[id]
	if !ok {
		return models.Opportunity{}, storage.ErrNotFound
	}
	return o, nil
}

func (s *Store) ListOpportunities(ctx context.Context) ([]models.Opportunity, error) {
	return s.listOpportunities(func(models.Opportunity) bool { return true }), nil
}

func (s *Store) ListOpportunitiesByNGO(ctx context.Context, ngoID int64) ([]models.Opportunity, error) {
	return s.listOpportunities(func(o models.Opportunity) bool { return o.NGOID == ngoID }), nil
}

func (s *Store) ListOpportunitiesByCause(ctx context.Context, cause string) ([]models.Opportunity, error) {
	s.mu.RLock()
	ngoIDs := make(map[int64]bool)
	for _, n := range s.ngos {
		if strings.EqualFold(n.Cause, cause) {
			ngoIDs[n.ID] = true
		}
	}
	s.mu.RUnlock()
	return s.listOpportunities(func(o models.Opportunity) bool { return ngoIDs[o.NGOID] }), nil
}

// listOpportunities scans all opportunities, always excluding soft-deleted
// records on top of the caller's predicate.
func (s *Store) listOpportunities(keep func(models.Opportunity) bool) []models.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Opportunity{}
	for _, o := range s.opportunities {
		if o.Deleted {
			continue
		}
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) CreateOpportunity(ctx context.Context, in models.NewOpportunity) (models.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ngos[in.NGOID]; !ok {
		return models.Opportunity{}, storage.ErrNGONotFound
	}

	openings := in.Openings
	if openings == 0 {
		openings = 1
	}
	o := models.Opportunity{
		ID:          s.nextOpportunityID,
		Title:       in.Title,
		Description: in.Description,
		NGOID:       in.NGOID,
		Location:    in.Location,
		Remote:      in.Remote,
		Skills:      cloneStrings(in.Skills),
		Commitment:  in.Commitment,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Openings:    openings,
		CreatedAt:   time.Now().UTC(),
	}
	s.nextOpportunityID++
	s.opportunities[o.ID] = o
	return o, nil
}

func (s *Store) UpdateOpportunity(ctx context.Context, id int64, patch models.OpportunityPatch) (models.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.opportunities[id]
	if !ok {
		return models.Opportunity{}, storage.ErrNotFound
	}
	if patch.Title != nil {
		o.Title = *patch.Title
	}
	if patch.Description != nil {
		o.Description = *patch.Description
	}
	if patch.Location != nil {
		o.Location = *patch.Location
	}
	if patch.Remote != nil {
		o.Remote = *patch.Remote
	}
	if patch.Skills != nil {
		o.Skills = cloneStrings(patch.Skills)
	}
	if patch.Commitment != nil {
		o.Commitment = *patch.Commitment
	}
	if patch.StartDate != nil {
		o.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		o.EndDate = patch.EndDate
	}
	if patch.Openings != nil {
		o.Openings = *patch.Openings
	}
	if patch.Deleted != nil {
		o.Deleted = *patch.Deleted
	}
	s.opportunities[id] = o
	return o, nil
}

/* ----------------------------- Applications ------------------------------ */

func (s *Store) GetApplication(ctx context.Context, id int64) (models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.applications[id]
	if !ok {
		return models.Application{}, storage.ErrNotFound
	}
	return a, nil
}

func (s *Store) ListApplicationsByVolunteer(ctx context.Context, volunteerID int64) ([]models.Application, error) {
	return s.listApplications(func(a models.Application) bool { return a.VolunteerID == volunteerID }), nil
}

func (s *Store) ListApplicationsByNGO(ctx context.Context, ngoID int64) ([]models.Application, error) {
	return s.listApplications(func(a models.Application) bool { return a.NGOID == ngoID }), nil
}

func (s *Store) ListApplicationsByOpportunity(ctx context.Context, opportunityID int64) ([]models.Application, error) {
	return s.listApplications(func(a models.Application) bool { return a.OpportunityID == opportunityID }), nil
}

func (s *Store) listApplications(keep func(models.Application) bool) []models.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Application{}
	for _, a := range s.applications {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) CreateApplication(ctx context.Context, in models.NewApplication) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opp, ok := s.opportunities[in.OpportunityID]
	if !ok || opp.Deleted {
		return models.Application{}, storage.ErrOpportunityUnavailable
	}
	for _, a := range s.applications {
		if a.VolunteerID == in.VolunteerID && a.OpportunityID == in.OpportunityID {
			return models.Application{}, storage.ErrDuplicateApplication
		}
	}

	a := models.Application{
		ID:            s.nextApplicationID,
		VolunteerID:   in.VolunteerID,
		OpportunityID: in.OpportunityID,
		NGOID:         opp.NGOID,
		Status:        models.ApplicationPending,
		Message:       in.Message,
		Resume:        in.Resume,
		CreatedAt:     time.Now().UTC(),
	}
	s.nextApplicationID++
	s.applications[a.ID] = a
	return a, nil
}

func (s *Store) UpdateApplication(ctx context.Context, id int64, patch models.ApplicationPatch) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.applications[id]
	if !ok {
		return models.Application{}, storage.ErrNotFound
	}
	if patch.Status != nil {
		next := *patch.Status
		if !models.ValidApplicationStatus(next) {
			return models.Application{}, storage.ErrInvalidStatus
		}
		if a.Status != models.ApplicationPending && next != a.Status {
			return models.Application{}, storage.ErrStatusFinal
		}
		a.Status = next
	}
	if patch.Message != nil {
		a.Message = *patch.Message
	}
	if patch.Resume != nil {
		a.Resume = *patch.Resume
	}
	s.applications[id] = a
	return a, nil
}

/* ------------------------------ Suggestions ------------------------------ */

func (s *Store) GetSuggestion(ctx context.Context, id int64) (models.Suggestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sg, ok := s.suggestions[id]
	if !ok {
		return models.Suggestion{}, storage.ErrNotFound
	}
	return sg, nil
}

func (s *Store) ListSuggestionsByVolunteer(ctx context.Context, volunteerID int64) ([]models.Suggestion, error) {
	return s.listSuggestions(func(sg models.Suggestion) bool { return sg.VolunteerID == volunteerID }), nil
}

func (s *Store) ListSuggestionsByNGO(ctx context.Context, ngoID int64) ([]models.Suggestion, error) {
	return s.listSuggestions(func(sg models.Suggestion) bool { return sg.NGOID == ngoID }), nil
}

func (s *Store) listSuggestions(keep func(models.Suggestion) bool) []models.Suggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Suggestion{}
	for _, sg := range s.suggestions {
		if keep(sg) {
			out = append(out, sg)
		}
	}
	return out
}

func (s *Store) CreateSuggestion(ctx context.Context, in models.NewSuggestion) (models.Suggestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ngos[in.NGOID]; !ok {
		return models.Suggestion{}, storage.ErrNGONotFound
	}
	sg := models.Suggestion{
		ID:          s.nextSuggestionID,
		VolunteerID: in.VolunteerID,
		NGOID:       in.NGOID,
		Content:     in.Content,
		CreatedAt:   time.Now().UTC(),
	}
	s.nextSuggestionID++
	s.suggestions[sg.ID] = sg
	return sg, nil
}
