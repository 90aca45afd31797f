package mongostore_test

import (
	"errors"
	"testing"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/mongostore"
	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
	"github.com/volunteerconnect/volunteerconnect/internal/testutil"
)

func setup(t *testing.T) *mongostore.Store {
	t.Helper()
	db := testutil.SetupTestDB(t)
	st := mongostore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := st.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	return st
}

func TestCreateUser_SequentialIDsSurviveProcessRestart(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := mongostore.New(db)
	if err := st.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	first, err := st.CreateUser(ctx, models.NewUser{
		Username: "alice", Password: "pw", Email: "alice@example.com",
		FullName: "Alice", UserType: models.UserTypeVolunteer,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if first.ID != 1 {
		t.Errorf("first id: got %d, want 1", first.ID)
	}

	// A new Store over the same database continues the sequence instead of
	// restarting at 1.
	st2 := mongostore.New(db)
	if err := st2.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes (second store): %v", err)
	}
	second, err := st2.CreateUser(ctx, models.NewUser{
		Username: "bob", Password: "pw", Email: "bob@example.com",
		FullName: "Bob", UserType: models.UserTypeVolunteer,
	})
	if err != nil {
		t.Fatalf("CreateUser (second store): %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second id: got %d, want 2", second.ID)
	}
}

func TestCreateUser_DuplicateGuardsViaIndexes(t *testing.T) {
	st := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := st.CreateUser(ctx, models.NewUser{
		Username: "maria", Password: "pw", Email: "maria@example.com",
		FullName: "Maria", UserType: models.UserTypeVolunteer,
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := st.CreateUser(ctx, models.NewUser{
		Username: "MARIA", Password: "pw", Email: "other@example.com",
		FullName: "Other", UserType: models.UserTypeVolunteer,
	})
	if !errors.Is(err, storage.ErrDuplicateUsername) {
		t.Errorf("duplicate username: got %v, want ErrDuplicateUsername", err)
	}

	_, err = st.CreateUser(ctx, models.NewUser{
		Username: "other", Password: "pw", Email: "Maria@Example.COM",
		FullName: "Other", UserType: models.UserTypeVolunteer,
	})
	if !errors.Is(err, storage.ErrDuplicateEmail) {
		t.Errorf("duplicate email: got %v, want ErrDuplicateEmail", err)
	}
}

func TestGetUser_CaseInsensitiveLookups(t *testing.T) {
	st := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := st.CreateUser(ctx, models.NewUser{
		Username: "MarIa", Password: "pw", Email: "Maria@Example.com",
		FullName: "Maria", UserType: models.UserTypeVolunteer,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	byName, err := st.GetUserByUsername(ctx, "maria")
	if err != nil || byName.ID != created.ID {
		t.Errorf("GetUserByUsername: got (%v, %v)", byName.ID, err)
	}
	if byName.Username != "MarIa" {
		t.Errorf("stored casing: got %q, want %q", byName.Username, "MarIa")
	}

	byEmail, err := st.GetUserByEmail(ctx, "MARIA@EXAMPLE.COM")
	if err != nil || byEmail.ID != created.ID {
		t.Errorf("GetUserByEmail: got (%v, %v)", byEmail.ID, err)
	}

	if _, err := st.GetUser(ctx, 999); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing user: got %v, want ErrNotFound", err)
	}
}

func TestUpdateUser_PartialPatch(t *testing.T) {
	st := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := st.CreateUser(ctx, models.NewUser{
		Username: "alice", Password: "pw", Email: "alice@example.com",
		FullName: "Alice", UserType: models.UserTypeVolunteer,
		Location: "Denver, CO", Bio: "original",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	bio := "updated"
	got, err := st.UpdateUser(ctx, u.ID, models.UserPatch{Bio: &bio, Interests: []string{"teaching"}})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if got.Bio != "updated" || len(got.Interests) != 1 {
		t.Errorf("patched fields: %+v", got)
	}
	if got.Location != "Denver, CO" || got.Username != "alice" {
		t.Errorf("untouched fields clobbered: %+v", got)
	}

	// Empty patch is a read.
	same, err := st.UpdateUser(ctx, u.ID, models.UserPatch{})
	if err != nil || same.Bio != "updated" {
		t.Errorf("empty patch: got (%+v, %v)", same, err)
	}

	if _, err := st.UpdateUser(ctx, 999, models.UserPatch{Bio: &bio}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing user: got %v, want ErrNotFound", err)
	}
}

func TestOpportunity_SoftDeleteAndCauseFilter(t *testing.T) {
	st := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ngo, err := st.CreateNGO(ctx, models.NewNGO{
		Name: "Green Earth", Description: "d", Cause: "Environment",
		Location: "SF", Email: "green@example.org",
	})
	if err != nil {
		t.Fatalf("CreateNGO: %v", err)
	}

	opp, err := st.CreateOpportunity(ctx, models.NewOpportunity{
		Title: "Cleanup", Description: "d", NGOID: ngo.ID,
	})
	if err != nil {
		t.Fatalf("CreateOpportunity: %v", err)
	}
	if opp.Openings != 1 {
		t.Errorf("openings default: got %d, want 1", opp.Openings)
	}

	byCause, err := st.ListOpportunitiesByCause(ctx, "environment")
	if err != nil {
		t.Fatalf("ListOpportunitiesByCause: %v", err)
	}
	if len(byCause) != 1 {
		t.Fatalf("cause filter: got %d, want 1", len(byCause))
	}

	deleted := true
	if _, err := st.UpdateOpportunity(ctx, opp.ID, models.OpportunityPatch{Deleted: &deleted}); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	all, err := st.ListOpportunities(ctx)
	if err != nil {
		t.Fatalf("ListOpportunities: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("deleted record still listed: %v", all)
	}

	got, err := st.GetOpportunity(ctx, opp.ID)
	if err != nil {
		t.Fatalf("GetOpportunity after delete: %v", err)
	}
	if !got.Deleted {
		t.Error("expected Deleted flag on fetched record")
	}
}

func TestApplication_Lifecycle(t *testing.T) {
	st := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ngo, err := st.CreateNGO(ctx, models.NewNGO{
		Name: "Green Earth", Description: "d", Cause: "Environment",
		Location: "SF", Email: "green@example.org",
	})
	if err != nil {
		t.Fatalf("CreateNGO: %v", err)
	}
	opp, err := st.CreateOpportunity(ctx, models.NewOpportunity{
		Title: "Cleanup", Description: "d", NGOID: ngo.ID,
	})
	if err != nil {
		t.Fatalf("CreateOpportunity: %v", err)
	}

	app, err := st.CreateApplication(ctx, models.NewApplication{
		VolunteerID: 10, OpportunityID: opp.ID, Message: "hi",
	})
	if err != nil {
		t.Fatalf("CreateApplication: %v", err)
	}
	if app.NGOID != ngo.ID || app.Status != models.ApplicationPending {
		t.Errorf("created application: %+v", app)
	}

	if _, err := st.CreateApplication(ctx, models.NewApplication{VolunteerID: 10, OpportunityID: opp.ID}); !errors.Is(err, storage.ErrDuplicateApplication) {
		t.Errorf("duplicate: got %v, want ErrDuplicateApplication", err)
	}

	accepted := models.ApplicationAccepted
	got, err := st.UpdateApplication(ctx, app.ID, models.ApplicationPatch{Status: &accepted})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if got.Status != models.ApplicationAccepted {
		t.Errorf("status: got %q", got.Status)
	}

	rejected := models.ApplicationRejected
	if _, err := st.UpdateApplication(ctx, app.ID, models.ApplicationPatch{Status: &rejected}); !errors.Is(err, storage.ErrStatusFinal) {
		t.Errorf("re-decide: got %v, want ErrStatusFinal", err)
	}

	byNGO, err := st.ListApplicationsByNGO(ctx, ngo.ID)
	if err != nil || len(byNGO) != 1 {
		t.Errorf("ListApplicationsByNGO: got (%d, %v), want 1", len(byNGO), err)
	}
}

func TestSuggestion_RoundTrip(t *testing.T) {
	st := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ngo, err := st.CreateNGO(ctx, models.NewNGO{
		Name: "Green Earth", Description: "d", Cause: "Environment",
		Location: "SF", Email: "green@example.org",
	})
	if err != nil {
		t.Fatalf("CreateNGO: %v", err)
	}

	sug, err := st.CreateSuggestion(ctx, models.NewSuggestion{
		VolunteerID: 10, NGOID: ngo.ID, Content: "More weekend events",
	})
	if err != nil {
		t.Fatalf("CreateSuggestion: %v", err)
	}

	got, err := st.GetSuggestion(ctx, sug.ID)
	if err != nil || got.Content != "More weekend events" {
		t.Errorf("GetSuggestion: got (%+v, %v)", got, err)
	}

	if _, err := st.CreateSuggestion(ctx, models.NewSuggestion{VolunteerID: 10, NGOID: 999, Content: "x"}); !errors.Is(err, storage.ErrNGONotFound) {
		t.Errorf("dangling ngo: got %v, want ErrNGONotFound", err)
	}
}
