package seed_test

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/memstore"
	"github.com/volunteerconnect/volunteerconnect/internal/app/store/seed"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

func TestRun_PopulatesEmptyStore(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()

	if err := seed.Run(ctx, st, zap.NewNop()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	ngos, err := st.ListNGOs(ctx)
	if err != nil {
		t.Fatalf("ListNGOs: %v", err)
	}
	if len(ngos) != 3 {
		t.Fatalf("ngos: got %d, want 3", len(ngos))
	}

	opps, err := st.ListOpportunities(ctx)
	if err != nil {
		t.Fatalf("ListOpportunities: %v", err)
	}
	if len(opps) != 3 {
		t.Fatalf("opportunities: got %d, want 3", len(opps))
	}

	// Each seeded opportunity belongs to a seeded NGO.
	ngoIDs := map[int64]bool{}
	for _, n := range ngos {
		ngoIDs[n.ID] = true
	}
	for _, o := range opps {
		if !ngoIDs[o.NGOID] {
			t.Errorf("opportunity %q references unknown ngo %d", o.Title, o.NGOID)
		}
	}

	// The environment fixture is findable through the cause filter.
	greens, err := st.ListOpportunitiesByCause(ctx, "environment")
	if err != nil {
		t.Fatalf("ListOpportunitiesByCause: %v", err)
	}
	if len(greens) != 1 || greens[0].Title != "Environmental Cleanup Organizer" {
		t.Errorf("environment opportunities: got %v", greens)
	}
}

func TestRun_IsIdempotent(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := seed.Run(ctx, st, zap.NewNop()); err != nil {
			t.Fatalf("Run #%d: %v", i+1, err)
		}
	}

	ngos, _ := st.ListNGOs(ctx)
	opps, _ := st.ListOpportunities(ctx)
	if len(ngos) != 3 || len(opps) != 3 {
		t.Fatalf("after reruns: %d ngos, %d opportunities, want 3/3", len(ngos), len(opps))
	}
}

func TestRun_SkipsNonEmptyStore(t *testing.T) {
	st := memstore.New()
	ctx := context.Background()

	if _, err := st.CreateUser(ctx, models.NewUser{
		Username: "existing", Password: "pw", Email: "e@example.com",
		FullName: "Existing", UserType: models.UserTypeVolunteer,
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := seed.Run(ctx, st, zap.NewNop()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	ngos, _ := st.ListNGOs(ctx)
	if len(ngos) != 0 {
		t.Fatalf("expected no seeding on non-empty store, got %d ngos", len(ngos))
	}
}
