// internal/app/store/seed/seed.go

// Package seed populates an empty backend with a small demonstration
// dataset: three NGOs with one opportunity each.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/volunteerconnect/volunteerconnect/internal/app/store/storage"
	"github.com/volunteerconnect/volunteerconnect/internal/domain/models"
)

// Run seeds the store if it is empty. It is idempotent: when any user or NGO
// already exists (checked by count, not content), seeding is skipped
// entirely. All inserts go through the normal Create path so id assignment,
// defaults and indexing apply exactly as they do for live traffic.
func Run(ctx context.Context, st storage.Storage, logger *zap.Logger) error {
	users, err := st.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	ngos, err := st.CountNGOs(ctx)
	if err != nil {
		return fmt.Errorf("seed: count ngos: %w", err)
	}
	if users > 0 || ngos > 0 {
		logger.Info("seed skipped, backend already has data",
			zap.Int64("users", users),
			zap.Int64("ngos", ngos))
		return nil
	}

	logger.Info("seeding demonstration data")

	for _, f := range fixtures() {
		ngo, err := st.CreateNGO(ctx, f.ngo)
		if err != nil {
			return fmt.Errorf("seed: create ngo %q: %w", f.ngo.Name, err)
		}
		f.opportunity.NGOID = ngo.ID
		if _, err := st.CreateOpportunity(ctx, f.opportunity); err != nil {
			return fmt.Errorf("seed: create opportunity %q: %w", f.opportunity.Title, err)
		}
	}

	logger.Info("demonstration data seeded")
	return nil
}

type fixture struct {
	ngo         models.NewNGO
	opportunity models.NewOpportunity
}

func fixtures() []fixture {
	return []fixture{
		{
			ngo: models.NewNGO{
				Name:        "Education for All",
				Description: "Working to provide quality education to underprivileged children.",
				Cause:       "Education",
				Location:    "New York, USA",
				Email:       "info@educationforall.org",
				PhoneNumber: "+1234567890",
				Website:     "www.educationforall.org",
				Logo:        "https://via.placeholder.com/150",
			},
			opportunity: models.NewOpportunity{
				Title:       "Teaching Assistant",
				Description: "Help teachers in classrooms with underprivileged children.",
				Location:    "New York, USA",
				Skills:      []string{"Teaching", "Patience", "Communication"},
				Commitment:  "10 hours/week",
				StartDate:   date(2023, time.September, 1),
				EndDate:     date(2023, time.December, 31),
				Openings:    5,
			},
		},
		{
			ngo: models.NewNGO{
				Name:        "Green Earth Initiative",
				Description: "Focused on environmental conservation and sustainability.",
				Cause:       "Environment",
				Location:    "San Francisco, USA",
				Email:       "info@greenearthinitiative.org",
				PhoneNumber: "+1987654321",
				Website:     "www.greenearthinitiative.org",
				Logo:        "https://via.placeholder.com/150",
			},
			opportunity: models.NewOpportunity{
				Title:       "Environmental Cleanup Organizer",
				Description: "Organize beach and park cleanup events.",
				Location:    "San Francisco, USA",
				Skills:      []string{"Organization", "Leadership", "Environmental Knowledge"},
				Commitment:  "5 hours/week",
				StartDate:   date(2023, time.August, 15),
				EndDate:     date(2023, time.November, 15),
				Openings:    3,
			},
		},
		{
			ngo: models.NewNGO{
				Name:        "Healthcare Access",
				Description: "Providing healthcare services to underserved communities.",
				Cause:       "Healthcare",
				Location:    "Chicago, USA",
				Email:       "info@healthcareaccess.org",
				PhoneNumber: "+1122334455",
				Website:     "www.healthcareaccess.org",
				Logo:        "https://via.placeholder.com/150",
			},
			opportunity: models.NewOpportunity{
				Title:       "Medical Camp Assistant",
				Description: "Assist doctors in medical camps for underserved communities.",
				Location:    "Chicago, USA",
				Skills:      []string{"First Aid", "Empathy", "Organization"},
				Commitment:  "8 hours/week",
				StartDate:   date(2023, time.October, 1),
				EndDate:     date(2023, time.December, 15),
				Openings:    10,
			},
		},
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
