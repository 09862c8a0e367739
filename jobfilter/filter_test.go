package jobfilter

import (
	"testing"
	"time"

	"landscape-supply-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func sampleJobs() []models.Job {
	chicago := time.FixedZone("CST", -6*3600)
	return []models.Job{
		{ID: 1, CustomerName: "Green Acres", Address: "12 Oak Ln", Status: models.StatusScheduled,
			DeliveryDate: timePtr(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))},
		{ID: 2, CustomerName: "Hilltop Farm", Address: "99 Ridge Rd", Status: models.StatusScheduled,
			DeliveryDate: timePtr(time.Date(2025, 3, 10, 23, 45, 0, 0, chicago))}, // same calendar day, late evening
		{ID: 3, CustomerName: "Acme Paving", Address: "1 Industrial Way", Status: models.StatusCompleted,
			DeliveryDate: timePtr(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))},
		{ID: 4, CustomerName: "Maple Court HOA", Address: "40 Maple Ct", Status: models.StatusScheduled,
			DeliveryDate: timePtr(time.Date(2025, 3, 11, 12, 0, 0, 0, time.UTC))},
		{ID: 5, CustomerName: "Walk-in", Address: "7 Elm St", Status: models.StatusToBeScheduled},
		{ID: 6, CustomerName: "No Date Yet", Address: "8 Elm St", Status: models.StatusScheduled, DeliveryDate: nil},
	}
}

func ids(jobs []models.Job) []uint {
	out := make([]uint, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestParseDateAnchorsAtNoonUTC(t *testing.T) {
	d, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("03/10/2025")
	assert.Error(t, err)
}

func TestSameCalendarDayIgnoresTimeOfDay(t *testing.T) {
	selected, _ := ParseDate("2025-03-10")
	assert.True(t, SameCalendarDay(time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC), selected))
	assert.True(t, SameCalendarDay(time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC), selected))
	assert.False(t, SameCalendarDay(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), selected))
}

func TestNormalModeFiltersByCalendarDay(t *testing.T) {
	selected, _ := ParseDate("2025-03-10")
	visible := Filter(sampleJobs(), Options{Mode: ModeNormal, Date: selected})

	// stored time-of-day and zone must not matter; unscheduled rows drop out
	assert.ElementsMatch(t, []uint{1, 2, 3}, ids(visible))
}

func TestNormalModeStatusFilter(t *testing.T) {
	selected, _ := ParseDate("2025-03-10")

	visible := Filter(sampleJobs(), Options{Mode: ModeNormal, Date: selected, Status: "completed"})
	assert.ElementsMatch(t, []uint{3}, ids(visible))

	visible = Filter(sampleJobs(), Options{Mode: ModeNormal, Date: selected, Status: "all"})
	assert.ElementsMatch(t, []uint{1, 2, 3}, ids(visible))
}

func TestUnscheduledMode(t *testing.T) {
	// date and status filters are ignored entirely in this mode
	selected, _ := ParseDate("2025-03-10")
	visible := Filter(sampleJobs(), Options{Mode: ModeUnscheduled, Date: selected, Status: "completed"})

	assert.ElementsMatch(t, []uint{5, 6}, ids(visible))
	for _, job := range visible {
		if job.DeliveryDate != nil {
			assert.Equal(t, models.StatusToBeScheduled, job.Status)
		}
	}
}

func TestSearchAppliesInBothModes(t *testing.T) {
	selected, _ := ParseDate("2025-03-10")

	visible := Filter(sampleJobs(), Options{Mode: ModeNormal, Date: selected, Search: "green"})
	assert.ElementsMatch(t, []uint{1}, ids(visible))

	// matches address too
	visible = Filter(sampleJobs(), Options{Mode: ModeNormal, Date: selected, Search: "RIDGE"})
	assert.ElementsMatch(t, []uint{2}, ids(visible))

	visible = Filter(sampleJobs(), Options{Mode: ModeUnscheduled, Search: "elm"})
	assert.ElementsMatch(t, []uint{5, 6}, ids(visible))
}

func TestFilterIsIdempotent(t *testing.T) {
	selected, _ := ParseDate("2025-03-10")
	opts := Options{Mode: ModeNormal, Date: selected, Search: "a", Status: "scheduled"}

	once := Filter(sampleJobs(), opts)
	twice := Filter(once, opts)
	assert.Equal(t, once, twice)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	jobs := sampleJobs()
	Filter(jobs, Options{Mode: ModeNormal, Search: "green"})
	assert.Equal(t, sampleJobs(), jobs)
}

func TestNormalModeWithoutDateKeepsAllScheduled(t *testing.T) {
	visible := Filter(sampleJobs(), Options{Mode: ModeNormal})
	assert.ElementsMatch(t, []uint{1, 2, 3, 4}, ids(visible))
}
