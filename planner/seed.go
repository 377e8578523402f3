/*
seed.go - Starter data for a fresh store

PURPOSE:
  When no persisted state exists, the host application may populate a small
  starter set of categories and assignments so the calendar is not empty on
  first launch. This is application bootstrap, not engine behavior: seeding
  writes through the store directly and does not enter the undo history.
*/
package planner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/warp/leave-planner/engine"
)

// SeedIfEmpty populates starter categories and a couple of assignments when
// the store holds no categories. Returns true when seeding happened.
func (p *Planner) SeedIfEmpty(ctx context.Context) (bool, error) {
	existing, err := p.store.ListCategories(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	today := engine.Today()
	year := engine.DateRange{
		Start: engine.Date(string(today)[:4] + "-01-01"),
		End:   engine.Date(string(today)[:4] + "-12-31"),
	}

	categories := []engine.Category{
		{
			ID:     "vacation",
			Name:   "Vacation",
			Color:  "#34d399",
			Window: year,
			Weekly: engine.Limited(2),
			Total:  engine.Limited(20),
		},
		{
			ID:     "sick",
			Name:   "Sick Leave",
			Color:  "#f87171",
			Window: year,
		},
		{
			ID:            "remote-friday",
			Name:          "Remote Friday",
			Color:         "#60a5fa",
			Window:        year,
			DaysOfWeek:    []time.Weekday{time.Friday},
			Weekly:        engine.Limited(1),
			WeeksPerMonth: engine.Limited(4),
		},
	}
	for _, cat := range categories {
		if err := p.store.SaveCategory(ctx, cat); err != nil {
			return false, err
		}
	}

	// Two starter assignments in the current month: the first Monday gets a
	// vacation day, the following Wednesday a sick day.
	monday := today.MonthStart()
	for monday.Weekday() != time.Monday {
		monday = monday.AddDays(1)
	}
	starters := []engine.Assignment{
		{Date: monday, CategoryID: "vacation"},
		{Date: monday.AddDays(2), CategoryID: "sick"},
	}
	now := p.now()
	for _, a := range starters {
		a.ID = engine.AssignmentID(uuid.NewString())
		a.CreatedAt = now
		a.UpdatedAt = now
		if err := p.store.InsertAssignment(ctx, a); err != nil {
			return false, err
		}
	}
	return true, nil
}
