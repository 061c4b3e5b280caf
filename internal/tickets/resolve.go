package tickets

import (
	"context"
	"sort"
	"sync"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
)

// ReferenceSource supplies the schedule, bus and seat data a group needs
// for display. The API client satisfies it.
type ReferenceSource interface {
	Schedule(ctx context.Context, id domain.ID) (models.Schedule, error)
	Bus(ctx context.Context, id domain.ID) (models.Bus, error)
	SeatsByBus(ctx context.Context, busID domain.ID) ([]models.Seat, error)
}

// Resolve fills each group with its schedule, bus and seat labels. Groups
// are resolved concurrently; a failure is recorded on that group alone and
// never aborts the others. The input order is preserved.
func Resolve(ctx context.Context, src ReferenceSource, groups []JourneyGroup) []JourneyGroup {
	var wg sync.WaitGroup
	for i := range groups {
		wg.Add(1)
		go func(g *JourneyGroup) {
			defer wg.Done()
			resolveGroup(ctx, src, g)
		}(&groups[i])
	}
	wg.Wait()
	return groups
}

func resolveGroup(ctx context.Context, src ReferenceSource, g *JourneyGroup) {
	sched, err := src.Schedule(ctx, g.ScheduleID)
	if err != nil {
		g.Err = err
		return
	}
	g.Schedule = &sched

	// Bus info is decoration; a miss falls back to the synthetic name.
	if bus, err := src.Bus(ctx, sched.BusID); err == nil {
		g.Bus = &bus
	}

	labelByID := map[domain.ID]string{}
	if seats, err := src.SeatsByBus(ctx, sched.BusID); err == nil {
		for _, seat := range seats {
			labelByID[seat.ID] = seat.SeatLabel
		}
	}

	labels := make([]string, 0, len(g.SeatIDs))
	for _, id := range g.SeatIDs {
		if label, ok := labelByID[id]; ok {
			labels = append(labels, label)
		} else {
			// Unresolved seats still show something actionable.
			labels = append(labels, "ID:"+id.String())
		}
	}
	sort.Strings(labels)
	g.SeatLabels = labels
}
