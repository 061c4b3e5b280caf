package pages

import (
	"context"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"
	"locotranz/internal/utils"
)

// SearchController backs the search results page.
type SearchController struct {
	Ctx
}

// BusCard is one schedule rendered for the results list.
type BusCard struct {
	ScheduleID     domain.ID
	BusName        string
	BusType        string
	Source         string
	Destination    string
	DepartureClock string
	ArrivalClock   string
	Duration       string
	Fare           string
	AvailableSeats int
	Status         domain.Status
}

// Search lists schedules for a route and joins in bus names and types.
// A failing bus lookup degrades to synthetic names rather than failing
// the whole page.
func (c SearchController) Search(ctx context.Context, source, destination string) ([]BusCard, error) {
	schedules, err := c.API.Schedules(ctx, utils.TrimOrEmpty(source), utils.TrimOrEmpty(destination))
	if err != nil {
		c.notify().Error("Failed to load buses.")
		return nil, err
	}

	busByID := map[domain.ID]models.Bus{}
	if buses, err := c.API.Buses(ctx); err == nil {
		for _, b := range buses {
			busByID[b.ID] = b
		}
	}

	now := c.now()
	cards := make([]BusCard, 0, len(schedules))
	for _, sched := range schedules {
		card := BusCard{
			ScheduleID:     sched.ID,
			BusName:        "Bus #" + sched.BusID.String(),
			BusType:        "Luxury Service",
			Source:         sched.Source,
			Destination:    sched.Destination,
			DepartureClock: utils.FormatClock(sched.DepartureTime),
			ArrivalClock:   utils.FormatClock(sched.ArrivalTime),
			Duration:       utils.FormatDuration(sched.Duration()),
			Fare:           utils.FormatINRPlain(sched.Price),
			AvailableSeats: sched.AvailableSeats,
			Status:         sched.EffectiveStatus(now),
		}
		if bus, ok := busByID[sched.BusID]; ok {
			card.BusName = bus.DisplayName()
			if bus.BusType != "" {
				card.BusType = bus.BusType
			}
		}
		cards = append(cards, card)
	}
	return cards, nil
}
