package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/firflight/firflight/internal/common"
	"github.com/firflight/firflight/internal/server/models"
	"github.com/firflight/firflight/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// searchWindow is how far ahead a search without a date looks.
const searchWindow = 7 * 24 * time.Hour

type FlightService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewFlightService(db *sql.DB, m repomanager.RepositoryManager) *FlightService {
	return &FlightService{db: db, repomanager: m, now: time.Now}
}

func airportCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return "", false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return s, true
}

// Search lists flights from origin to destination departing on day (UTC).
// A zero day means the next seven days.
func (s *FlightService) Search(ctx context.Context, origin, destination string, day time.Time) ([]models.Flight, error) {
	from, ok1 := airportCode(origin)
	to, ok2 := airportCode(destination)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: airports must be three-letter codes", common.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: origin and destination must differ", common.ErrValidation)
	}

	var start, end time.Time
	if day.IsZero() {
		start = s.now().UTC()
		end = start.Add(searchWindow)
	} else {
		y, m, d := day.UTC().Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 0, 1)
	}

	return s.repomanager.Flights(s.db).Search(ctx, from, to, start, end)
}

func (s *FlightService) Get(ctx context.Context, id string) (*models.Flight, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}
	return s.repomanager.Flights(s.db).Get(ctx, id)
}
