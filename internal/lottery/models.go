package lottery

import (
	"time"

	"github.com/google/uuid"
)

type Person struct {
	ID   string
	Name string
	Wins int
}

type Prize struct {
	ID        string
	Name      string
	Total     int
	Remaining int
}

// Drawn reports how many items of the prize have been handed out.
func (p Prize) Drawn() int {
	return p.Total - p.Remaining
}

// PrizeSpec is a prize as read from a roster, before it gets an identity.
type PrizeSpec struct {
	Name  string
	Total int
}

type Result struct {
	ID         string
	PersonName string
	PrizeName  string
	Timestamp  time.Time
}

// Pending is one winner picked by PrepareBatch but not yet committed.
// Index is the winner's position in the candidate list at draw time.
type Pending struct {
	PersonID string
	PrizeID  string
	Index    int
}

func newID() string {
	return uuid.NewString()
}

func newPrize(spec PrizeSpec) Prize {
	total := spec.Total
	if total <= 0 {
		total = 1
	}
	return Prize{ID: newID(), Name: spec.Name, Total: total, Remaining: total}
}

// DefaultPrizes returns the four single-item tiers used before a prize list is imported.
func DefaultPrizes() []PrizeSpec {
	return []PrizeSpec{
		{Name: "First Prize", Total: 1},
		{Name: "Second Prize", Total: 1},
		{Name: "Third Prize", Total: 1},
		{Name: "Fourth Prize", Total: 1},
	}
}
