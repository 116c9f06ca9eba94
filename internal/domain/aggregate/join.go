package aggregate

import (
	"fmt"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// HouseholdJoin counts qualifying members per household for one period, so a
// second pass over households can look them up.
type HouseholdJoin struct {
	period  entity.Period
	members map[entity.HouseholdID]int
}

// NewHouseholdJoin builds an empty join for period.
func NewHouseholdJoin(period entity.Period) *HouseholdJoin {
	return &HouseholdJoin{period: period, members: make(map[entity.HouseholdID]int)}
}

// Period returns the period both sides must belong to.
func (j *HouseholdJoin) Period() entity.Period {
	return j.period
}

func (j *HouseholdJoin) guard(p entity.Period) error {
	if p != j.period {
		return fmt.Errorf("%w: record is %s, join is %s", types.ErrPeriodMismatch, p, j.period)
	}
	return nil
}

// Mark records one member of household id. Only qualifying members count.
func (j *HouseholdJoin) Mark(p entity.Period, id entity.HouseholdID, qualifies bool) error {
	if err := j.guard(p); err != nil {
		return err
	}
	if qualifies {
		j.members[id]++
	}
	return nil
}

// Count returns the number of qualifying members of id.
func (j *HouseholdJoin) Count(id entity.HouseholdID) int {
	return j.members[id]
}

// Households returns the number of households with at least one qualifying member.
func (j *HouseholdJoin) Households() int {
	return len(j.members)
}

// Matches reports whether household id has at least threshold qualifying members.
func (j *HouseholdJoin) Matches(p entity.Period, id entity.HouseholdID, threshold int) (bool, error) {
	if err := j.guard(p); err != nil {
		return false, err
	}
	return j.Count(id) >= threshold, nil
}
