package inventory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
)

// AllocationPolicy decides the order in which kits draw from the shared stock.
// Order returns a permutation of the indexes of kits.
type AllocationPolicy interface {
	Name() string
	Order(kits []*entities.Kit) []int
}

// InputOrder allocates first-come-first-served in the order the kits were given
type InputOrder struct{}

func (InputOrder) Name() string { return "input" }

func (InputOrder) Order(kits []*entities.Kit) []int {
	order := make([]int, len(kits))
	for i := range kits {
		order[i] = i
	}
	return order
}

// UnitNumberOrder allocates kits of earlier production units first, keeping input order within a unit
type UnitNumberOrder struct{}

func (UnitNumberOrder) Name() string { return "unit-number" }

func (UnitNumberOrder) Order(kits []*entities.Kit) []int {
	order := InputOrder{}.Order(kits)
	sort.SliceStable(order, func(i, j int) bool {
		return unitNumberOf(kits[order[i]]) < unitNumberOf(kits[order[j]])
	})
	return order
}

// PriorityOrder allocates kits by explicit rank (lower first). Unranked kits go
// last, in input order.
type PriorityOrder map[string]int

func (PriorityOrder) Name() string { return "priority" }

func (p PriorityOrder) Order(kits []*entities.Kit) []int {
	order := InputOrder{}.Order(kits)
	rank := func(idx int) (int, bool) {
		if kits[idx] == nil {
			return 0, false
		}
		r, ok := p[kits[idx].ID]
		return r, ok
	}
	sort.SliceStable(order, func(i, j int) bool {
		ri, iok := rank(order[i])
		rj, jok := rank(order[j])
		if iok != jok {
			return iok
		}
		return ri < rj
	})
	return order
}

func unitNumberOf(kit *entities.Kit) int {
	if kit == nil {
		return 0
	}
	return kit.UnitNumber
}

// PolicyByName resolves the policies selectable from the command line and the API
func PolicyByName(name string) (AllocationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "input":
		return InputOrder{}, nil
	case "unit-number", "unit":
		return UnitNumberOrder{}, nil
	default:
		return nil, fmt.Errorf("unknown allocation policy: %s", name)
	}
}
