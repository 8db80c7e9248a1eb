package timeline

import "sort"

// Assignment places one item in a lane.
type Assignment[T Ranged] struct {
	Item T   `json:"item"`
	Lane int `json:"lane"`
}

// Lanes is the result of AssignLanes for one column.
type Lanes[T Ranged] struct {
	// Assignments are in placement order: ascending start, ties in input order.
	Assignments []Assignment[T] `json:"assignments"`
	// Total is the number of lanes opened.
	Total int `json:"totalLanes"`
}

// LaneOf returns the lane of the first item match accepts.
func (l Lanes[T]) LaneOf(match func(T) bool) (int, bool) {
	for _, a := range l.Assignments {
		if match(a.Item) {
			return a.Lane, true
		}
	}
	return 0, false
}

// AssignLanes partitions items into the fewest lanes such that no two items in
// a lane overlap. Items are visited by ascending start year, equal starts
// keeping their input order, and each goes into the lowest-numbered lane whose
// last end is at or before its start. Touching intervals share a lane.
//
// An item whose end precedes its start is placed like any other; its lane end
// simply moves backwards.
func AssignLanes[T Ranged](items []T) Lanes[T] {
	order := make([]int, len(items))
	starts := make([]int, len(items))
	for i, it := range items {
		order[i] = i
		starts[i], _ = it.Years()
	}
	sort.SliceStable(order, func(a, b int) bool {
		return starts[order[a]] < starts[order[b]]
	})

	var laneEnds []int
	out := Lanes[T]{Assignments: make([]Assignment[T], 0, len(items))}
	for _, idx := range order {
		it := items[idx]
		start, end := it.Years()
		lane := -1
		for i, laneEnd := range laneEnds {
			if start >= laneEnd {
				lane = i
				break
			}
		}
		if lane < 0 {
			laneEnds = append(laneEnds, end)
			lane = len(laneEnds) - 1
		} else {
			laneEnds[lane] = end
		}
		out.Assignments = append(out.Assignments, Assignment[T]{Item: it, Lane: lane})
	}
	out.Total = len(laneEnds)
	return out
}
