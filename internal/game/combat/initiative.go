package combat

import "sort"

// SortTurnOrder sorts combatants in place into turn order: speed descending,
// ties broken by ascending name. The sort is stable, so combatants sharing
// both speed and name keep their input order.
//
// Postcondition: for adjacent a, b: a.Speed > b.Speed, or a.Speed == b.Speed and a.Name <= b.Name.
func SortTurnOrder(combatants []*Combatant) {
	sort.SliceStable(combatants, func(i, j int) bool {
		return actsBefore(combatants[i], combatants[j])
	})
}

// actsBefore reports whether a takes its turn ahead of b.
func actsBefore(a, b *Combatant) bool {
	if a.Speed != b.Speed {
		return a.Speed > b.Speed
	}
	return a.Name < b.Name
}
