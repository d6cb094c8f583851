package domain

import "slices"

// MinMainSize is the largest component size that is not a main. Components
// must have strictly more hexes than this to be kept.
const MinMainSize = 5

// Main is a maximal connected group of charted hexes, in discovery order.
type Main []Hex

// GenerateMains groups the charted hexes into contiguous mains under
// six-way hex adjacency.
//
// Components are discovered in input order, so the same input always gives
// the same output. Components of MinMainSize hexes or fewer are dropped, and
// the rest are ordered largest first, ties keeping discovery order.
func GenerateMains(charted []Hex) []Main {
	present := make(map[Hex]struct{}, len(charted))
	for _, h := range charted {
		present[h] = struct{}{}
	}

	seen := make(map[Hex]struct{}, len(present))
	var mains []Main

	for _, start := range charted {
		if _, ok := seen[start]; ok {
			continue
		}
		seen[start] = struct{}{}

		component := Main{start}
		for i := 0; i < len(component); i++ {
			for _, n := range Neighbors(component[i]) {
				if _, ok := present[n]; !ok {
					continue
				}
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				component = append(component, n)
			}
		}

		if len(component) > MinMainSize {
			mains = append(mains, component)
		}
	}

	slices.SortStableFunc(mains, func(a, b Main) int {
		return len(b) - len(a)
	})
	return mains
}

// MainIndex maps each hex of the given mains to the index of its main.
func MainIndex(mains []Main) map[Hex]int {
	idx := make(map[Hex]int)
	for i, m := range mains {
		for _, h := range m {
			idx[h] = i
		}
	}
	return idx
}
