package automaton

import (
	"sort"
	"strconv"
	"strings"
)

// EquivalenceClass is a set of states indistinguishable under repeated
// transition-signature comparison, keyed by an integer class id.
type EquivalenceClass struct {
	ID     int
	States []*State
}

// Minimize partitions the given states into equivalence classes using
// Moore-style partition refinement.
//
// The initial partition separates accepting from non-accepting states. Each
// pass computes a member's signature as the sorted list of
// "symbol:targetBlockIndex" pairs against the current partition and splits
// blocks whose members disagree. The loop stops at the fixed point, i.e.
// when a full pass no longer grows the partition. Termination is guaranteed
// because blocks only ever split and the state set is finite.
//
// The returned classes partition the input: every state belongs to exactly
// one class, classes are pairwise disjoint, and their union is the full set.
func Minimize(states []*State) []EquivalenceClass {
	if len(states) == 0 {
		return nil
	}

	// initial partition: accepting vs non-accepting, block ids assigned
	// in first-seen order to keep results deterministic
	block := make(map[*State]int, len(states))
	seed := map[bool]int{}
	for _, st := range states {
		id, ok := seed[st.Accepting]
		if !ok {
			id = len(seed)
			seed[st.Accepting] = id
		}
		block[st] = id
	}

	count := len(seed)

	for {
		next := make(map[*State]int, len(states))
		assigned := map[string]int{}

		for _, st := range states {
			// the current block id is part of the key so refinement
			// only ever splits blocks, never merges them
			key := strconv.Itoa(block[st]) + "|" + signature(st, block)

			id, ok := assigned[key]
			if !ok {
				id = len(assigned)
				assigned[key] = id
			}
			next[st] = id
		}

		block = next

		if len(assigned) == count {
			break
		}
		count = len(assigned)
	}

	classes := make([]EquivalenceClass, count)
	for i := range classes {
		classes[i].ID = i
	}
	for _, st := range states {
		id := block[st]
		classes[id].States = append(classes[id].States, st)
	}

	return classes
}

// signature digests a state's transition behaviour relative to the current
// partition: the sorted "symbol:targetBlockIndex" pairs, comma-joined.
func signature(st *State, block map[*State]int) string {
	pairs := make([]string, 0, len(st.Transitions))
	for sym, target := range st.Transitions {
		pairs = append(pairs, sym+":"+strconv.Itoa(block[target]))
	}

	sort.Strings(pairs)

	return strings.Join(pairs, ",")
}
