package model

import "sort"

// Unranked is the rank given to windows in a fallback view built without
// recency data.
const Unranked = -1

// RankedWindow is a Window joined with its position in the recency stack.
// A higher Rank means the window was focused more recently.
type RankedWindow struct {
	Window `yaml:",inline"`
	Rank   int `yaml:"rank" json:"rank"`
}

// StackOrder tells which end of a recency stack holds the most recently
// focused window.
type StackOrder string

const (
	// MostRecentLast is the X11 _NET_CLIENT_LIST_STACKING convention.
	MostRecentLast StackOrder = "most-recent-last"
	// MostRecentFirst is for window managers that report focus history
	// newest first.
	MostRecentFirst StackOrder = "most-recent-first"
)

// Valid reports whether o is a known order.
func (o StackOrder) Valid() bool {
	return o == MostRecentLast || o == MostRecentFirst
}

// Oriented returns a copy of recency with the most recent window last.
func Oriented(recency []WindowID, order StackOrder) []WindowID {
	out := make([]WindowID, len(recency))
	if order != MostRecentFirst {
		copy(out, recency)
		return out
	}
	for i, id := range recency {
		out[len(recency)-1-i] = id
	}
	return out
}

// RecencyRanks maps each id of a recency stack (most recent last) to its
// position. An id listed more than once keeps its last, highest position.
func RecencyRanks(recency []WindowID) map[WindowID]int {
	ranks := make(map[WindowID]int, len(recency))
	for i, id := range recency {
		ranks[id] = i
	}
	return ranks
}

// Rank joins windows with the recency stack and orders the result from most
// to least recently focused. Windows whose id is not in the stack are left
// out, and ids in the stack with no matching window are ignored. Equal ranks
// keep the order in which windows were listed. Neither input is modified.
func Rank(windows []Window, recency []WindowID) []RankedWindow {
	ranks := RecencyRanks(recency)
	result := make([]RankedWindow, 0, len(windows))
	seen := make(map[WindowID]bool, len(windows))
	for _, w := range windows {
		rank, ok := ranks[w.ID]
		if !ok || seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		result = append(result, RankedWindow{Window: w, Rank: rank})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Rank > result[j].Rank
	})
	return result
}

// UnrankedView wraps windows in inventory order with Rank set to Unranked.
// It is the view used when the window manager reports no recency data.
func UnrankedView(windows []Window) []RankedWindow {
	result := make([]RankedWindow, len(windows))
	for i, w := range windows {
		result[i] = RankedWindow{Window: w, Rank: Unranked}
	}
	return result
}

// IDs returns the window ids of ranked in order.
func IDs(ranked []RankedWindow) []WindowID {
	ids := make([]WindowID, len(ranked))
	for i, w := range ranked {
		ids[i] = w.ID
	}
	return ids
}
