package model

import "strings"

// Predicate selects windows.
type Predicate func(Window) bool

// Filter returns the windows matching pred, keeping their relative order.
func Filter(ranked []RankedWindow, pred Predicate) []RankedWindow {
	var result []RankedWindow
	for _, w := range ranked {
		if pred(w.Window) {
			result = append(result, w)
		}
	}
	return result
}

// MatchType matches windows whose type tag equals typeTag exactly.
func MatchType(typeTag string) Predicate {
	return func(w Window) bool {
		return w.Type == typeTag
	}
}

// MatchApplication matches windows of the given application, i.e. whose type
// tag ends in ".<app>" (or equals app when the tag has no dot).
func MatchApplication(app string) Predicate {
	return func(w Window) bool {
		return w.Application == app
	}
}

// ExcludeID matches every window except the one with the given id.
func ExcludeID(id WindowID) Predicate {
	return func(w Window) bool {
		return w.ID != id
	}
}

// All combines predicates with logical AND.
func All(preds ...Predicate) Predicate {
	return func(w Window) bool {
		for _, p := range preds {
			if !p(w) {
				return false
			}
		}
		return true
	}
}

// Query matches windows by application and exact type tag. Empty arguments
// match everything.
func Query(app, typeTag string) Predicate {
	var preds []Predicate
	if app != "" {
		preds = append(preds, MatchApplication(app))
	}
	if typeTag != "" {
		preds = append(preds, MatchType(typeTag))
	}
	return All(preds...)
}

// Target is a window name as given on the start-or-focus command line.
type Target struct {
	// Type is the full type tag, set only when the name contained a dot.
	Type string `yaml:"type,omitempty"        json:"type,omitempty"`
	// Application is always set.
	Application string `yaml:"application" json:"application"`
}

// ParseTarget splits a window name on its first dot. "Mail.Thunderbird"
// targets that exact type within Thunderbird; a bare "Thunderbird" targets any
// Thunderbird window.
func ParseTarget(windowName string) Target {
	windowName = strings.TrimSpace(windowName)
	if _, app, ok := strings.Cut(windowName, "."); ok {
		return Target{Type: windowName, Application: app}
	}
	return Target{Application: windowName}
}

// HasType reports whether the target names a specific type tag.
func (t Target) HasType() bool {
	return t.Type != ""
}
