package signup

import (
	"slices"
	"strings"
)

// SkillSet is an ordered sequence of unique, non-blank skills. The zero value
// is an empty set. Methods never mutate the receiver.
type SkillSet struct {
	items []string
}

// NewSkillSet builds a set from candidates, applying Add to each in order.
func NewSkillSet(candidates ...string) SkillSet {
	var set SkillSet
	for _, candidate := range candidates {
		set, _ = set.Add(candidate)
	}
	return set
}

// Add trims candidate and appends it. It reports false and returns the set
// unchanged when the trimmed value is blank or already present (exact,
// case-sensitive match).
func (s SkillSet) Add(candidate string) (SkillSet, bool) {
	skill := strings.TrimSpace(candidate)
	if skill == "" || s.Contains(skill) {
		return s, false
	}
	next := make([]string, len(s.items), len(s.items)+1)
	copy(next, s.items)
	return SkillSet{items: append(next, skill)}, true
}

// Remove drops skill. It reports false when skill is absent.
func (s SkillSet) Remove(skill string) (SkillSet, bool) {
	idx := slices.Index(s.items, skill)
	if idx < 0 {
		return s, false
	}
	next := make([]string, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	return SkillSet{items: next}, true
}

// Contains reports whether skill is present.
func (s SkillSet) Contains(skill string) bool {
	return slices.Contains(s.items, skill)
}

// Len returns the number of skills.
func (s SkillSet) Len() int {
	return len(s.items)
}

// Values returns the skills in insertion order. The slice is a copy and is
// never nil.
func (s SkillSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
