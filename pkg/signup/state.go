package signup

import "strings"

// State is the full form state. Its methods are pure: each returns the next
// state and leaves the receiver untouched. They do not check Status; the
// Controller owns that guard.
type State struct {
	Fields       Fields
	Skills       SkillSet
	PendingSkill string
	ShowPassword bool
	Status       Status
}

// Editable reports whether user input is accepted.
func (s State) Editable() bool {
	return s.Status == StatusIdle
}

// CanAddPending mirrors the enabled state of the add-skill button.
func (s State) CanAddPending() bool {
	return s.Editable() && strings.TrimSpace(s.PendingSkill) != ""
}

// SetField overwrites one text field with the raw value.
func (s State) SetField(name FieldName, value string) (State, error) {
	fields, err := s.Fields.With(name, value)
	if err != nil {
		return s, err
	}
	s.Fields = fields
	return s, nil
}

// SetPendingSkill replaces the scratch skill input.
func (s State) SetPendingSkill(value string) State {
	s.PendingSkill = value
	return s
}

// AddSkill adds candidate to the skill set and clears the pending input when
// the set changed.
func (s State) AddSkill(candidate string) (State, bool) {
	skills, added := s.Skills.Add(candidate)
	if !added {
		return s, false
	}
	s.Skills = skills
	s.PendingSkill = ""
	return s, true
}

// CommitPendingSkill adds the pending input.
func (s State) CommitPendingSkill() (State, bool) {
	return s.AddSkill(s.PendingSkill)
}

// AddFromCatalog adds a catalog entry. The pending input is left alone.
func (s State) AddFromCatalog(skill string) (State, bool, error) {
	if !IsPopularSkill(skill) {
		return s, false, ErrNotInCatalog
	}
	skills, added := s.Skills.Add(skill)
	if !added {
		return s, false, nil
	}
	s.Skills = skills
	return s, true, nil
}

// RemoveSkill drops skill from the set.
func (s State) RemoveSkill(skill string) (State, bool) {
	skills, removed := s.Skills.Remove(skill)
	if !removed {
		return s, false
	}
	s.Skills = skills
	return s, true
}

// TogglePassword flips the masked/plain rendering flag.
func (s State) TogglePassword() State {
	s.ShowPassword = !s.ShowPassword
	return s
}
