package signup

import "slices"

var popularSkills = []string{
	"JavaScript", "Python", "Guitar", "French", "Cooking", "Photography",
	"Yoga", "Drawing", "Marketing", "Writing", "Spanish", "Piano",
}

// PopularSkills returns a copy of the fixed catalog offered as one-click picks.
func PopularSkills() []string {
	return slices.Clone(popularSkills)
}

// IsPopularSkill reports whether name is an exact catalog entry.
func IsPopularSkill(name string) bool {
	return slices.Contains(popularSkills, name)
}
