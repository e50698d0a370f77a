package form

// SkillOptions is the fixed list volunteers pick their skills from.
var SkillOptions = []string{
	"Web Development",
	"Graphic Design",
	"Content Writing",
	"Social Media Management",
	"Teaching / Tutoring",
	"Event Management",
	"Fundraising",
	"Marketing",
	"Photography",
	"Video Editing",
	"Data Analysis",
	"UI/UX Design",
	"Public Speaking",
	"Project Management",
	"Translation Services",
}

// NormalizeSkills treats the selection as a set: unknown entries are dropped,
// duplicates collapse and the result follows the order of SkillOptions.
func NormalizeSkills(selected []string) []string {
	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}

	skills := make([]string, 0, len(chosen))
	for _, option := range SkillOptions {
		if chosen[option] {
			skills = append(skills, option)
		}
	}
	return skills
}
