// ABOUTME: Static definitions of the three training phases.
// ABOUTME: Phase numbering, week ranges, and unlock criteria shown to the singer.
package models

const (
	// FirstPhase is where every singer starts and where a reset returns them.
	FirstPhase = 1
	// FinalPhase has no successor.
	FinalPhase = 3
	// WeeksPerPhase is the length of each phase.
	WeeksPerPhase = 4
	// AdvanceThreshold is the minimum average overall score needed to leave a phase.
	AdvanceThreshold = 70.0
)

// Phase describes one stage of the program.
type Phase struct {
	ID             int      `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	Weeks          string   `json:"weeks" yaml:"weeks"`
	Features       []string `json:"features" yaml:"features"`
	UnlockCriteria string   `json:"unlockCriteria" yaml:"unlock_criteria"`
}

// Phases lists the program phases in order.
var Phases = []Phase{
	{
		ID:          1,
		Name:        "Foundation",
		Description: "Build your vocal foundation with essential techniques",
		Weeks:       "Weeks 1-4",
		Features: []string{
			"Voice recording & analysis",
			"Pitch accuracy training",
			"Tone stability exercises",
			"Breathing techniques",
			"Weekly practice routines",
		},
		UnlockCriteria: "Start your journey",
	},
	{
		ID:          2,
		Name:        "Technique & Expression",
		Description: "Develop advanced techniques and emotional expression",
		Weeks:       "Weeks 5-8",
		Features: []string{
			"Song recommendations",
			"Genre-based backing tracks",
			"Adaptive difficulty",
			"Expression coaching",
			"Style development",
		},
		UnlockCriteria: "Complete Phase 1 with 70% average score",
	},
	{
		ID:          3,
		Name:        "Performance & Confidence",
		Description: "Master stage presence and build performance confidence",
		Weeks:       "Weeks 9-12",
		Features: []string{
			"Virtual performance simulator",
			"Audience reactions",
			"Stage effects",
			"Audio mastering",
			"Performance analysis",
		},
		UnlockCriteria: "Complete Phase 2 with 70% average score",
	},
}

// IsValidPhase reports whether phase is one of the program phases.
func IsValidPhase(phase int) bool {
	return phase >= FirstPhase && phase <= FinalPhase
}

// GetPhase returns the definition of a phase.
func GetPhase(phase int) (Phase, bool) {
	for _, p := range Phases {
		if p.ID == phase {
			return p, true
		}
	}
	return Phase{}, false
}

// FirstWeekOfPhase returns the program week a phase starts on.
func FirstWeekOfPhase(phase int) int {
	return (phase-1)*WeeksPerPhase + 1
}
