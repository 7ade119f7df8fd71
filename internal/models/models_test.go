// ABOUTME: Tests for singsmart models.
// ABOUTME: Validates enums, constructors, patches, and defensive clones.
package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewUserStartsAtFirstPhase(t *testing.T) {
	u := NewUser("Ada", ExperienceBeginner)

	if u.ID == uuid.Nil {
		t.Error("expected UUID to be set")
	}
	if u.CurrentPhase != 1 || u.CurrentWeek != 1 {
		t.Errorf("phase/week = %d/%d, want 1/1", u.CurrentPhase, u.CurrentWeek)
	}
	if u.VocalRange != nil {
		t.Error("expected no vocal range")
	}
}

func TestUserWithPhase(t *testing.T) {
	tests := []struct {
		phase    int
		wantWeek int
	}{
		{1, 1},
		{2, 5},
		{3, 9},
	}

	for _, tt := range tests {
		u := NewUser("Ada", ExperienceBeginner).WithPhase(tt.phase)
		if u.CurrentWeek != tt.wantWeek {
			t.Errorf("WithPhase(%d) week = %d, want %d", tt.phase, u.CurrentWeek, tt.wantWeek)
		}
	}
}

func TestIsValidVocalRange(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"tenor", true},
		{"Tenor", true},
		{"BASS", true},
		{"mezzo", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidVocalRange(tt.input); got != tt.want {
				t.Errorf("IsValidVocalRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidExperienceLevel(t *testing.T) {
	if !IsValidExperienceLevel("intermediate") {
		t.Error("expected intermediate to be valid")
	}
	if IsValidExperienceLevel("expert") {
		t.Error("expected expert to be invalid")
	}
}

func TestUserPatchApply(t *testing.T) {
	u := NewUser("Ada", ExperienceBeginner)
	u.TotalPracticeMinutes = 10

	name := "Grace"
	minutes := 25
	UserPatch{Name: &name, TotalPracticeMinutes: &minutes}.Apply(u)

	if u.Name != "Grace" {
		t.Errorf("Name = %s, want Grace", u.Name)
	}
	if u.TotalPracticeMinutes != 25 {
		t.Errorf("TotalPracticeMinutes = %d, want 25", u.TotalPracticeMinutes)
	}
	if u.ExperienceLevel != ExperienceBeginner {
		t.Errorf("ExperienceLevel changed to %s", u.ExperienceLevel)
	}
}

func TestUserPatchNullVocalRangeClears(t *testing.T) {
	u := NewUser("Ada", ExperienceBeginner).WithVocalRange(RangeTenor)

	var keep UserPatch
	if err := json.Unmarshal([]byte(`{"streak": 2}`), &keep); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if keep.ClearVocalRange {
		t.Error("absent vocalRange should not drop")
	}
	keep.Apply(u)
	if u.VocalRange == nil || *u.VocalRange != RangeTenor {
		t.Errorf("vocal range = %v, want tenor", u.VocalRange)
	}

	var drop UserPatch
	if err := json.Unmarshal([]byte(`{"vocalRange": null}`), &drop); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !drop.ClearVocalRange {
		t.Fatal("explicit null should clear")
	}
	drop.Apply(u)
	if u.VocalRange != nil {
		t.Errorf("vocal range = %v, want nil", *u.VocalRange)
	}

	var set UserPatch
	if err := json.Unmarshal([]byte(`{"vocalRange": "bass"}`), &set); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	set.Apply(u)
	if u.VocalRange == nil || *u.VocalRange != RangeBass {
		t.Errorf("vocal range = %v, want bass", u.VocalRange)
	}
}

func TestUserCloneIsIndependent(t *testing.T) {
	u := NewUser("Ada", ExperienceBeginner).WithVocalRange(RangeAlto)
	c := u.Clone()

	*c.VocalRange = RangeBass
	c.Name = "changed"

	if *u.VocalRange != RangeAlto {
		t.Errorf("original vocal range mutated to %s", *u.VocalRange)
	}
	if u.Name != "Ada" {
		t.Errorf("original name mutated to %s", u.Name)
	}
}

func TestProgressComplete(t *testing.T) {
	p := NewExerciseProgress(uuid.New(), uuid.New())
	if p.Completed {
		t.Fatal("new progress should not be completed")
	}

	score := 82.0
	now := time.Now()
	p.Complete(now, Scores{Overall: &score})

	if !p.Completed {
		t.Error("expected completed")
	}
	if p.CompletedAt == nil || !p.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", p.CompletedAt, now)
	}
	if p.OverallScore == nil || *p.OverallScore != 82 {
		t.Errorf("OverallScore = %v, want 82", p.OverallScore)
	}
	if p.PitchScore != nil {
		t.Error("expected skipped pitch score to stay nil")
	}
}

func TestCompletionPatchReplacesAllScores(t *testing.T) {
	first, second := 90.0, 40.0
	fb := "nice"
	p := NewExerciseProgress(uuid.New(), uuid.New()).
		Complete(time.Now(), Scores{Pitch: &first, Overall: &first, Feedback: &fb})

	CompletionPatch(time.Now(), Scores{Overall: &second}).Apply(p)

	if p.PitchScore != nil {
		t.Errorf("PitchScore = %v, want nil after re-attempt", *p.PitchScore)
	}
	if p.Feedback != nil {
		t.Errorf("Feedback = %v, want nil after re-attempt", *p.Feedback)
	}
	if *p.OverallScore != 40 {
		t.Errorf("OverallScore = %v, want 40", *p.OverallScore)
	}
}

func TestRoutineIncludes(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	r := NewPracticeRoutine(uuid.New(), 1, 60, []uuid.UUID{a})

	if !r.Includes(a) {
		t.Error("expected routine to include a")
	}
	if r.Includes(b) {
		t.Error("expected routine to not include b")
	}

	minutes := 12
	RoutinePatch{CompletedMinutes: &minutes}.Apply(r)
	if r.CompletedMinutes != 12 || r.GoalMinutes != 60 {
		t.Errorf("routine = %+v", r)
	}
}

func TestGetPhase(t *testing.T) {
	p, ok := GetPhase(2)
	if !ok {
		t.Fatal("expected phase 2")
	}
	if p.Name != "Technique & Expression" {
		t.Errorf("Name = %s", p.Name)
	}
	if _, ok := GetPhase(4); ok {
		t.Error("expected no phase 4")
	}
	if FirstWeekOfPhase(3) != 9 {
		t.Errorf("FirstWeekOfPhase(3) = %d, want 9", FirstWeekOfPhase(3))
	}
}
