// ABOUTME: User model with experience level, vocal range, and phase position.
// ABOUTME: Includes the partial-update patch type used by storage backends.
package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExperienceLevel is the self-reported singing experience chosen at onboarding.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

// AllExperienceLevels returns all valid experience levels.
var AllExperienceLevels = []ExperienceLevel{
	ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced,
}

// IsValidExperienceLevel checks if a string is a valid experience level.
func IsValidExperienceLevel(s string) bool {
	for _, l := range AllExperienceLevels {
		if string(l) == s {
			return true
		}
	}
	return false
}

// VocalRange is one of the five voice types.
type VocalRange string

const (
	RangeSoprano  VocalRange = "soprano"
	RangeAlto     VocalRange = "alto"
	RangeTenor    VocalRange = "tenor"
	RangeBaritone VocalRange = "baritone"
	RangeBass     VocalRange = "bass"
)

// AllVocalRanges returns all valid vocal ranges.
var AllVocalRanges = []VocalRange{
	RangeSoprano, RangeAlto, RangeTenor, RangeBaritone, RangeBass,
}

// IsValidVocalRange checks if a string is a valid vocal range (case-insensitive).
func IsValidVocalRange(s string) bool {
	for _, r := range AllVocalRanges {
		if strings.EqualFold(string(r), s) {
			return true
		}
	}
	return false
}

// User is the singer working through the program.
type User struct {
	ID                   uuid.UUID       `json:"id" yaml:"id"`
	Name                 string          `json:"name" yaml:"name"`
	ExperienceLevel      ExperienceLevel `json:"experienceLevel" yaml:"experience_level"`
	VocalRange           *VocalRange     `json:"vocalRange" yaml:"vocal_range,omitempty"`
	CurrentPhase         int             `json:"currentPhase" yaml:"current_phase"`
	CurrentWeek          int             `json:"currentWeek" yaml:"current_week"`
	TotalPracticeMinutes int             `json:"totalPracticeMinutes" yaml:"total_practice_minutes"`
	Streak               int             `json:"streak" yaml:"streak"`
	LastPracticedAt      *time.Time      `json:"lastPracticedAt" yaml:"last_practiced_at,omitempty"`
	CreatedAt            time.Time       `json:"createdAt" yaml:"created_at"`
}

// NewUser creates a User at the start of phase 1.
func NewUser(name string, level ExperienceLevel) *User {
	return &User{
		ID:              uuid.New(),
		Name:            name,
		ExperienceLevel: level,
		CurrentPhase:    1,
		CurrentWeek:     1,
		CreatedAt:       time.Now(),
	}
}

// WithVocalRange sets the vocal range.
func (u *User) WithVocalRange(r VocalRange) *User {
	u.VocalRange = &r
	return u
}

// WithPhase places the user at the first week of the given phase.
func (u *User) WithPhase(phase int) *User {
	u.CurrentPhase = phase
	u.CurrentWeek = FirstWeekOfPhase(phase)
	return u
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	c := *u
	if u.VocalRange != nil {
		r := *u.VocalRange
		c.VocalRange = &r
	}
	if u.LastPracticedAt != nil {
		t := *u.LastPracticedAt
		c.LastPracticedAt = &t
	}
	return &c
}

// UserPatch carries a partial user update. Nil fields are left untouched;
// ClearVocalRange removes the stored range.
type UserPatch struct {
	Name                 *string          `json:"name" validate:"omitempty,min=1"`
	ExperienceLevel      *ExperienceLevel `json:"experienceLevel" validate:"omitempty,oneof=beginner intermediate advanced"`
	VocalRange           *VocalRange      `json:"vocalRange" validate:"omitempty,oneof=soprano alto tenor baritone bass"`
	CurrentPhase         *int             `json:"currentPhase" validate:"omitempty,min=1,max=3"`
	CurrentWeek          *int             `json:"currentWeek" validate:"omitempty,min=1"`
	TotalPracticeMinutes *int             `json:"totalPracticeMinutes" validate:"omitempty,min=0"`
	Streak               *int             `json:"streak" validate:"omitempty,min=0"`
	LastPracticedAt      *time.Time       `json:"lastPracticedAt"`
	ClearVocalRange      bool             `json:"-"`
}

// UnmarshalJSON decodes a patch. An explicit "vocalRange": null sets
// ClearVocalRange.
func (p *UserPatch) UnmarshalJSON(data []byte) error {
	type plain UserPatch
	if err := json.Unmarshal(data, (*plain)(p)); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	if raw, ok := keys["vocalRange"]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		p.ClearVocalRange = true
	}
	return nil
}

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.ExperienceLevel != nil {
		u.ExperienceLevel = *p.ExperienceLevel
	}
	switch {
	case p.ClearVocalRange:
		u.VocalRange = nil
	case p.VocalRange != nil:
		r := *p.VocalRange
		u.VocalRange = &r
	}
	if p.CurrentPhase != nil {
		u.CurrentPhase = *p.CurrentPhase
	}
	if p.CurrentWeek != nil {
		u.CurrentWeek = *p.CurrentWeek
	}
	if p.TotalPracticeMinutes != nil {
		u.TotalPracticeMinutes = *p.TotalPracticeMinutes
	}
	if p.Streak != nil {
		u.Streak = *p.Streak
	}
	if p.LastPracticedAt != nil {
		t := *p.LastPracticedAt
		u.LastPracticedAt = &t
	}
}
