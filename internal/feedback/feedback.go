// ABOUTME: Simulated coaching feedback: suggestions, audience reactions, backing tracks.
// ABOUTME: Stands in for real audio analysis; every function is deterministic except Analyze.
package feedback

import (
	"math/rand"
	"strings"
)

// Suggestion thresholds. A score below the threshold triggers its tips.
const (
	PitchThreshold     = 80.0
	ToneThreshold      = 75.0
	BreathingThreshold = 70.0
)

// Suggestions returns coaching tips for the weakest areas of an analysis.
func Suggestions(pitch, tone, breathing float64) []string {
	var out []string
	if pitch < PitchThreshold {
		out = append(out,
			"Focus on listening to the target note before singing it",
			"Practice scales slowly to improve pitch accuracy")
	}
	if tone < ToneThreshold {
		out = append(out,
			"Try relaxing your jaw and throat for a more open tone",
			"Practice vowel modification exercises")
	}
	if breathing < BreathingThreshold {
		out = append(out,
			"Work on diaphragmatic breathing exercises",
			"Practice sustained notes to build breath control")
	}
	if len(out) == 0 {
		out = append(out,
			"Great progress! Keep practicing consistently",
			"Try challenging yourself with more difficult exercises")
	}
	return out
}

// Applause describes how loudly the virtual audience responds.
type Applause string

const (
	ApplauseLight           Applause = "light"
	ApplauseModerate        Applause = "moderate"
	ApplauseEnthusiastic    Applause = "enthusiastic"
	ApplauseStandingOvation Applause = "standing_ovation"
)

// Reaction is the virtual audience's response to a performance.
type Reaction struct {
	Reactions []string `json:"reactions"`
	Applause  Applause `json:"applauseLevel"`
	Feedback  string   `json:"feedback"`
}

// AudienceReaction maps a performance score to an audience response.
func AudienceReaction(score float64) Reaction {
	switch {
	case score >= 90:
		return Reaction{
			Reactions: []string{"Amazing!", "Incredible!", "Bravo!", "Encore!"},
			Applause:  ApplauseStandingOvation,
			Feedback:  "The audience is on their feet! What an incredible performance!",
		}
	case score >= 75:
		return Reaction{
			Reactions: []string{"Great job!", "Well done!", "Beautiful!"},
			Applause:  ApplauseEnthusiastic,
			Feedback:  "The audience loved your performance! Great energy and emotion.",
		}
	case score >= 60:
		return Reaction{
			Reactions: []string{"Nice!", "Good effort!", "Keep it up!"},
			Applause:  ApplauseModerate,
			Feedback:  "The audience appreciates your effort. Keep practicing!",
		}
	default:
		return Reaction{
			Reactions: []string{"Good start!", "You can do it!"},
			Applause:  ApplauseLight,
			Feedback:  "Every performance is a step forward. Keep working on your technique!",
		}
	}
}

// BackingTrackSeconds is the length of every generated practice track.
const BackingTrackSeconds = 180

var trackDescriptions = map[string]string{
	"pop":     "Upbeat pop instrumental with modern synths and drums",
	"rock":    "Driving rock backing with electric guitar and powerful drums",
	"jazz":    "Smooth jazz accompaniment with piano, bass, and brushed drums",
	"folk":    "Acoustic folk track with gentle guitar and subtle percussion",
	"soul":    "Soulful R&B backing with warm keys and groovy bass",
	"country": "Country-style backing with acoustic guitar and steel",
	"gospel":  "Inspirational gospel backing with organ and choir pads",
}

// Track describes a generated backing track.
type Track struct {
	TrackName   string `json:"trackName"`
	Genre       string `json:"genre"`
	BPM         int    `json:"bpm"`
	Key         string `json:"key"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

// BackingTrack describes a practice track for the given genre, tempo, and key.
func BackingTrack(genre string, bpm int, key string) Track {
	name := "Practice Track"
	if genre != "" {
		name = strings.ToUpper(genre[:1]) + genre[1:] + " " + name
	}
	desc, ok := trackDescriptions[strings.ToLower(genre)]
	if !ok {
		desc = "Custom practice backing track"
	}
	return Track{
		TrackName:   name,
		Genre:       genre,
		BPM:         bpm,
		Key:         key,
		Duration:    BackingTrackSeconds,
		Description: desc,
	}
}

// Analysis is a simulated scoring of one recording.
type Analysis struct {
	PitchAccuracy        float64
	ToneStability        float64
	BreathingConsistency float64
	OverallRating        float64
	Suggestions          []string
}

// Analyze produces plausible scores for a recording using rng.
// Pitch falls in 70-100, tone in 65-95, breathing in 60-95.
func Analyze(rng *rand.Rand) Analysis {
	pitch := rng.Float64()*30 + 70
	tone := rng.Float64()*30 + 65
	breathing := rng.Float64()*35 + 60
	return Analysis{
		PitchAccuracy:        pitch,
		ToneStability:        tone,
		BreathingConsistency: breathing,
		OverallRating:        (pitch + tone + breathing) / 3,
		Suggestions:          Suggestions(pitch, tone, breathing),
	}
}
