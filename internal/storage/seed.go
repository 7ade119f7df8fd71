// ABOUTME: Built-in exercise and song catalog seeded into every new store.
// ABOUTME: Catalog IDs are derived from names so re-seeding and imports stay stable.
package storage

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/singsmart/internal/models"
)

// catalogNamespace scopes the name-derived catalog IDs.
var catalogNamespace = uuid.MustParse("6f1c2d0e-5b7a-4c1e-9a53-3e8d2b4f7c10")

// CatalogID returns the stable ID of a catalog entry named name.
func CatalogID(name string) uuid.UUID {
	return uuid.NewSHA1(catalogNamespace, []byte(name))
}

// Seed writes the built-in catalog into r. It does nothing when r already has exercises.
func Seed(r Repository) error {
	existing, err := r.ListExercises()
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, e := range seedExercises() {
		if err := r.CreateExercise(e); err != nil {
			return fmt.Errorf("seed exercise %q: %w", e.Name, err)
		}
	}
	for _, s := range seedSongs() {
		if err := r.CreateSong(s); err != nil {
			return fmt.Errorf("seed song %q: %w", s.Title, err)
		}
	}
	return nil
}

func exercise(phase int, name, description string, category models.Category, difficulty models.Difficulty, minutes int, instructions string) *models.Exercise {
	return &models.Exercise{
		ID:              CatalogID("exercise:" + name),
		Name:            name,
		Description:     description,
		Phase:           phase,
		Category:        category,
		Difficulty:      difficulty,
		DurationMinutes: minutes,
		Instructions:    instructions,
	}
}

func seedExercises() []*models.Exercise {
	return []*models.Exercise{
		// Phase 1: foundations
		exercise(1, "Lip Trill Warm-Up",
			"Relax your lips and produce a 'brrr' sound while sliding up and down your range",
			models.CategoryWarmup, models.DifficultyEasy, 3,
			"1. Take a deep breath\n2. Relax your lips completely\n3. Exhale while making a 'brrr' sound\n4. Slide from low to high and back down\n5. Repeat 5 times"),
		exercise(1, "Humming Scale",
			"Gently hum through a major scale to warm up your voice",
			models.CategoryWarmup, models.DifficultyEasy, 4,
			"1. Start on a comfortable low note\n2. Hum up the major scale (do-re-mi-fa-sol-la-ti-do)\n3. Come back down\n4. Move up a half step and repeat"),
		exercise(1, "Breath Support Exercise",
			"Build diaphragmatic breathing strength for better vocal support",
			models.CategoryTechnique, models.DifficultyMedium, 5,
			"1. Lie flat on your back\n2. Place a book on your belly\n3. Breathe in deeply, raising the book\n4. Exhale slowly with a 'sss' sound\n5. Maintain even pressure for 10-15 seconds\n6. Repeat 8 times"),
		exercise(1, "Single Pitch Accuracy",
			"Train your ear and voice to match single pitches accurately",
			models.CategoryTechnique, models.DifficultyEasy, 5,
			"1. Listen to the reference pitch\n2. Match it with your voice\n3. Hold for 3 seconds\n4. Check your accuracy\n5. Adjust if needed and try again"),
		exercise(1, "Vowel Clarity Exercise",
			"Practice clear vowel formation for better tone quality",
			models.CategoryTechnique, models.DifficultyMedium, 4,
			"1. Sing 'Ah-Eh-Ee-Oh-Oo' on a single comfortable pitch\n2. Keep jaw relaxed and open\n3. Transition smoothly between vowels\n4. Repeat on different pitches"),

		// Phase 2: expression
		exercise(2, "Dynamic Control",
			"Practice crescendo and decrescendo for expressive singing",
			models.CategoryTechnique, models.DifficultyMedium, 5,
			"1. Start on a comfortable pitch very softly\n2. Gradually increase volume over 5 seconds\n3. Hold at full volume for 2 seconds\n4. Decrease volume back to soft over 5 seconds\n5. Repeat on different pitches"),
		exercise(2, "Phrase Shaping",
			"Learn to shape musical phrases with emotion",
			models.CategoryTechnique, models.DifficultyHard, 6,
			"1. Choose a simple melody\n2. Identify the emotional peak of the phrase\n3. Build intensity toward the peak\n4. Release tension after the peak\n5. Practice with different emotions"),
		exercise(2, "Style Exploration",
			"Experiment with different vocal styles and genres",
			models.CategoryTechnique, models.DifficultyMedium, 7,
			"1. Choose a simple song\n2. Sing it in pop style\n3. Try it in jazz style with improvisation\n4. Attempt a classical approach\n5. Notice how each style changes your technique"),
		exercise(2, "Vibrato Development",
			"Develop natural vibrato for richer vocal tone",
			models.CategoryTechnique, models.DifficultyHard, 5,
			"1. Sing a sustained comfortable pitch\n2. Keep throat and jaw relaxed\n3. Allow natural oscillation to develop\n4. Don't force the vibrato\n5. Practice on different pitches"),

		// Phase 3: performance
		exercise(3, "Stage Presence",
			"Build confidence with virtual audience practice",
			models.CategoryPerformance, models.DifficultyMedium, 8,
			"1. Stand in front of a mirror\n2. Imagine an audience before you\n3. Perform your song with eye contact\n4. Use natural gestures\n5. Practice entering and exiting the stage"),
		exercise(3, "Performance Run-Through",
			"Complete performance simulation with feedback",
			models.CategoryPerformance, models.DifficultyHard, 10,
			"1. Prepare your performance song\n2. Warm up with light exercises\n3. Perform the complete song\n4. Receive virtual audience feedback\n5. Review and improve"),
		exercise(3, "Microphone Technique",
			"Learn proper microphone handling and positioning",
			models.CategoryPerformance, models.DifficultyMedium, 6,
			"1. Hold microphone at 45-degree angle\n2. Keep consistent distance (2-3 inches)\n3. Pull back on loud notes\n4. Move closer for soft passages\n5. Avoid covering the mic head"),
		exercise(3, "Recovery Techniques",
			"Learn to recover gracefully from performance mistakes",
			models.CategoryPerformance, models.DifficultyHard, 5,
			"1. Intentionally make a small mistake while singing\n2. Keep going without stopping\n3. Maintain your stage presence\n4. Refocus on the next phrase\n5. Practice until recovery feels natural"),
	}
}

func song(title, artist, genre string, difficulty models.Difficulty, vocalRange string, bpm int, key string) *models.Song {
	return &models.Song{
		ID:         CatalogID("song:" + title),
		Title:      title,
		Artist:     artist,
		Genre:      genre,
		Difficulty: difficulty,
		VocalRange: vocalRange,
		BPM:        bpm,
		Key:        key,
	}
}

func seedSongs() []*models.Song {
	return []*models.Song{
		song("Yesterday", "The Beatles", "Pop", models.DifficultyEasy, "tenor", 76, "F major"),
		song("Someone Like You", "Adele", "Pop", models.DifficultyMedium, "alto", 68, "A major"),
		song("Bohemian Rhapsody", "Queen", "Rock", models.DifficultyHard, "tenor", 72, "Bb major"),
		song("Hallelujah", "Leonard Cohen", "Folk", models.DifficultyMedium, "baritone", 56, "C major"),
		song("Stay With Me", "Sam Smith", "Soul", models.DifficultyMedium, "tenor", 84, "Am"),
		song("Shallow", "Lady Gaga", "Pop", models.DifficultyMedium, "alto", 96, "G major"),
		song("Take Me Home", "John Denver", "Country", models.DifficultyEasy, "baritone", 82, "A major"),
		song("Imagine", "John Lennon", "Pop", models.DifficultyEasy, "tenor", 76, "C major"),
		song("Rolling in the Deep", "Adele", "Pop", models.DifficultyHard, "alto", 105, "C minor"),
		song("Bridge Over Troubled Water", "Simon & Garfunkel", "Folk", models.DifficultyHard, "tenor", 82, "Eb major"),
		song("Amazing Grace", "Traditional", "Gospel", models.DifficultyEasy, "soprano", 60, "G major"),
		song("All of Me", "John Legend", "R&B", models.DifficultyMedium, "tenor", 63, "Ab major"),
	}
}
