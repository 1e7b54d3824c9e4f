package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSearchText(t *testing.T) {
	assert.Equal(t, "camera lens", NormalizeSearchText("  Camera,  Lens!  "))
	assert.Equal(t, "drill", NormalizeSearchText("DRILL"))
	assert.Equal(t, "", NormalizeSearchText("   "))
}

func TestStringSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, StringSimilarity("camera", "camera"))
	assert.Equal(t, 0.0, StringSimilarity("", "camera"))

	// Containment scores by length ratio.
	assert.InDelta(t, 0.5, StringSimilarity("cam", "camera"), 0.001)

	// One edit apart.
	assert.InDelta(t, 5.0/6.0, StringSimilarity("camara", "camera"), 0.001)

	assert.Less(t, StringSimilarity("drill", "guitar"), 0.4)
}

func TestCategorySuggestions(t *testing.T) {
	suggestions := CategorySuggestions("camera")

	assert.NotEmpty(t, suggestions)
	assert.Equal(t, "Cameras & Photography Gear", suggestions[0].Text)
	assert.Equal(t, SuggestionCategory, suggestions[0].Type)
	assert.Equal(t, "cameras_photography_gear", suggestions[0].Category)

	assert.Nil(t, CategorySuggestions("c"))
}

func TestItemSuggestions(t *testing.T) {
	suggestions := ItemSuggestions("drill")

	assert.NotEmpty(t, suggestions)
	assert.Equal(t, "Drill", suggestions[0].Text)
	assert.Equal(t, SuggestionItemName, suggestions[0].Type)
}

func TestBrandSuggestions(t *testing.T) {
	suggestions := BrandSuggestions("canon")

	assert.NotEmpty(t, suggestions)
	assert.Equal(t, "Canon", suggestions[0].Text)
	assert.Equal(t, SuggestionBrand, suggestions[0].Type)
}

func TestGenerateSuggestions(t *testing.T) {
	config := DefaultSuggestionConfig()

	suggestions := GenerateSuggestions("camera", config, SuggestionContext{
		RecentSearches: []string{"camera tripod", "lawn mower"},
		ExistingItems:  []string{"Canon EOS Camera", "Camping Tent"},
	})

	assert.NotEmpty(t, suggestions)
	assert.LessOrEqual(t, len(suggestions), config.MaxSuggestions)

	// Results come back deduped and ranked.
	seen := make(map[string]bool)
	for i, s := range suggestions {
		assert.False(t, seen[s.Text], "duplicate suggestion %q", s.Text)
		seen[s.Text] = true
		if i > 0 {
			assert.GreaterOrEqual(t, suggestions[i-1].Confidence, s.Confidence)
		}
	}

	// Matching recent searches are included.
	var foundRecent bool
	for _, s := range suggestions {
		if s.Type == SuggestionRecentSearch {
			foundRecent = true
			assert.Equal(t, "camera tripod", s.Text)
		}
	}
	assert.True(t, foundRecent)

	assert.Nil(t, GenerateSuggestions("c", config, SuggestionContext{}))
}

func TestSpellingCorrection(t *testing.T) {
	corrected, changed := SpellingCorrection("camara lens")
	assert.True(t, changed)
	assert.Equal(t, "camera lens", corrected)

	_, changed = SpellingCorrection("camera lens")
	assert.False(t, changed)

	_, changed = SpellingCorrection("ca")
	assert.False(t, changed)
}

func TestSuggestionCache(t *testing.T) {
	cache := NewSuggestionCache(50 * time.Millisecond)
	suggestions := []Suggestion{{Text: "Camera", Type: SuggestionItemName, Confidence: 0.9}}

	cache.Set("Camera", suggestions)

	// Keys are case-insensitive.
	got, ok := cache.Get("camera")
	assert.True(t, ok)
	assert.Equal(t, suggestions, got)
	assert.Equal(t, 1, cache.Size())

	_, ok = cache.Get("missing")
	assert.False(t, ok)

	time.Sleep(60 * time.Millisecond)
	_, ok = cache.Get("camera")
	assert.False(t, ok)

	cache.Set("a", nil)
	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}
