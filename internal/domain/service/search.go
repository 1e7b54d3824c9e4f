package service

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

type SuggestionType string

const (
	SuggestionQueryCompletion SuggestionType = "query_completion"
	SuggestionCategory        SuggestionType = "category"
	SuggestionItemName        SuggestionType = "item_name"
	SuggestionBrand           SuggestionType = "brand"
	SuggestionRecentSearch    SuggestionType = "recent_search"
)

type Suggestion struct {
	Text       string         `json:"text"`
	Type       SuggestionType `json:"type"`
	Category   string         `json:"category,omitempty"`
	Icon       string         `json:"icon,omitempty"`
	Confidence float64        `json:"confidence"`
}

// SuggestionConfig tunes the predictive-text pipeline.
type SuggestionConfig struct {
	MinChars       int
	MaxSuggestions int
	CacheTTL       time.Duration
}

func DefaultSuggestionConfig() SuggestionConfig {
	return SuggestionConfig{
		MinChars:       2,
		MaxSuggestions: 8,
		CacheTTL:       5 * time.Minute,
	}
}

type searchCategory struct {
	ID       string
	Name     string
	Icon     string
	Keywords []string
}

var searchCategories = []searchCategory{
	{"tools_diy_equipment", "Tools & DIY Equipment", "🔧", []string{"drill", "saw", "hammer", "screwdriver", "tool"}},
	{"cameras_photography_gear", "Cameras & Photography Gear", "📷", []string{"camera", "lens", "tripod", "flash", "photography"}},
	{"event_party_equipment", "Event & Party Equipment", "🎉", []string{"tent", "speaker", "microphone", "projector", "party"}},
	{"camping_outdoor_gear", "Camping & Outdoor Gear", "🏕️", []string{"tent", "sleeping bag", "hiking", "camping", "outdoor"}},
	{"tech_electronics", "Tech & Electronics", "📱", []string{"laptop", "phone", "tablet", "electronics", "tech"}},
	{"vehicles_transport", "Vehicles & Transport", "🚗", []string{"car", "bike", "scooter", "vehicle", "transport"}},
	{"home_garden_appliances", "Home & Garden Appliances", "🏡", []string{"appliance", "garden", "home", "kitchen", "cleaning"}},
	{"sports_fitness_equipment", "Sports & Fitness Equipment", "🏃", []string{"fitness", "sports", "gym", "exercise", "workout"}},
	{"musical_instruments_gear", "Musical Instruments & Gear", "🎸", []string{"guitar", "piano", "drum", "music", "instrument"}},
	{"costumes_props", "Costumes & Props", "🎭", []string{"costume", "props", "theater", "halloween", "dress up"}},
	{"maker_craft_supplies", "Maker & Craft Supplies", "✂️", []string{"craft", "art", "supplies", "making", "creative"}},
}

type commonItem struct {
	Name     string
	Keywords []string
	Category string
}

var commonItems = []commonItem{
	{"Camera", []string{"dslr", "mirrorless", "photography", "canon", "nikon"}, "cameras_photography_gear"},
	{"Drill", []string{"power drill", "cordless", "electric", "dewalt", "milwaukee"}, "tools_diy_equipment"},
	{"Laptop", []string{"computer", "macbook", "pc", "gaming", "work"}, "tech_electronics"},
	{"Tent", []string{"camping", "outdoor", "shelter", "hiking", "backpacking"}, "camping_outdoor_gear"},
	{"Projector", []string{"presentation", "movie", "screen", "display", "home theater"}, "event_party_equipment"},
	{"Guitar", []string{"acoustic", "electric", "bass", "music", "strings"}, "musical_instruments_gear"},
	{"Bike", []string{"bicycle", "cycling", "mountain", "road", "electric"}, "vehicles_transport"},
	{"Lawnmower", []string{"lawn", "grass", "mowing", "garden", "yard"}, "home_garden_appliances"},
	{"Treadmill", []string{"running", "exercise", "cardio", "fitness", "gym"}, "sports_fitness_equipment"},
	{"Sewing Machine", []string{"craft", "fabric", "tailoring", "quilting", "making"}, "maker_craft_supplies"},
}

var popularBrands = []string{
	"Apple", "Canon", "Nikon", "Sony", "Dewalt", "Milwaukee", "Black & Decker",
	"Nike", "Adidas", "GoPro", "Bose", "Samsung", "LG", "Honda", "Toyota",
	"Coleman", "North Face", "Patagonia", "REI", "Fender", "Gibson", "Yamaha",
}

var spellingCorrections = map[string]string{
	"camara":     "camera",
	"photgraphy": "photography",
	"equipement": "equipment",
	"exersice":   "exercise",
	"instrament": "instrument",
	"drille":     "drill",
	"laptoop":    "laptop",
	"guitarre":   "guitar",
}

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)
var whitespacePattern = regexp.MustCompile(`\s+`)

// NormalizeSearchText lowercases, trims, strips punctuation and
// collapses runs of whitespace.
func NormalizeSearchText(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	normalized = nonWordPattern.ReplaceAllString(normalized, "")
	return whitespacePattern.ReplaceAllString(normalized, " ")
}

// StringSimilarity scores two strings in [0, 1]. Substring containment
// scores by length ratio; otherwise it is 1 minus the normalized
// Levenshtein distance.
func StringSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	if strings.Contains(a, b) || strings.Contains(b, a) {
		longer, shorter := a, b
		if len(b) > len(a) {
			longer, shorter = b, a
		}
		return float64(len(shorter)) / float64(len(longer))
	}

	ra := []rune(a)
	rb := []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return 1 - float64(prev[len(rb)])/float64(maxLen)
}

// TextSuggestions fuzzy-matches the query against caller-supplied data
// such as known listing titles.
func TextSuggestions(query string, existing []string, maxSuggestions int) []Suggestion {
	if len(query) < 2 {
		return nil
	}
	normalized := NormalizeSearchText(query)
	var suggestions []Suggestion
	for _, item := range existing {
		similarity := StringSimilarity(normalized, NormalizeSearchText(item))
		if similarity > 0.3 {
			suggestions = append(suggestions, Suggestion{
				Text:       item,
				Type:       SuggestionQueryCompletion,
				Confidence: similarity,
			})
		}
	}
	return topByConfidence(suggestions, maxSuggestions)
}

// CategorySuggestions matches the query against category names first,
// then keywords at a small confidence penalty.
func CategorySuggestions(query string) []Suggestion {
	if len(query) < 2 {
		return nil
	}
	normalized := NormalizeSearchText(query)
	var suggestions []Suggestion
	for _, category := range searchCategories {
		nameSimilarity := StringSimilarity(normalized, NormalizeSearchText(category.Name))
		if nameSimilarity > 0.4 {
			suggestions = append(suggestions, Suggestion{
				Text:       category.Name,
				Type:       SuggestionCategory,
				Category:   category.ID,
				Icon:       category.Icon,
				Confidence: nameSimilarity,
			})
			continue
		}
		for _, keyword := range category.Keywords {
			keywordSimilarity := StringSimilarity(normalized, NormalizeSearchText(keyword))
			if keywordSimilarity > 0.6 {
				suggestions = append(suggestions, Suggestion{
					Text:       category.Name,
					Type:       SuggestionCategory,
					Category:   category.ID,
					Icon:       category.Icon,
					Confidence: keywordSimilarity * 0.8,
				})
				break
			}
		}
	}
	return topByConfidence(suggestions, 3)
}

// ItemSuggestions matches the query against common item names and
// their keywords.
func ItemSuggestions(query string) []Suggestion {
	if len(query) < 2 {
		return nil
	}
	normalized := NormalizeSearchText(query)
	var suggestions []Suggestion
	for _, item := range commonItems {
		nameSimilarity := StringSimilarity(normalized, NormalizeSearchText(item.Name))
		if nameSimilarity > 0.4 {
			suggestions = append(suggestions, Suggestion{
				Text:       item.Name,
				Type:       SuggestionItemName,
				Category:   item.Category,
				Icon:       categoryIcon(item.Category),
				Confidence: nameSimilarity,
			})
			continue
		}
		for _, keyword := range item.Keywords {
			keywordSimilarity := StringSimilarity(normalized, NormalizeSearchText(keyword))
			if keywordSimilarity > 0.7 {
				suggestions = append(suggestions, Suggestion{
					Text:       item.Name,
					Type:       SuggestionItemName,
					Category:   item.Category,
					Icon:       categoryIcon(item.Category),
					Confidence: keywordSimilarity * 0.9,
				})
				break
			}
		}
	}
	return topByConfidence(suggestions, 4)
}

// BrandSuggestions matches the query against known brand names.
func BrandSuggestions(query string) []Suggestion {
	if len(query) < 2 {
		return nil
	}
	normalized := NormalizeSearchText(query)
	var suggestions []Suggestion
	for _, brand := range popularBrands {
		similarity := StringSimilarity(normalized, NormalizeSearchText(brand))
		if similarity > 0.4 {
			suggestions = append(suggestions, Suggestion{
				Text:       brand,
				Type:       SuggestionBrand,
				Icon:       "🏷️",
				Confidence: similarity,
			})
		}
	}
	return topByConfidence(suggestions, 3)
}

// SuggestionContext carries optional per-user inputs.
type SuggestionContext struct {
	RecentSearches []string
	ExistingItems  []string
}

// GenerateSuggestions runs the full pipeline: category, item and brand
// matching, fuzzy completion over existing titles, matching recent
// searches, then dedupe and rank.
func GenerateSuggestions(query string, config SuggestionConfig, ctx SuggestionContext) []Suggestion {
	if config.MinChars <= 0 {
		config = DefaultSuggestionConfig()
	}
	if len(query) < config.MinChars {
		return nil
	}

	var all []Suggestion
	all = append(all, CategorySuggestions(query)...)
	all = append(all, ItemSuggestions(query)...)
	all = append(all, BrandSuggestions(query)...)
	if len(ctx.ExistingItems) > 0 {
		all = append(all, TextSuggestions(query, ctx.ExistingItems, 3)...)
	}

	normalized := NormalizeSearchText(query)
	matched := 0
	for _, recent := range ctx.RecentSearches {
		if matched >= 2 {
			break
		}
		if strings.Contains(NormalizeSearchText(recent), normalized) {
			all = append(all, Suggestion{
				Text:       recent,
				Type:       SuggestionRecentSearch,
				Icon:       "🕒",
				Confidence: 0.8,
			})
			matched++
		}
	}

	return topByConfidence(dedupeSuggestions(all), config.MaxSuggestions)
}

// SpellingCorrection fixes common misspellings word by word. The
// second return is false when nothing changed.
func SpellingCorrection(query string) (string, bool) {
	if len(query) < 3 {
		return "", false
	}
	words := strings.Fields(strings.ToLower(query))
	corrected := false
	for i, word := range words {
		if fixed, ok := spellingCorrections[word]; ok {
			words[i] = fixed
			corrected = true
		}
	}
	if !corrected {
		return "", false
	}
	return strings.Join(words, " "), true
}

// SuggestionCache is a TTL cache keyed by lowercased query.
type SuggestionCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	data    []Suggestion
	expires time.Time
}

func NewSuggestionCache(ttl time.Duration) *SuggestionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SuggestionCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *SuggestionCache) Set(key string, suggestions []Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[strings.ToLower(key)] = cacheEntry{
		data:    suggestions,
		expires: time.Now().Add(c.ttl),
	}
}

func (c *SuggestionCache) Get(key string) ([]Suggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[strings.ToLower(key)]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expires) {
		delete(c.entries, strings.ToLower(key))
		return nil, false
	}
	return entry.data, true
}

func (c *SuggestionCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

func (c *SuggestionCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func dedupeSuggestions(suggestions []Suggestion) []Suggestion {
	seen := make(map[string]bool, len(suggestions))
	unique := suggestions[:0:0]
	for _, s := range suggestions {
		key := strings.ToLower(s.Text)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, s)
		}
	}
	return unique
}

func topByConfidence(suggestions []Suggestion, limit int) []Suggestion {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

func categoryIcon(id string) string {
	for _, category := range searchCategories {
		if category.ID == id {
			return category.Icon
		}
	}
	return ""
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
