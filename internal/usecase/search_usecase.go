package usecase

import (
	"context"
	"strings"
	"time"

	"rentitforward/internal/domain/entity"
	"rentitforward/internal/domain/repository"
	"rentitforward/internal/domain/service"
	"rentitforward/pkg/logger"
)

// SearchUseCase serves typeahead suggestions and spelling help for the
// listing search box. Suggestions are cached briefly per normalized
// query; recent searches are client-scoped and passed through.
type SearchUseCase struct {
	listingRepo repository.ListingRepository
	config      service.SuggestionConfig
	cache       *service.SuggestionCache
}

func NewSearchUseCase(listingRepo repository.ListingRepository) *SearchUseCase {
	config := service.DefaultSuggestionConfig()
	return &SearchUseCase{
		listingRepo: listingRepo,
		config:      config,
		cache:       service.NewSuggestionCache(config.CacheTTL),
	}
}

type SuggestionsInput struct {
	Query          string   `json:"query" validate:"required"`
	RecentSearches []string `json:"recent_searches,omitempty" validate:"max=20"`
}

func (uc *SearchUseCase) Suggestions(ctx context.Context, input SuggestionsInput) []service.Suggestion {
	normalized := service.NormalizeSearchText(input.Query)
	if len(normalized) < uc.config.MinChars {
		return nil
	}

	// Recent searches are per-client, so only plain queries are cached.
	cacheable := len(input.RecentSearches) == 0
	if cacheable {
		if cached, ok := uc.cache.Get(normalized); ok {
			return cached
		}
	}

	suggestions := service.GenerateSuggestions(input.Query, uc.config, service.SuggestionContext{
		RecentSearches: input.RecentSearches,
		ExistingItems:  uc.activeTitles(ctx, normalized),
	})

	if cacheable {
		uc.cache.Set(normalized, suggestions)
	}
	return suggestions
}

// DidYouMean returns a corrected query when a known misspelling is
// detected, and reports whether a correction applies.
func (uc *SearchUseCase) DidYouMean(query string) (string, bool) {
	return service.SpellingCorrection(query)
}

// activeTitles samples live listing titles matching the query prefix so
// completions reflect real inventory.
func (uc *SearchUseCase) activeTitles(ctx context.Context, normalized string) []string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	listings, _, err := uc.listingRepo.SearchByTitle(ctx, normalized, map[string]interface{}{
		"status": entity.ListingStatusActive,
	}, "", 20, 0)
	if err != nil {
		logger.Debug("Title sampling failed for suggestions: %v", err)
		return nil
	}

	titles := make([]string, 0, len(listings))
	for _, listing := range listings {
		title := strings.TrimSpace(listing.Title)
		if title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}
