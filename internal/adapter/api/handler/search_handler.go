package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"rentitforward/internal/usecase"
	"rentitforward/pkg/response"
)

type SearchHandler struct {
	searchUseCase *usecase.SearchUseCase
}

func NewSearchHandler(searchUseCase *usecase.SearchUseCase) *SearchHandler {
	return &SearchHandler{
		searchUseCase: searchUseCase,
	}
}

// Suggestions backs the search box typeahead. Recent searches come in
// comma-separated because the endpoint is a GET.
func (h *SearchHandler) Suggestions(c echo.Context) error {
	query := c.QueryParam("q")

	var recent []string
	if raw := c.QueryParam("recent"); raw != "" {
		for _, item := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				recent = append(recent, trimmed)
			}
		}
	}

	suggestions := h.searchUseCase.Suggestions(c.Request().Context(), usecase.SuggestionsInput{
		Query:          query,
		RecentSearches: recent,
	})

	corrected, hasCorrection := h.searchUseCase.DidYouMean(query)
	result := map[string]interface{}{
		"suggestions": suggestions,
	}
	if hasCorrection {
		result["did_you_mean"] = corrected
	}
	return response.Success(c, result)
}
