package soccerlens

import (
	"strings"

	"github.com/soccerlens/scout/internal/domain/catalog"
	"github.com/soccerlens/scout/internal/domain/player"
)

// Wire envelopes as served by the players API.

type listEnvelope struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []player.Player `json:"results"`
}

type leaderboardEnvelope struct {
	Stat       string          `json:"stat"`
	StatInfo   player.StatInfo `json:"stat_info"`
	Players    []player.Player `json:"players"`
	TotalCount int             `json:"total_count"`
}

type similarEnvelope struct {
	Player         player.Player   `json:"player"`
	SimilarPlayers []player.Player `json:"similar_players"`
	Method         string          `json:"method"`
	Limit          int             `json:"limit"`
	TotalFound     int             `json:"total_found"`
}

type errorEnvelope struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (e errorEnvelope) message() string {
	if msg := strings.TrimSpace(e.Error); msg != "" {
		return msg
	}
	return strings.TrimSpace(e.Detail)
}

// sortOptionsEnvelope covers both shapes the backend has served across
// versions: a flat all_options mapping keyed by sort key, and a categories
// mapping keyed by category name. Either alone is sufficient.
type sortOptionsEnvelope struct {
	Categories          map[string][]sortOptionItem `json:"categories"`
	AllOptions          map[string]sortOptionItem   `json:"all_options"`
	AvailableCategories []string                    `json:"available_categories"`
}

type sortOptionItem struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// parseSortOptions resolves the tagged union: shape A (all_options, key from
// the map key) first, else shape B (categories, key from the explicit field
// falling back to a slugified display name), else no catalog at all.
func parseSortOptions(envelope sortOptionsEnvelope) (catalog.Catalog, bool) {
	if len(envelope.AllOptions) > 0 {
		options := make([]catalog.SortOption, 0, len(envelope.AllOptions))
		for key, item := range envelope.AllOptions {
			options = append(options, catalog.SortOption{
				Key:         key,
				DisplayName: item.DisplayName,
				Description: item.Description,
				Category:    item.Category,
			})
		}
		return catalog.New(options), true
	}

	if len(envelope.Categories) > 0 {
		options := make([]catalog.SortOption, 0, 32)
		for category, items := range envelope.Categories {
			for _, item := range items {
				key := strings.TrimSpace(item.Key)
				if key == "" {
					key = catalog.Slug(item.DisplayName)
				}
				options = append(options, catalog.SortOption{
					Key:         key,
					DisplayName: item.DisplayName,
					Description: item.Description,
					Category:    category,
				})
			}
		}
		return catalog.New(options), true
	}

	return catalog.Catalog{}, false
}
