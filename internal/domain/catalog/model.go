package catalog

import (
	"sort"
	"strings"
)

// SortOption is one sortable field advertised by the backend. The catalog is
// fetched once per screen mount and treated as read-only for the session.
type SortOption struct {
	Key         string `json:"key"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Catalog holds every advertised sort option, keyed and grouped.
type Catalog struct {
	Options    []SortOption
	Categories []string
}

func (c Catalog) Empty() bool {
	return len(c.Options) == 0
}

func (c Catalog) Lookup(key string) (SortOption, bool) {
	key = strings.TrimSpace(key)
	for _, option := range c.Options {
		if option.Key == key {
			return option, true
		}
	}
	return SortOption{}, false
}

func (c Catalog) ByCategory(category string) []SortOption {
	out := make([]SortOption, 0, len(c.Options))
	for _, option := range c.Options {
		if option.Category == category {
			out = append(out, option)
		}
	}
	return out
}

// New normalizes a raw option list into a Catalog with deterministic order.
func New(options []SortOption) Catalog {
	kept := make([]SortOption, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, option := range options {
		option.Key = strings.TrimSpace(option.Key)
		if option.Key == "" {
			continue
		}
		if _, dup := seen[option.Key]; dup {
			continue
		}
		seen[option.Key] = struct{}{}
		kept = append(kept, option)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Category != kept[j].Category {
			return kept[i].Category < kept[j].Category
		}
		return kept[i].Key < kept[j].Key
	})

	categories := make([]string, 0, 8)
	seenCat := make(map[string]struct{}, 8)
	for _, option := range kept {
		if option.Category == "" {
			continue
		}
		if _, dup := seenCat[option.Category]; dup {
			continue
		}
		seenCat[option.Category] = struct{}{}
		categories = append(categories, option.Category)
	}

	return Catalog{Options: kept, Categories: categories}
}

// Slug derives a fallback key from a display name when the backend omits an
// explicit key: "Goals per 90" -> "goals_per_90".
func Slug(displayName string) string {
	value := strings.ToLower(strings.TrimSpace(displayName))
	if value == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(value))
	lastUnderscore := true
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
