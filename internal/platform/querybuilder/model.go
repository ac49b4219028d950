package querybuilder

import "strings"

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// DirectionFor applies the domain convention: bigger stat is better, so every
// stat key sorts descending; A-Z name order is the exception.
func DirectionFor(sortKey string) SortDirection {
	if strings.TrimSpace(sortKey) == "name" {
		return SortAsc
	}
	return SortDesc
}

// Filter parameter names accepted by the listing endpoint.
const (
	FilterPosition       = "position"
	FilterPositionExact  = "position_exact"
	FilterCompetition    = "competition"
	FilterSquad          = "squad"
	FilterNation         = "nation"
	FilterAgeMin         = "age_min"
	FilterAgeMax         = "age_max"
	FilterGoalsMin       = "goals_min"
	FilterGoalsMax       = "goals_max"
	FilterAssistsMin     = "assists_min"
	FilterAssistsMax     = "assists_max"
	FilterMinMatches     = "min_matches"
	FilterMinMinutes     = "min_minutes"
	FilterTopPerformers  = "top_performers"
	FilterRegularPlayers = "regular_players"
)

// Filters maps a filter field to its constraint value. An absent or empty
// value means unconstrained; values are passed through as-is because the
// backend is authoritative for validation.
type Filters map[string]string

func (f Filters) Clone() Filters {
	if len(f) == 0 {
		return Filters{}
	}
	out := make(Filters, len(f))
	for key, value := range f {
		out[key] = value
	}
	return out
}

// Query is one search cycle's input, constructed fresh per trigger.
type Query struct {
	Text          string
	Filters       Filters
	SortKey       string
	SortDirection SortDirection
	Page          int `validate:"gte=1"`
	PageSize      int `validate:"gte=1,lte=100"`
}
