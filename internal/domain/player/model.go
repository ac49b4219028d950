package player

import "strings"

// Player is an immutable statistics snapshot as served by the SoccerLens
// backend. The client never mutates it; re-fetching is the only refresh path.
type Player struct {
	ID          int64   `json:"id"`
	Rank        int     `json:"rank,omitempty"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	Squad       string  `json:"squad"`
	Competition string  `json:"competition"`
	Nation      string  `json:"nation"`
	Age         float64 `json:"age"`
	BornYear    int     `json:"born_year,omitempty"`

	// Playing time
	MatchesPlayed  int     `json:"matches_played"`
	Starts         int     `json:"starts"`
	Minutes        int     `json:"minutes"`
	MinutesPer90   float64 `json:"minutes_per_90"`
	MinutesPerGame float64 `json:"minutes_per_game"`

	// Goals and assists
	Goals                 int     `json:"goals"`
	Assists               int     `json:"assists"`
	GoalsAssists          int     `json:"goals_assists"`
	GoalsMinusPenalties   int     `json:"goals_minus_penalties"`
	PenaltiesScored       int     `json:"penalties_scored"`
	PenaltiesAttempted    int     `json:"penalties_attempted"`
	GoalsPer90            float64 `json:"goals_per_90"`
	AssistsPer90          float64 `json:"assists_per_90"`
	GoalContributionPer90 float64 `json:"goal_contribution_per_90"`

	// Discipline
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`

	// Advanced attacking
	ExpectedGoals           float64 `json:"expected_goals"`
	ExpectedGoalsNonPenalty float64 `json:"expected_goals_non_penalty,omitempty"`
	ExpectedAssists         float64 `json:"expected_assists"`

	// Shooting
	Shots                   int     `json:"shots"`
	ShotsOnTarget           int     `json:"shots_on_target"`
	ShotsOnTargetPercentage float64 `json:"shots_on_target_percentage"`
	ShotsPer90              float64 `json:"shots_per_90"`
	ShotsOnTargetPer90      float64 `json:"shots_on_target_per_90"`

	// Passing
	PassesCompleted          int     `json:"passes_completed"`
	PassesAttempted          int     `json:"passes_attempted"`
	PassCompletionPercentage float64 `json:"pass_completion_percentage"`
	KeyPasses                int     `json:"key_passes"`
	ProgressivePasses        int     `json:"progressive_passes"`
	ProgressiveReceptions    int     `json:"progressive_receptions"`

	// Defending
	Tackles       int `json:"tackles"`
	TacklesWon    int `json:"tackles_won"`
	Interceptions int `json:"interceptions"`
	Blocks        int `json:"blocks"`
	Clearances    int `json:"clearances"`

	// Possession
	Touches                  int     `json:"touches"`
	DribblesAttempted        int     `json:"dribbles_attempted"`
	DribblesSuccessful       int     `json:"dribbles_successful"`
	DribbleSuccessPercentage float64 `json:"dribble_success_percentage"`
	ProgressiveCarries       int     `json:"progressive_carries"`

	// Goalkeeper-only, absent for outfield players.
	GoalsAgainst      *float64 `json:"goals_against"`
	GoalsAgainstPer90 *float64 `json:"goals_against_per_90"`
	ShotsFaced        *int     `json:"shots_faced"`
	Saves             *int     `json:"saves"`
	SavePercentage    *float64 `json:"save_percentage"`
	CleanSheets       *int     `json:"clean_sheets"`

	// Populated only on similarity results.
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
}

func (p Player) IsGoalkeeper() bool {
	return strings.Contains(p.Position, "GK")
}

// Page is one page of listing results. Item order defines on-screen rank.
type Page struct {
	Items      []Player
	TotalCount int
}

// Leaderboard is a backend-ranked top-N list for one named statistic.
type Leaderboard struct {
	Stat       string
	StatInfo   StatInfo
	Players    []Player
	TotalCount int
}

// StatInfo describes the statistic a leaderboard is ranked by.
type StatInfo struct {
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// SimilarResult is the backend's similarity ranking for one reference player.
// The ranking method itself is opaque to the client.
type SimilarResult struct {
	Player     Player
	Similar    []Player
	Method     string
	Limit      int
	TotalFound int
}

// Similarity methods accepted by the backend.
const (
	MethodStatistical = "statistical"
	MethodNLP         = "nlp"
	MethodHybrid      = "hybrid"
)

var AllMethods = map[string]struct{}{
	MethodStatistical: {},
	MethodNLP:         {},
	MethodHybrid:      {},
}

func ValidMethod(method string) bool {
	_, ok := AllMethods[strings.ToLower(strings.TrimSpace(method))]
	return ok
}
