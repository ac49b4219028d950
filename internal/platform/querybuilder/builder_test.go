package querybuilder

import (
	"testing"
)

func TestDirectionFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key  string
		want SortDirection
	}{
		{"name", SortAsc},
		{" name ", SortAsc},
		{"goals", SortDesc},
		{"assists", SortDesc},
		{"expected_goals", SortDesc},
		{"", SortDesc},
	}
	for _, tc := range cases {
		if got := DirectionFor(tc.key); got != tc.want {
			t.Fatalf("DirectionFor(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestBuilderSearchWithSort(t *testing.T) {
	t.Parallel()

	got := Listing().Search("Kan").Sort("goals", "").Encode()
	want := "page=1&page_size=20&search=Kan&sort_by=goals&sort_order=desc"
	if got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestBuilderOmitsEmptyFilters(t *testing.T) {
	t.Parallel()

	values := Listing().
		Filter(FilterPosition, "FW").
		Filter(FilterCompetition, "").
		Filter(FilterNation, "   ").
		Filter("", "ignored").
		Values()

	if got := values.Get(FilterPosition); got != "FW" {
		t.Fatalf("position = %q, want FW", got)
	}
	if values.Has(FilterCompetition) {
		t.Fatalf("empty competition filter must be omitted, got %q", values.Get(FilterCompetition))
	}
	if values.Has(FilterNation) {
		t.Fatalf("blank nation filter must be omitted, got %q", values.Get(FilterNation))
	}
}

func TestBuilderOmitsSortWithoutKey(t *testing.T) {
	t.Parallel()

	values := Listing().Search("Haaland").Values()
	if values.Has("sort_by") || values.Has("sort_order") {
		t.Fatalf("sort parameters must be absent without a key, got %v", values)
	}
	if values.Get("page") != "1" || values.Get("page_size") != "20" {
		t.Fatalf("paging must always be present, got %v", values)
	}
}

func TestBuilderNameSortsAscending(t *testing.T) {
	t.Parallel()

	values := Listing().Sort("name", "").Values()
	if got := values.Get("sort_order"); got != "asc" {
		t.Fatalf("sort_order = %q, want asc", got)
	}
}

func TestBuilderExplicitDirectionWins(t *testing.T) {
	t.Parallel()

	values := Listing().Sort("goals", SortAsc).Values()
	if got := values.Get("sort_order"); got != "asc" {
		t.Fatalf("sort_order = %q, want asc", got)
	}
}

func TestBuilderDeterministicEncoding(t *testing.T) {
	t.Parallel()

	build := func() string {
		return Listing().
			Search("Saka").
			Filter(FilterCompetition, "Premier League").
			Filter(FilterPosition, "FW,MF").
			Sort("assists", "").
			Page(2, 50).
			Encode()
	}
	first := build()
	for i := 0; i < 5; i++ {
		if got := build(); got != first {
			t.Fatalf("encoding not deterministic: %q vs %q", got, first)
		}
	}
}

func TestFromQueryClampsPaging(t *testing.T) {
	t.Parallel()

	values := FromQuery(Query{Text: "Kane", Page: 0, PageSize: -3}).Values()
	if values.Get("page") != "1" {
		t.Fatalf("page = %q, want 1", values.Get("page"))
	}
	if values.Get("page_size") != "20" {
		t.Fatalf("page_size = %q, want 20", values.Get("page_size"))
	}
}

func TestFiltersClone(t *testing.T) {
	t.Parallel()

	original := Filters{FilterSquad: "Arsenal"}
	clone := original.Clone()
	clone[FilterSquad] = "Chelsea"
	if original[FilterSquad] != "Arsenal" {
		t.Fatalf("Clone must not share storage, original mutated to %q", original[FilterSquad])
	}
}
