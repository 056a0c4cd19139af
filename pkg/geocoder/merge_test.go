package geocoder

import (
	"reflect"
	"testing"
)

func result(id string, importance float64) Result {
	return Result{GersID: id, Importance: importance}
}

func TestFetchLimit(t *testing.T) {
	tests := []struct {
		limit    int
		expected int
	}{
		{1, 100},
		{10, 100},
		{11, 110},
		{40, 400},
	}
	for _, tt := range tests {
		if got := FetchLimit(tt.limit); got != tt.expected {
			t.Errorf("FetchLimit(%d) = %d, want %d", tt.limit, got, tt.expected)
		}
		if got := FetchLimit(tt.limit); got < tt.limit {
			t.Errorf("FetchLimit(%d) = %d must be >= the external limit", tt.limit, got)
		}
	}
}

func TestMergeSortsAcrossSets(t *testing.T) {
	head := []Result{result("a", 5), result("b", 1)}
	country := []Result{result("c", 3)}

	merged := Merge(10, head, country)

	want := []string{"a", "c", "b"}
	for i, id := range want {
		if merged[i].GersID != id {
			t.Fatalf("position %d: got %s, want %s (merged: %+v)", i, merged[i].GersID, id, merged)
		}
	}
}

func TestMergeDeduplicatesKeepingHighestImportance(t *testing.T) {
	head := []Result{result("dup", 2), result("x", 1)}
	country := []Result{{GersID: "dup", Country: "US", Importance: 4}}

	merged := Merge(10, head, country)

	if len(merged) != 2 {
		t.Fatalf("expected 2 results, got %d", len(merged))
	}
	if merged[0].GersID != "dup" || merged[0].Country != "US" {
		t.Errorf("expected the country-shard instance of dup to win, got %+v", merged[0])
	}

	seen := make(map[string]bool)
	for _, r := range merged {
		if seen[r.GersID] {
			t.Errorf("duplicate id %s in merged results", r.GersID)
		}
		seen[r.GersID] = true
	}
}

func TestMergeTruncatesAfterDedup(t *testing.T) {
	head := []Result{result("a", 5), result("b", 4), result("c", 3)}
	country := []Result{result("a", 6)}

	merged := Merge(2, head, country)

	if len(merged) != 2 {
		t.Fatalf("expected 2 results, got %d", len(merged))
	}
	// The duplicate must be removed before truncation, so "c" is not what
	// makes room; "a" and "b" survive.
	if merged[0].GersID != "a" || merged[1].GersID != "b" {
		t.Errorf("unexpected order: %+v", merged)
	}
}

func TestMergeDeterministicRegardlessOfSetOrder(t *testing.T) {
	// Ties are broken by original relative order via the stable sort, so
	// identical inputs always produce identical output.
	a := []Result{result("a", 3), result("b", 3)}
	b := []Result{result("c", 3)}

	first := Merge(10, a, b)
	second := Merge(10, append([]Result{}, a...), append([]Result{}, b...))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("merge not deterministic: %+v vs %+v", first, second)
	}
}

func TestMergeNeverExceedsLimit(t *testing.T) {
	var set []Result
	for i := 0; i < 250; i++ {
		set = append(set, result(string(rune('a'+i%26))+string(rune('0'+i/26)), float64(i)))
	}
	for _, limit := range []int{1, 5, 10, 1000} {
		if got := len(Merge(limit, set)); got > limit {
			t.Errorf("limit %d: got %d results", limit, got)
		}
	}
}

func TestMergeAllDoesNotTruncate(t *testing.T) {
	set := []Result{result("a", 1), result("b", 2), result("c", 3)}
	if got := len(MergeAll(set)); got != 3 {
		t.Errorf("MergeAll should keep all results, got %d", got)
	}
}
