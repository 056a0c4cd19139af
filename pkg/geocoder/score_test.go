package geocoder

import (
	"math"
	"testing"
)

func TestBoostedScorePopulated(t *testing.T) {
	// boost = ln(p+1) * 2 for populated divisions
	got := BoostedScore(-5, 1000)
	want := -5 - math.Log(1001)*2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("BoostedScore(-5, 1000) = %f, want %f", got, want)
	}
}

func TestBoostedScoreUnknownPopulation(t *testing.T) {
	// Zero and unknown population get a flat penalty, not boost = 0.
	if got := BoostedScore(-5, 0); got != -7 {
		t.Errorf("BoostedScore(-5, 0) = %f, want -7", got)
	}
}

func TestImportanceMonotonicInPopulation(t *testing.T) {
	// Same raw score: strictly more population means strictly more importance.
	populations := []int64{0, 100, 10000, 8400000}
	for i := 1; i < len(populations); i++ {
		lo := Importance(-3, populations[i-1])
		hi := Importance(-3, populations[i])
		if hi <= lo {
			t.Errorf("Importance(-3, %d) = %f should exceed Importance(-3, %d) = %f",
				populations[i], hi, populations[i-1], lo)
		}
	}
}

func TestImportanceMonotonicInScore(t *testing.T) {
	// Same population: strictly lower (better) raw score means strictly more
	// importance.
	if Importance(-5, 1000) <= Importance(-4, 1000) {
		t.Error("lower raw score should yield strictly greater importance")
	}
	if Importance(-5, 0) <= Importance(-4, 0) {
		t.Error("lower raw score should yield strictly greater importance for unpopulated rows")
	}
}

func TestUnpopulatedNeverBeatsPopulatedAtSameScore(t *testing.T) {
	if Importance(-5, 0) >= Importance(-5, 100) {
		t.Error("unknown population must not outrank a populated division with an equal raw score")
	}
}
