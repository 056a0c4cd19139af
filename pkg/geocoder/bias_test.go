package geocoder

import "testing"

func biased(id, country string, importance float64) Result {
	return Result{GersID: id, Country: country, Importance: importance}
}

func TestApplyLocationBiasNoneIsNoop(t *testing.T) {
	results := []Result{biased("a", "GB", 3), biased("b", "US", 2)}
	ApplyLocationBias(results, NoBias())

	if results[0].GersID != "a" || results[1].GersID != "b" {
		t.Errorf("NoBias must not reorder: %+v", results)
	}
}

func TestApplyLocationBiasElevatesMatches(t *testing.T) {
	results := []Result{
		biased("gb", "GB", 10),
		biased("us", "US", 8),
	}
	ApplyLocationBias(results, CountryBias("US"))

	if results[0].GersID != "us" {
		t.Errorf("US result should move to the front, got %+v", results)
	}
	if results[0].Importance != 8 {
		t.Errorf("bias must not rewrite stored importance, got %f", results[0].Importance)
	}
}

func TestApplyLocationBiasKeepsNonMatches(t *testing.T) {
	results := []Result{
		biased("fr", "FR", 9),
		biased("us", "US", 5),
		biased("gb", "GB", 7),
	}
	ApplyLocationBias(results, CountryBias("US"))

	if len(results) != 3 {
		t.Fatalf("bias must never drop results, got %d", len(results))
	}
	// Non-matching results keep their relative order.
	frIdx, gbIdx := -1, -1
	for i, r := range results {
		switch r.GersID {
		case "fr":
			frIdx = i
		case "gb":
			gbIdx = i
		}
	}
	if frIdx == -1 || gbIdx == -1 || frIdx > gbIdx {
		t.Errorf("non-matching results out of order: %+v", results)
	}
}

func TestApplyLocationBiasIsBounded(t *testing.T) {
	// A dominant non-matching result stays on top: bias reorders near-ties,
	// it does not guarantee matches in the top-K.
	results := []Result{
		biased("paris", "FR", 30),
		biased("paris-tx", "US", 10),
	}
	ApplyLocationBias(results, CountryBias("US"))

	if results[0].GersID != "paris" {
		t.Errorf("a 20-point gap should not be overturned by bias: %+v", results)
	}
}

func TestApplyLocationBiasSpringfieldScenario(t *testing.T) {
	// Springfield exists in many countries; with US bias and enough US
	// candidates, the top 5 should be mostly US.
	results := []Result{
		biased("springfield-gb", "GB", 12),
		biased("springfield-mo", "US", 11),
		biased("springfield-il", "US", 10.5),
		biased("springfield-ca2", "CA", 10.2),
		biased("springfield-ma", "US", 10),
		biased("springfield-nz", "NZ", 9.8),
		biased("springfield-or", "US", 9.5),
		biased("springfield-au", "AU", 9),
	}
	ApplyLocationBias(results, CountryBias("US"))
	top := Truncate(results, 5)

	usCount := 0
	for _, r := range top {
		if r.Country == "US" {
			usCount++
		}
	}
	if usCount < 3 {
		t.Errorf("expected at least 3 of the top 5 to be US, got %d: %+v", usCount, top)
	}
}
