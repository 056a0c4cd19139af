package geocoder

import "sort"

// countryBiasBoost is the additive importance bonus a result earns when its
// country matches a BiasCountry hint. It is on the same scale as the
// population boost: roughly the gap between a ~100k town and a multi-million
// city, enough to reorder near-ties without hoisting weak matches over a
// dominant one.
const countryBiasBoost = 5.0

// ApplyLocationBias re-ranks results in place according to the bias hint.
// Matching results move toward the front; non-matching results keep their
// relative order and are never dropped. Stored importance values are left
// untouched so callers still see the unbiased score.
func ApplyLocationBias(results []Result, bias LocationBias) {
	if bias.Kind != BiasCountry || bias.Country == "" {
		return
	}

	key := func(r Result) float64 {
		if r.Country == bias.Country {
			return r.Importance + countryBiasBoost
		}
		return r.Importance
	}
	sort.SliceStable(results, func(i, j int) bool {
		return key(results[i]) > key(results[j])
	})
}
