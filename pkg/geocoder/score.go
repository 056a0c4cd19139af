package geocoder

import "math"

// unknownPopulationPenalty is subtracted instead of a logarithmic boost when
// a division has no (or zero) recorded population, so data-poor divisions are
// never favored over a populated one with the same raw score.
const unknownPopulationPenalty = 2.0

// BoostedScore folds population into a raw BM25 score. Lower is still
// better. Raw BM25 scores from different shards are only comparable after
// this boost has been applied.
func BoostedScore(bm25 float64, population int64) float64 {
	if population > 0 {
		return bm25 - math.Log(float64(population)+1)*2
	}
	return bm25 - unknownPopulationPenalty
}

// Importance converts a raw BM25 score and population into the public
// higher-is-better ranking value. It decreases with raw score and increases
// with population.
func Importance(bm25 float64, population int64) float64 {
	return -BoostedScore(bm25, population)
}
