package geocoder

import "sort"

// minFetchLimit is the floor for per-shard candidate fetches. Population
// boosting can promote a row that ranked outside the raw top-N on text
// relevance alone, so each shard must over-fetch before re-ranking.
const minFetchLimit = 100

// FetchLimit returns how many candidates to request from each shard for a
// query with the given external limit. Always >= limit.
func FetchLimit(limit int) int {
	if fetch := limit * 10; fetch > minFetchLimit {
		return fetch
	}
	return minFetchLimit
}

// MergeAll combines per-shard result sets into a single ranked list: sorted
// by importance descending (stable, so order is deterministic for identical
// inputs regardless of shard query order) and deduplicated by GERS id,
// keeping the highest-importance instance of each division.
//
// The list is not truncated; location bias runs on the full merged list so it
// can promote a result a per-shard cut would have dropped. Use Truncate (or
// Merge) for the final limit.
func MergeAll(sets ...[]Result) []Result {
	var all []Result
	for _, set := range sets {
		all = append(all, set...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Importance > all[j].Importance
	})

	seen := make(map[string]struct{}, len(all))
	merged := all[:0]
	for _, r := range all {
		if _, dup := seen[r.GersID]; dup {
			continue
		}
		seen[r.GersID] = struct{}{}
		merged = append(merged, r)
	}
	return merged
}

// Truncate caps the list at limit results.
func Truncate(results []Result, limit int) []Result {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}

// Merge is MergeAll followed by Truncate, for callers that apply no bias.
func Merge(limit int, sets ...[]Result) []Result {
	return Truncate(MergeAll(sets...), limit)
}
