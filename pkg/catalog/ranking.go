package catalog

import (
	"sort"
	"strings"
)

// RelatedCandidate is the subset of a movie's metadata the related-media
// ranking scores against. Director/writer/cast ids come from the
// MetadataProvider's credits response, not from the store — the schema
// only persists the movie's own attributes, not its crew.
type RelatedCandidate struct {
	MovieID          int64
	Title            string
	CollectionTmdbID *int32
	DirectorIDs      []int32
	WriterIDs        []int32
	TopCastIDs       []int32 // top-5 billed cast, in billing order
	VoteAverage      float64
	ReleaseYear      int32
}

// RankedCandidate is a RelatedCandidate with its computed score.
type RankedCandidate struct {
	RelatedCandidate
	Score int
}

// RelatedMovies scores every candidate against target and returns the top k,
// ties broken by vote average then release recency.
//
// Scoring: shared collection = 100; shared director/writer = 40 each;
// shared lead cast (top-5) with ≥2 overlap = 50 + 10 per additional shared
// member; a normalized-franchise title prefix match = 100.
func RelatedMovies(target RelatedCandidate, candidates []RelatedCandidate, k int) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.MovieID == target.MovieID {
			continue
		}
		score := scoreRelated(target, candidate)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, RankedCandidate{RelatedCandidate: candidate, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].VoteAverage != ranked[j].VoteAverage {
			return ranked[i].VoteAverage > ranked[j].VoteAverage
		}
		return ranked[i].ReleaseYear > ranked[j].ReleaseYear
	})

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

func scoreRelated(target, candidate RelatedCandidate) int {
	score := 0

	if target.CollectionTmdbID != nil && candidate.CollectionTmdbID != nil && *target.CollectionTmdbID == *candidate.CollectionTmdbID {
		score += 100
	}

	score += 40 * countSharedInt32(target.DirectorIDs, candidate.DirectorIDs)
	score += 40 * countSharedInt32(target.WriterIDs, candidate.WriterIDs)

	if shared := countSharedInt32(target.TopCastIDs, candidate.TopCastIDs); shared >= 2 {
		score += 50 + 10*(shared-2)
	}

	if franchisePrefixMatch(target.Title, candidate.Title) {
		score += 100
	}

	return score
}

func countSharedInt32(a, b []int32) int {
	seen := make(map[int32]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	count := 0
	for _, id := range b {
		if _, ok := seen[id]; ok {
			count++
		}
	}
	return count
}

// franchisePrefixMatch reports whether two titles share a normalized prefix
// long enough to indicate the same franchise (e.g. "John Wick" and "John
// Wick: Chapter 2"), without requiring an exact collection id match.
func franchisePrefixMatch(a, b string) bool {
	na, nb := normalizeFranchiseTitle(a), normalizeFranchiseTitle(b)
	if na == "" || nb == "" {
		return false
	}

	shorter, longer := na, nb
	if len(nb) < len(na) {
		shorter, longer = nb, na
	}

	// A one-word title is too generic a prefix to signal a
	// franchise on its own (e.g. "It").
	words := strings.Fields(shorter)
	if len(words) < 2 {
		return false
	}

	return strings.HasPrefix(longer, shorter)
}

func normalizeFranchiseTitle(title string) string {
	lower := strings.ToLower(title)
	if idx := strings.IndexAny(lower, ":-"); idx > 0 {
		lower = lower[:idx]
	}
	return strings.TrimSpace(lower)
}
