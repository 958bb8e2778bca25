// Package selector scores and ranks candidate releases against a quality
// profile, choosing the single best grab.
package selector

import (
	"context"
	"strings"

	"github.com/reelforge/reelforge/pkg/quality"
	"github.com/reelforge/reelforge/pkg/release"
)

// Candidate is one release offered by an indexer.
type Candidate struct {
	Title       string
	DownloadURL string
	Size        int64
	Seeders     int
	Indexer     string
	// Protocol is "torrent" or "usenet" (mirroring pkg/download's Protocol
	// constants, duplicated as a plain string here so this package doesn't
	// need to import pkg/download just to name two string values), used by
	// AutoSearch/RSSGrabber to pick the download client the release must be
	// dispatched to.
	Protocol string
}

// Scored is a Candidate annotated with its computed scores.
type Scored struct {
	Candidate    Candidate
	Parsed       release.Parsed
	Quality      string
	BaseScore    int
	CustomScore  int
}

// Request bundles everything the selector needs to rank one batch of
// candidates for a single wanted item.
type Request struct {
	Candidates    []Candidate
	Profile       quality.Profile
	ExpectedTitle string
	ExpectedYear  int // 0 if not applicable (series searches)
	IsMovie       bool
	Blacklist     map[string]bool // normalized release titles
	CustomFormats []quality.CustomFormat
	// ExpectedSizeByQuality maps a quality label to its expected byte size,
	// used for the oversize/undersize penalty.
	ExpectedSizeByQuality map[string]int64
}

// Selector ranks and picks the best candidate under a quality profile.
type Selector struct {
	Policy  *quality.Policy
	Matcher *release.Matcher
	Scorer  *quality.FormatScorer
}

// New builds a Selector from its collaborators.
func New(policy *quality.Policy, matcher *release.Matcher, scorer *quality.FormatScorer) *Selector {
	return &Selector{Policy: policy, Matcher: matcher, Scorer: scorer}
}

// Select runs the full scoring algorithm over req.Candidates and returns the
// single best one, or ok=false if nothing survived.
func (s *Selector) Select(ctx context.Context, req Request) (Scored, bool) {
	ranked := s.Rank(ctx, req)
	if len(ranked) == 0 {
		return Scored{}, false
	}
	return ranked[0], true
}

// Rank scores every surviving candidate and returns them sorted best-first.
func (s *Selector) Rank(ctx context.Context, req Request) []Scored {
	var out []Scored

	for _, c := range req.Candidates {
		if req.Blacklist != nil && req.Blacklist[normalizeTitle(c.Title)] {
			continue
		}

		parsed := release.Parse(c.Title)
		q := release.Quality(parsed)

		base := s.baseScore(req, c, parsed, q)
		if base <= 0 {
			continue
		}

		custom := s.Scorer.Score(ctx, req.CustomFormats, req.Profile.ID, quality.ExprContext{
			Title:      c.Title,
			Size:       c.Size,
			Source:     parsed.Source,
			Resolution: parsed.Resolution,
			Codec:      parsed.Codec,
			Group:      parsed.Group,
			Indexer:    c.Indexer,
			Seeders:    c.Seeders,
		})

		if custom < req.Profile.MinCustomFormatScore {
			continue
		}

		out = append(out, Scored{
			Candidate:   c,
			Parsed:      parsed,
			Quality:     q,
			BaseScore:   base,
			CustomScore: custom,
		})
	}

	sortScoredDesc(out)
	return out
}

func (s *Selector) baseScore(req Request, c Candidate, parsed release.Parsed, q string) int {
	if !s.Matcher.Matches(release.MatchInput{
		Title:   req.ExpectedTitle,
		Year:    req.ExpectedYear,
		IsMovie: req.IsMovie,
	}, c.Title) {
		return 0
	}

	if !s.Policy.MeetsProfile(req.Profile, q) {
		return 0
	}

	score := 100

	cutoffWeight, cutoffOK := s.Policy.Table.Weight(req.Profile.Cutoff)
	qWeight, qOK := s.Policy.Table.Weight(q)
	if cutoffOK && qOK {
		switch {
		case qWeight == cutoffWeight:
			score += 50
		case qWeight < cutoffWeight:
			gap := cutoffWeight - qWeight
			score -= minInt(5*gap, 40)
		default:
			gap := qWeight - cutoffWeight
			score -= minInt(2*gap, 20)
		}
	}

	score += minInt(c.Seeders/2, 50)

	if expected, ok := req.ExpectedSizeByQuality[q]; ok && expected > 0 && c.Size > 0 {
		ratio := float64(c.Size) / float64(expected)
		switch {
		case ratio < 0.3 || ratio > 3:
			score -= 50
		case ratio < 0.5 || ratio > 2:
			score -= 20
		}
	}

	switch strings.ToLower(parsed.Source) {
	case "webdl", "web-dl", "bluray", "blu-ray", "brrip":
		score += 20
	}

	return score
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func sortScoredDesc(items []Scored) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0; j-- {
			if items[j].BaseScore+items[j].CustomScore > items[j-1].BaseScore+items[j-1].CustomScore {
				items[j], items[j-1] = items[j-1], items[j]
			} else {
				break
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
