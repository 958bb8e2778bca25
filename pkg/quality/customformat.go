package quality

import (
	"context"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/reelforge/reelforge/pkg/logger"
)

// ExprContext is the evaluation environment a custom format's rule program
// runs against. Field names are the identifiers available inside a rule
// expression, e.g. `Resolution == "1080p" && Group == "GRP"`.
type ExprContext struct {
	Title      string
	Size       int64
	Source     string
	Resolution string
	Codec      string
	Group      string
	Indexer    string
	Seeders    int
}

// CustomFormat is a named rule bundle: a boolean expr program plus the score
// it contributes when the program evaluates truthy, with an optional
// per-profile override.
type CustomFormat struct {
	ID         int64
	Name       string
	Expression string
	Score      int
	// ProfileScores overrides Score for specific profile IDs.
	ProfileScores map[int64]int
}

// ScoreForProfile returns the score this format contributes for a given
// profile, honoring the per-profile override when present.
func (cf CustomFormat) ScoreForProfile(profileID int64) int {
	if s, ok := cf.ProfileScores[profileID]; ok {
		return s
	}
	return cf.Score
}

// FormatScorer compiles and caches custom format expr programs by format ID,
// so repeated evaluations across a selection batch don't re-parse the
// expression text.
type FormatScorer struct {
	mu      sync.Mutex
	compiled map[int64]*vm.Program
}

// NewFormatScorer returns an empty compile cache.
func NewFormatScorer() *FormatScorer {
	return &FormatScorer{compiled: make(map[int64]*vm.Program)}
}

func (s *FormatScorer) compile(cf CustomFormat) (*vm.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.compiled[cf.ID]; ok {
		return p, nil
	}

	program, err := expr.Compile(cf.Expression,
		expr.Env(ExprContext{}),
		expr.AsBool(),
		expr.Function("contains", func(params ...any) (any, error) {
			haystack, _ := params[0].(string)
			needle, _ := params[1].(string)
			return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle)), nil
		}, new(func(string, string) bool)),
	)
	if err != nil {
		return nil, err
	}
	s.compiled[cf.ID] = program
	return program, nil
}

// Score evaluates every custom format's rule bundle against rc and sums the
// scores of the formats that matched, for the given profile. A compile or
// evaluation failure is logged and that format contributes 0 -- a single
// bad rule never aborts scoring for the rest of the batch.
func (s *FormatScorer) Score(ctx context.Context, formats []CustomFormat, profileID int64, rc ExprContext) int {
	log := logger.FromCtx(ctx)
	total := 0
	for _, cf := range formats {
		program, err := s.compile(cf)
		if err != nil {
			log.Warnw("custom format compile failed", "format", cf.Name, "error", err)
			continue
		}

		out, err := expr.Run(program, rc)
		if err != nil {
			log.Warnw("custom format eval failed", "format", cf.Name, "error", err)
			continue
		}

		matched, ok := out.(bool)
		if !ok || !matched {
			continue
		}

		total += cf.ScoreForProfile(profileID)
	}
	return total
}
