package drill

import (
	"slices"

	"github.com/samber/lo"

	"github.com/abhisek/vocabiz/internal/vocab"
)

// MaxDistractors is the number of wrong answers offered alongside the
// correct one when the lesson is large enough.
const MaxDistractors = 5

// SelectDistractors picks up to k wrong-answer pairs for correct from pool.
// Pairs sharing correct's source are excluded, as are pairs whose target
// would repeat an option already on offer. The selection is random per call
// and is never padded.
func SelectDistractors(correct vocab.WordPair, pool []vocab.WordPair, k int, rng Rand) []vocab.WordPair {
	if k <= 0 {
		return nil
	}

	candidates := lo.Filter(pool, func(p vocab.WordPair, _ int) bool {
		return p.Source != correct.Source
	})
	Shuffle(candidates, rng)

	seen := map[string]struct{}{correct.Target: {}}
	picked := make([]vocab.WordPair, 0, min(k, len(candidates)))
	for _, c := range candidates {
		if len(picked) == k {
			break
		}
		if _, dup := seen[c.Target]; dup {
			continue
		}
		seen[c.Target] = struct{}{}
		picked = append(picked, c)
	}
	return picked
}

// OptionSet is the list of answer choices shown for one presentation.
type OptionSet struct {
	Options       []string
	CorrectAnswer string
}

// IndexOf returns the position of answer in the options, or -1.
func (o OptionSet) IndexOf(answer string) int {
	return slices.Index(o.Options, answer)
}

// BuildOptions combines correct's translation with distractors from pool and
// shuffles them. The correct answer appears exactly once.
func BuildOptions(correct vocab.WordPair, pool []vocab.WordPair, rng Rand) OptionSet {
	distractors := SelectDistractors(correct, pool, MaxDistractors, rng)

	options := make([]string, 0, len(distractors)+1)
	options = append(options, correct.Target)
	options = append(options, lo.Map(distractors, func(p vocab.WordPair, _ int) string {
		return p.Target
	})...)
	Shuffle(options, rng)

	return OptionSet{
		Options:       options,
		CorrectAnswer: correct.Target,
	}
}
