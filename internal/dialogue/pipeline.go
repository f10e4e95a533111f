// Package dialogue turns raw, unstructured chat transcripts into ordered,
// speaker-attributed turns. It copes with text copy-pasted from many
// different UIs: explicit "Name:" labels when they exist, a heuristic
// zero-shot classifier when they do not, and a strict-alternation fallback
// when even that is inconclusive. The whole pipeline is pure computation over
// the input string and is total: any input, including the empty string,
// yields a well-formed (possibly empty) turn list.
package dialogue

import "strings"

// Segmenter splits raw transcript text into attributed turns.
type Segmenter struct {
	// Corrections, when set, receives every sequence-validation override.
	Corrections CorrectionLogger
}

// strategy is one attempt at splitting the text. accept gates whether its
// output is good enough to stop the cascade.
type strategy struct {
	name   string
	run    func(text string) []Turn
	accept func(turns []Turn) bool
}

// Segment runs the parsing cascade and returns the final ordered turn list.
// Strategies are tried in order and the first accepted result wins; the last
// strategy accepts anything, so the cascade always terminates with a result.
func (s *Segmenter) Segment(text string) []Turn {
	atLeastTwo := func(turns []Turn) bool { return len(turns) >= 2 }

	cascade := []strategy{
		{
			name: "labels",
			run:  ParseLabeled,
			accept: func(turns []Turn) bool {
				return len(turns) >= 2 && hasKnownKind(turns)
			},
		},
		{
			name: "classifier",
			run: func(text string) []Turn {
				blocks := nonEmptyBlocks(text)
				return classifiedTurns(blocks, classifyBlocks(blocks, s.Corrections))
			},
			accept: atLeastTwo,
		},
		{
			name:   "alternation",
			run:    func(text string) []Turn { return alternatingTurns(nonEmptyBlocks(text)) },
			accept: atLeastTwo,
		},
		{
			name:   "single",
			run:    func(text string) []Turn { return alternatingTurns(nonEmptyBlocks(text)) },
			accept: func([]Turn) bool { return true },
		},
	}

	var turns []Turn
	for _, st := range cascade {
		turns = st.run(text)
		if st.accept(turns) {
			break
		}
	}
	return dropEmptyTurns(turns)
}

// Classify exposes the per-turn classifier for diagnostic use, without any
// previous-speaker context.
func (s *Segmenter) Classify(text string) ClassificationResult {
	return ClassifyTurn(text, SpeakerUncertain)
}

// Reconstruct rebuilds source text from a turn list by re-attaching each
// turn's label prefix. Re-segmenting the result yields the same turn count
// and kind sequence, which is what lets an editor round-trip a transcript.
func Reconstruct(turns []Turn) string {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(t.LabelPrefix)
		b.WriteString(strings.TrimSpace(t.Content))
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

func hasKnownKind(turns []Turn) bool {
	for _, t := range turns {
		if t.Kind == KindPrimary || t.Kind == KindCounterpart {
			return true
		}
	}
	return false
}

func dropEmptyTurns(turns []Turn) []Turn {
	kept := turns[:0]
	for _, t := range turns {
		if strings.TrimSpace(t.Content) != "" {
			kept = append(kept, t)
		}
	}
	return kept
}
