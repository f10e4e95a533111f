package dialogue

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Bare acknowledgements carry no attribution signal at all, so the classifier
// bails out before scoring them.
var acknowledgements = map[string]bool{
	"ok": true, "okay": true, "k": true, "kk": true,
	"yes": true, "yep": true, "yeah": true,
	"no": true, "nope": true,
	"sure": true, "cool": true, "nice": true, "great": true,
	"got it": true, "sounds good": true,
	"thanks": true, "thank you": true, "thx": true,
	"hmm": true, "lol": true, "haha": true, "wow": true,
}

// Decision thresholds. The asymmetry is deliberate: counterpart signal needs
// slightly stronger evidence to win than primary signal does.
const (
	counterpartThreshold = 4
	primaryThreshold     = 3
)

// ClassifyTurn scores a single turn's text against the feature catalogue and
// decides which party most likely wrote it. prev is the previous turn's
// speaker, or SpeakerUncertain when there is no usable context; it contributes
// a one-point alternation nudge, nothing more.
func ClassifyTurn(text string, prev Speaker) ClassificationResult {
	trimmed := strings.TrimSpace(text)

	result := ClassificationResult{
		Speaker:    SpeakerUncertain,
		Confidence: 0.5,
		Features:   map[string]int{},
	}

	if utf8.RuneCountInString(trimmed) < 15 && acknowledgements[strings.ToLower(trimmed)] {
		return result
	}

	for _, f := range featureCatalogue {
		if !f.match(trimmed) {
			continue
		}
		if f.target == SpeakerCounterpart {
			result.CounterpartScore += f.weight
			result.Features[f.name] = f.weight
		} else {
			result.PrimaryScore += f.weight
			result.Features[f.name] = -f.weight
		}
	}

	switch prev {
	case SpeakerCounterpart:
		result.PrimaryScore++
		result.ContextBonus = "afterCounterpart"
	case SpeakerPrimary:
		result.CounterpartScore++
		result.ContextBonus = "afterPrimary"
	}

	diff := result.CounterpartScore - result.PrimaryScore
	switch {
	case diff >= counterpartThreshold:
		result.Speaker = SpeakerCounterpart
		result.Confidence = roundConfidence(math.Min(0.95, 0.7+float64(diff)/20))
	case diff <= -primaryThreshold:
		result.Speaker = SpeakerPrimary
		result.Confidence = roundConfidence(math.Min(0.95, 0.7+float64(-diff)/20))
	}

	return result
}

func roundConfidence(c float64) float64 {
	return math.Round(c*100) / 100
}
