package dialogue

import (
	"strings"
	"unicode/utf8"
)

// Rule names recorded in ClassificationResult.CorrectedBy.
const (
	RuleSequenceValidation = "sequenceValidation"
	RuleAlternationPattern = "alternationPattern"
)

// ValidateSequence repairs sequence-level implausibilities in a list of
// per-turn classifications. It runs a single forward pass over the indexes and
// mutates results in place; a correction applied at index i is visible to
// rules evaluated at later indexes but never re-triggers earlier ones.
//
// Rule 1: three counterpart turns in a row where the middle one is a short
// question almost certainly hide a user interjection; flip the middle turn.
// Rule 2: an unresolved turn takes the opposite speaker of the (possibly
// already corrected) turn before it.
//
// Every override is reported to logger when one is supplied.
func ValidateSequence(results []*ClassificationResult, texts []string, logger CorrectionLogger) {
	for i := range results {
		if i >= 2 &&
			results[i].Speaker == SpeakerCounterpart &&
			results[i-1].Speaker == SpeakerCounterpart &&
			results[i-2].Speaker == SpeakerCounterpart &&
			isShortQuestion(texts[i-1]) {
			record(logger, i-1, results[i-1].Speaker, SpeakerPrimary, RuleSequenceValidation)
			results[i-1].Speaker = SpeakerPrimary
			results[i-1].Confidence = 0.65
			results[i-1].CorrectedBy = RuleSequenceValidation
		}

		if i > 0 && results[i].Speaker == SpeakerUncertain {
			resolved := SpeakerCounterpart
			if results[i-1].Speaker == SpeakerCounterpart {
				resolved = SpeakerPrimary
			}
			record(logger, i, results[i].Speaker, resolved, RuleAlternationPattern)
			results[i].Speaker = resolved
			results[i].Confidence = 0.6
			results[i].CorrectedBy = RuleAlternationPattern
		}
	}
}

func isShortQuestion(text string) bool {
	return utf8.RuneCountInString(text) < 100 && strings.Contains(text, "?")
}

func record(logger CorrectionLogger, index int, from, to Speaker, rule string) {
	if logger == nil {
		return
	}
	logger.Record(Correction{Index: index, From: from, To: to, Rule: rule})
}
