package dialogue

import (
	"regexp"
	"strings"
)

var reBlankLines = regexp.MustCompile(`\n\s*\n`)

// splitBlocks splits text on runs of blank lines. Blocks are returned as-is;
// callers decide what to do with whitespace-only entries.
func splitBlocks(text string) []string {
	return reBlankLines.Split(text, -1)
}

// nonEmptyBlocks returns the blank-line-delimited blocks that carry content.
func nonEmptyBlocks(text string) []string {
	var blocks []string
	for _, b := range splitBlocks(text) {
		if strings.TrimSpace(b) != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// classifyBlocks runs the turn classifier across a block sequence, threading
// each block's own decision into the next call as the previous-speaker hint,
// then repairs the sequence as a whole. The fold is deliberately sequential:
// correctness depends on strict left-to-right evaluation.
func classifyBlocks(blocks []string, logger CorrectionLogger) []*ClassificationResult {
	results := make([]*ClassificationResult, len(blocks))
	prev := SpeakerUncertain
	for i, block := range blocks {
		r := ClassifyTurn(block, prev)
		results[i] = &r
		prev = r.Speaker
	}
	ValidateSequence(results, blocks, logger)
	return results
}

// classifiedTurns converts classifications back into turns.
func classifiedTurns(blocks []string, results []*ClassificationResult) []Turn {
	turns := make([]Turn, len(blocks))
	for i, block := range blocks {
		turns[i] = speakerTurn(results[i].Speaker, block)
	}
	return turns
}

// alternatingTurns assigns speakers by strict alternation with no content
// analysis at all: block 0 is the user, block 1 the assistant, and so on.
func alternatingTurns(blocks []string) []Turn {
	turns := make([]Turn, len(blocks))
	for i, block := range blocks {
		if i%2 == 0 {
			turns[i] = speakerTurn(SpeakerPrimary, block)
		} else {
			turns[i] = speakerTurn(SpeakerCounterpart, block)
		}
	}
	return turns
}

func speakerTurn(s Speaker, content string) Turn {
	t := Turn{Content: strings.TrimSpace(content)}
	switch s {
	case SpeakerPrimary:
		t.Kind = KindPrimary
		t.DisplayName = "User"
	case SpeakerCounterpart:
		t.Kind = KindCounterpart
		t.DisplayName = "Assistant"
	default:
		t.Kind = KindUnknown
		t.DisplayName = "Unknown"
	}
	return t
}
