package dialogue

import (
	"strings"
	"testing"
)

func kinds(turns []Turn) []string {
	out := make([]string, len(turns))
	for i, t := range turns {
		out[i] = t.Kind
	}
	return out
}

func TestSegment_LabelStrategy(t *testing.T) {
	s := &Segmenter{}
	turns := s.Segment("User: hi\nAssistant: hello")

	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Kind != KindPrimary || turns[1].Kind != KindCounterpart {
		t.Errorf("kinds got %v, want [primary counterpart]", kinds(turns))
	}
}

func TestSegment_ClassifierStrategy(t *testing.T) {
	s := &Segmenter{}
	question := "could you write a function to reverse a string in go for my parser project?"
	answer := "```\n" + strings.Repeat("abc def ", 12) + "\n```"
	turns := s.Segment(question + "\n\n" + answer)

	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Kind != KindPrimary || turns[1].Kind != KindCounterpart {
		t.Errorf("kinds got %v, want [primary counterpart]", kinds(turns))
	}
	if turns[0].LabelPrefix != "" {
		t.Errorf("classifier turns carry no label prefix, got %q", turns[0].LabelPrefix)
	}
}

// A single unbroken block with no labels can only fall through to the final
// strategy, which labels the lone block primary.
func TestSegment_SingleBlockFallback(t *testing.T) {
	s := &Segmenter{}
	turns := s.Segment("just one unbroken paragraph of plain text with nothing to split on")

	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
	if turns[0].Kind != KindPrimary {
		t.Errorf("kind got %s, want primary", turns[0].Kind)
	}
}

func TestSegment_DegenerateInputs(t *testing.T) {
	s := &Segmenter{}
	for _, text := range []string{"", "   ", "\n\n\n", " \n \n "} {
		turns := s.Segment(text)
		if len(turns) != 0 {
			t.Errorf("%q: got %d turns, want 0", text, len(turns))
		}
	}
}

func TestSegment_NoEmptyTurns(t *testing.T) {
	s := &Segmenter{}
	inputs := []string{
		"User: hi\nAssistant:  \nUser: anyone home?",
		"some text\n\n\n\nmore text\n\n   \n\nlast bit",
		"User:  \nAssistant: hello",
	}
	for _, text := range inputs {
		for i, turn := range s.Segment(text) {
			if strings.TrimSpace(turn.Content) == "" {
				t.Errorf("%q: turn %d has empty content", text, i)
			}
		}
	}
}

func TestReconstruct_RoundTrip(t *testing.T) {
	s := &Segmenter{}
	inputs := []string{
		"User: hi\nAssistant: hello",
		"**User**\nhey there\n\n**Assistant**\nhello friend",
		"could you write a function to reverse a string in go for my parser project?\n\n```\n" + strings.Repeat("abc def ", 12) + "\n```",
		"welcome to the session\n\nUser: hi\nAssistant: hello there",
	}

	for _, text := range inputs {
		first := s.Segment(text)
		rebuilt := Reconstruct(first)
		second := s.Segment(rebuilt)

		if len(first) != len(second) {
			t.Errorf("%q: turn count changed %d -> %d", text, len(first), len(second))
			continue
		}
		for i := range first {
			if first[i].Kind != second[i].Kind {
				t.Errorf("%q: turn %d kind changed %s -> %s", text, i, first[i].Kind, second[i].Kind)
			}
		}
	}
}

func TestReconstruct_ExactForLabeledText(t *testing.T) {
	text := "User: hi\nAssistant: hello"
	s := &Segmenter{}

	got := Reconstruct(s.Segment(text))
	want := "User: hi\n\nAssistant: hello"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSegment_CorrectionsReachLogger(t *testing.T) {
	logger := &recordingLogger{}
	s := &Segmenter{Corrections: logger}

	// Neutral blocks that classify uncertain force alternation corrections.
	neutral := "hello there friend"
	s.Segment(neutral + "\n\n" + neutral + "\n\n" + neutral)

	if len(logger.corrections) == 0 {
		t.Fatal("expected alternation corrections to be recorded")
	}
	for _, c := range logger.corrections {
		if c.Rule != RuleAlternationPattern {
			t.Errorf("rule got %q, want %q", c.Rule, RuleAlternationPattern)
		}
	}
}

func TestSegmenterClassify_Diagnostic(t *testing.T) {
	s := &Segmenter{}
	r := s.Classify("assistant: yeah thanks")

	if r.Speaker != SpeakerCounterpart {
		t.Errorf("speaker got %s, want counterpart", r.Speaker)
	}
	if r.ContextBonus != "" {
		t.Errorf("diagnostic classify must not apply context, got %q", r.ContextBonus)
	}
}
