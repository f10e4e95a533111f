package dialogue

import (
	"strings"
	"testing"
)

func TestParseLabeled_ColonLabels(t *testing.T) {
	turns := ParseLabeled("User: hi\nAssistant: hello")

	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Kind != KindPrimary || turns[1].Kind != KindCounterpart {
		t.Errorf("kinds got [%s, %s], want [primary, counterpart]", turns[0].Kind, turns[1].Kind)
	}
	if turns[0].Content != "hi" || turns[1].Content != "hello" {
		t.Errorf("contents got [%q, %q], want [hi, hello]", turns[0].Content, turns[1].Content)
	}
	if turns[0].DisplayName != "User" || turns[1].DisplayName != "Assistant" {
		t.Errorf("names got [%q, %q]", turns[0].DisplayName, turns[1].DisplayName)
	}
	if turns[0].LabelPrefix != "User: " || turns[1].LabelPrefix != "Assistant: " {
		t.Errorf("prefixes got [%q, %q]", turns[0].LabelPrefix, turns[1].LabelPrefix)
	}
}

func TestParseLabeled_GenericNameDefaultsToCounterpart(t *testing.T) {
	turns := ParseLabeled("claude: sure\nme: go on")

	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Kind != KindCounterpart {
		t.Errorf("first kind got %s, want counterpart", turns[0].Kind)
	}
	if turns[1].Kind != KindPrimary {
		t.Errorf("second kind got %s, want primary", turns[1].Kind)
	}
	if turns[0].DisplayName != "Claude" {
		t.Errorf("display name got %q, want Claude (capitalized)", turns[0].DisplayName)
	}
}

// Labels longer than 100 characters must not match: the cap is part of the
// pattern itself, so an oversized "label" just accumulates as content.
func TestParseLabeled_LongLabelIgnored(t *testing.T) {
	long := strings.Repeat("a", 150) + ": not a label\n"
	turns := ParseLabeled(long + "User: hi")

	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if !strings.HasPrefix(turns[0].Content, strings.Repeat("a", 150)) {
		t.Errorf("oversized label line should stay in content, got %q", turns[0].Content[:20])
	}
	if turns[0].LabelPrefix != "" {
		t.Errorf("prefix got %q, want empty", turns[0].LabelPrefix)
	}
}

func TestParseLabeled_BoundaryLabelLengths(t *testing.T) {
	exactly100 := strings.Repeat("b", 100)
	turns := ParseLabeled(exactly100 + ": fits\nUser: hi")
	if len(turns) != 2 || turns[0].LabelPrefix == "" {
		t.Errorf("100-char label should match, got %d turns (prefix %q)", len(turns), turns[0].LabelPrefix)
	}

	over := strings.Repeat("b", 101)
	turns = ParseLabeled(over + ": too long\nUser: hi")
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].LabelPrefix != "" {
		t.Errorf("101-char label must not match, got prefix %q", turns[0].LabelPrefix)
	}
}

func TestParseLabeled_KeywordAnchored(t *testing.T) {
	turns := ParseLabeled("**User**\nhey there\n\n**Assistant**\nhello friend")

	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Kind != KindPrimary || turns[1].Kind != KindCounterpart {
		t.Errorf("kinds got [%s, %s], want [primary, counterpart]", turns[0].Kind, turns[1].Kind)
	}
	if turns[0].Content != "hey there" || turns[1].Content != "hello friend" {
		t.Errorf("contents got [%q, %q]", turns[0].Content, turns[1].Content)
	}
}

func TestParseLabeled_SaidForm(t *testing.T) {
	turns := ParseLabeled("ChatGPT said:\nsure thing\nYou said:\nfollow up")

	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Kind != KindCounterpart || turns[0].DisplayName != "ChatGPT" {
		t.Errorf("first turn got (%s, %q), want (counterpart, ChatGPT)", turns[0].Kind, turns[0].DisplayName)
	}
	if turns[1].Kind != KindPrimary {
		t.Errorf("second kind got %s, want primary", turns[1].Kind)
	}
}

// Text before the first label gets its kind inferred from the turn after it.
func TestParseLabeled_LeadingTurnInference(t *testing.T) {
	turns := ParseLabeled("welcome to the session\n\nUser: hi")

	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Kind != KindCounterpart || turns[0].DisplayName != "Assistant" {
		t.Errorf("leading turn got (%s, %q), want (counterpart, Assistant)", turns[0].Kind, turns[0].DisplayName)
	}
}

func TestParseLabeled_NoLabels(t *testing.T) {
	turns := ParseLabeled("no speaker markers anywhere in this text")

	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
	if turns[0].Kind != KindUnknown {
		t.Errorf("kind got %s, want unknown", turns[0].Kind)
	}
}

func TestParseLabeled_ProseKeywordIsNotALabel(t *testing.T) {
	turns := ParseLabeled("You should try restarting first\nuser was not found in the db")

	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1 (prose starting with a keyword must not split)", len(turns))
	}
}
