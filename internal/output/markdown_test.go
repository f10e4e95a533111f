package output

import (
	"strings"
	"testing"
	"time"

	"github.com/codebuildervaibhav/dialogue-segmenter/internal/dialogue"
)

func TestRenderMarkdown(t *testing.T) {
	turns := []dialogue.Turn{
		{Kind: dialogue.KindPrimary, DisplayName: "User", Content: "hi"},
		{Kind: dialogue.KindCounterpart, DisplayName: "Assistant", Content: "hello\nthere"},
	}

	md := RenderMarkdown("Support Chat", turns, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))

	if !strings.HasPrefix(md, "# Support Chat\n") {
		t.Errorf("missing title header:\n%s", md)
	}
	if !strings.Contains(md, "- Turns: 2\n") {
		t.Errorf("missing turn count:\n%s", md)
	}
	if !strings.Contains(md, "**User**\n\nhi\n\n") {
		t.Errorf("missing user turn:\n%s", md)
	}
	if !strings.Contains(md, "**Assistant**\n\nhello\nthere\n\n") {
		t.Errorf("missing assistant turn:\n%s", md)
	}
}

func TestRenderMarkdown_Defaults(t *testing.T) {
	turns := []dialogue.Turn{{Kind: dialogue.KindUnknown, Content: "mystery"}}

	md := RenderMarkdown("", turns, time.Now())

	if !strings.HasPrefix(md, "# Conversation Transcript\n") {
		t.Errorf("missing default title:\n%s", md)
	}
	if !strings.Contains(md, "**Unknown**") {
		t.Errorf("missing fallback speaker name:\n%s", md)
	}
}
