package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/codebuildervaibhav/dialogue-segmenter/internal/dialogue"
)

// RenderMarkdown formats segmented turns as a readable markdown transcript
func RenderMarkdown(title string, turns []dialogue.Turn, processedAt time.Time) string {
	var b strings.Builder

	if title == "" {
		title = "Conversation Transcript"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- Turns: %d\n", len(turns))
	fmt.Fprintf(&b, "- Generated: %s\n", processedAt.Format(time.RFC3339))
	b.WriteString("\n---\n\n")

	for _, t := range turns {
		fmt.Fprintf(&b, "**%s**\n\n%s\n\n", displayName(t), strings.TrimSpace(t.Content))
	}

	return b.String()
}

func displayName(t dialogue.Turn) string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	switch t.Kind {
	case dialogue.KindPrimary:
		return "User"
	case dialogue.KindCounterpart:
		return "Assistant"
	}
	return "Unknown"
}
