package dialogue

import (
	"regexp"
	"strings"
	"unicode"
)

// Label detection patterns, tried per line in order. The generic pattern caps
// the label at 100 characters inside the pattern itself, so an adversarial
// line that is one enormous "label" falls through to content accumulation
// instead of matching (and RE2 keeps matching linear-time regardless).
var (
	reGenericLabel = regexp.MustCompile(`^([^:\n]{1,100}):\s(.*)$`)
	reKeywordLabel = regexp.MustCompile(`(?i)^(?:\*\*|#{1,3}\s*)?(user|human|me|you|assistant|ai|claude|chatgpt|gpt|bot|model)(?:\*\*)?(?:\s*:|\s+said:?)\s*(.*)$`)
	reBareKeyword  = regexp.MustCompile(`(?i)^(?:\*\*|#{1,3}\s*)(user|human|me|you|assistant|ai|claude|chatgpt|gpt|bot|model)(?:\*\*)?\s*$`)

	rePrimaryName = regexp.MustCompile(`(?i)\b(user|human|me|you)\b`)
)

// ParseLabeled splits raw text into turns using explicit speaker-label lines.
// It is a pure line scan with no classifier involvement: lines that look like
// "Name: ..." or keyword-anchored labels ("**Assistant**", "ChatGPT said:")
// start a new turn, everything else accumulates onto the current one. Text
// before the first label becomes a leading turn of unknown kind.
func ParseLabeled(text string) []Turn {
	var turns []Turn

	current := Turn{Kind: KindUnknown, DisplayName: "Unknown"}
	var buf strings.Builder

	flush := func() {
		if content := strings.TrimSpace(buf.String()); content != "" {
			current.Content = content
			turns = append(turns, current)
		}
		buf.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		name, rest, prefix, ok := matchLabel(line)
		if !ok {
			buf.WriteString(line)
			buf.WriteString("\n")
			continue
		}

		flush()
		current = Turn{
			Kind:        speakerNameKind(name),
			DisplayName: capitalizeName(name),
			LabelPrefix: prefix,
		}
		buf.WriteString(rest)
		buf.WriteString("\n")
	}
	flush()

	inferLeadingKind(turns)
	return turns
}

// matchLabel reports whether line opens a new turn. It returns the speaker
// name, the remainder of the line after the label, and the exact matched
// label prefix (needed to reconstruct the original text).
func matchLabel(line string) (name, rest, prefix string, ok bool) {
	if m := reGenericLabel.FindStringSubmatchIndex(line); m != nil {
		name = line[m[2]:m[3]]
		rest = line[m[4]:m[5]]
		return name, rest, line[:m[4]], true
	}
	if m := reKeywordLabel.FindStringSubmatchIndex(line); m != nil {
		name = line[m[2]:m[3]]
		rest = line[m[4]:m[5]]
		return name, rest, line[:m[4]], true
	}
	if m := reBareKeyword.FindStringSubmatch(line); m != nil {
		// The label is the whole line; keep its newline in the prefix so
		// reconstruction puts the body back on the following line.
		return m[1], "", line + "\n", true
	}
	return "", "", "", false
}

// speakerNameKind classifies a detected label name. Names matching a
// primary-party keyword are the user; everything else defaults to the
// counterpart, which is the safer guess for arbitrary "Alice:" labels in
// exported assistant transcripts.
func speakerNameKind(name string) string {
	if rePrimaryName.MatchString(name) {
		return KindPrimary
	}
	return KindCounterpart
}

// inferLeadingKind resolves a leading unlabeled turn by assuming two-party
// alternation: it takes the opposite kind of the turn that follows it.
func inferLeadingKind(turns []Turn) {
	if len(turns) < 2 || turns[0].Kind != KindUnknown {
		return
	}
	switch turns[1].Kind {
	case KindCounterpart:
		turns[0].Kind = KindPrimary
		turns[0].DisplayName = "User"
	case KindPrimary:
		turns[0].Kind = KindCounterpart
		turns[0].DisplayName = "Assistant"
	}
}

func capitalizeName(name string) string {
	r := []rune(strings.TrimSpace(name))
	if len(r) == 0 {
		return "Unknown"
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
