package dialogue

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Each feature is a surface-level textual signal that adds a fixed weight to
// exactly one side's score. The catalogue is data, not branching: the scorer
// folds over it in order, so individual entries stay independently testable.
type feature struct {
	name   string
	weight int
	target Speaker
	match  func(text string) bool
}

var (
	reCodeFence      = regexp.MustCompile("```")
	reHeading        = regexp.MustCompile(`(?m)^#{1,3} `)
	rePolite         = regexp.MustCompile(`(?i)\b(please|could you|can you|would you|will you|may i)\b`)
	rePresentation   = regexp.MustCompile(`(?i)\bhere(?: is| are|'s a|'s an)\b`)
	reOfferHelp      = regexp.MustCompile(`(?i)\b(i'll|i will|let me|i can)\b`)
	reCasual         = regexp.MustCompile(`(?i)\b(yeah|nah|gonna|wanna|kinda|sorta|dunno)\b`)
	reFormal         = regexp.MustCompile(`(?i)\b(additionally|furthermore|therefore|however|moreover|consequently)\b`)
	reMetaReference  = regexp.MustCompile(`(?i)\bas (i )?(mentioned|said|noted|discussed)\b`)
	reApologetic     = regexp.MustCompile(`(?i)\b(sorry|apologies|apologize|my mistake)\b`)
	reImperative     = regexp.MustCompile(`(?i)^(make|create|write|fix|explain|generate|show|give me|help|build|design)\b`)
	reCodeLike       = regexp.MustCompile(`(?i)\b(function|const|let|var|class)\b|</?[a-z][^>\n]*>`)
	reCodeExplainers = regexp.MustCompile(`(?i)\b(this (code|function|snippet)|the (code|function)|explanation|works|means|returns)\b`)
	reDetailedList   = regexp.MustCompile(`(?m)^\s*(?:\d+[.)]|[-*•])\s+.{20,}`)
	reGratitude      = regexp.MustCompile(`(?i)\b(thanks|thank you|thx|appreciate)\b`)
	reEmoji          = regexp.MustCompile(`[\x{2600}-\x{26FF}\x{2700}-\x{27BF}\x{1F300}-\x{1F5FF}\x{1F600}-\x{1F64F}\x{1F680}-\x{1F6FF}\x{1F900}-\x{1F9FF}]`)
	reUserMarker     = regexp.MustCompile(`(?i)^(user|human|me)\s*:`)
	reAIMarker       = regexp.MustCompile(`(?i)^(assistant|ai|claude|gpt|bot)\s*:`)
)

// featureCatalogue is evaluated in order against the trimmed turn text.
// Weights are always positive; a feature "against" a speaker simply targets
// the other side.
var featureCatalogue = []feature{
	{"codeBlock", 4, SpeakerCounterpart, func(t string) bool {
		return reCodeFence.MatchString(t)
	}},
	{"markdownHeading", 2, SpeakerCounterpart, func(t string) bool {
		return reHeading.MatchString(t)
	}},
	{"longText", 3, SpeakerCounterpart, func(t string) bool {
		return utf8.RuneCountInString(t) > 500
	}},
	{"shortText", 2, SpeakerPrimary, func(t string) bool {
		return utf8.RuneCountInString(t) < 80
	}},
	{"multiParagraph", 2, SpeakerCounterpart, func(t string) bool {
		return countParagraphs(t) > 2
	}},
	{"endsWithQuestion", 3, SpeakerPrimary, func(t string) bool {
		return strings.HasSuffix(t, "?")
	}},
	{"politeRequest", 3, SpeakerPrimary, func(t string) bool {
		return rePolite.MatchString(t)
	}},
	{"presentationPhrase", 3, SpeakerCounterpart, func(t string) bool {
		return rePresentation.MatchString(t)
	}},
	{"offerHelp", 2, SpeakerCounterpart, func(t string) bool {
		return reOfferHelp.MatchString(t)
	}},
	{"casualSpeech", 2, SpeakerPrimary, func(t string) bool {
		return reCasual.MatchString(t)
	}},
	{"formalConnectors", 2, SpeakerCounterpart, func(t string) bool {
		return reFormal.MatchString(t)
	}},
	{"metaReference", 2, SpeakerCounterpart, func(t string) bool {
		return reMetaReference.MatchString(t)
	}},
	{"apologetic", 2, SpeakerCounterpart, func(t string) bool {
		return reApologetic.MatchString(t)
	}},
	{"imperativeCommand", 3, SpeakerPrimary, func(t string) bool {
		return reImperative.MatchString(t)
	}},
	{"explainedCode", 2, SpeakerCounterpart, func(t string) bool {
		return utf8.RuneCountInString(t) > 100 &&
			reCodeLike.MatchString(t) && reCodeExplainers.MatchString(t)
	}},
	{"detailedList", 2, SpeakerCounterpart, func(t string) bool {
		return reDetailedList.MatchString(t)
	}},
	{"gratitude", 2, SpeakerPrimary, func(t string) bool {
		return reGratitude.MatchString(t)
	}},
	{"hasEmoji", 2, SpeakerPrimary, func(t string) bool {
		return reEmoji.MatchString(t)
	}},
	{"capsIntensity", 2, SpeakerPrimary, func(t string) bool {
		return capsRatio(t) > 0.3 && utf8.RuneCountInString(t) > 10
	}},
	{"explicitUserMarker", 10, SpeakerPrimary, func(t string) bool {
		return reUserMarker.MatchString(t)
	}},
	{"explicitAIMarker", 10, SpeakerCounterpart, func(t string) bool {
		return reAIMarker.MatchString(t)
	}},
}

// FeatureDescriptions maps each feature key to a one-sentence explanation for
// diagnostic UIs. Every catalogue entry (plus the context bonus) has an entry
// here; keep the two in sync when the catalogue changes.
var FeatureDescriptions = map[string]string{
	"codeBlock":          "Contains a fenced code block, which assistants produce far more often than users.",
	"markdownHeading":    "Starts a line with a markdown heading, typical of structured assistant answers.",
	"longText":           "Runs longer than 500 characters; verbose messages lean assistant.",
	"shortText":          "Runs shorter than 80 characters; terse messages lean user.",
	"multiParagraph":     "Has more than two paragraphs, typical of explanatory assistant answers.",
	"endsWithQuestion":   "Ends with a question mark; questions usually come from the user.",
	"politeRequest":      "Contains a polite request phrase such as 'could you' or 'please'.",
	"presentationPhrase": "Introduces content with 'here is'/'here's a', a signature assistant opener.",
	"offerHelp":          "Offers to act ('I'll', 'let me', 'I can'), characteristic of assistants.",
	"casualSpeech":       "Uses casual speech like 'yeah' or 'gonna', characteristic of users.",
	"formalConnectors":   "Uses formal connectors like 'furthermore' or 'therefore', leaning assistant.",
	"metaReference":      "Refers back to earlier discussion ('as mentioned'), leaning assistant.",
	"apologetic":         "Apologizes or concedes a mistake, which assistants do more often.",
	"imperativeCommand":  "Opens with an imperative like 'write' or 'fix', typical of user requests.",
	"explainedCode":      "Mixes code-like tokens with explanatory prose, typical of assistant answers.",
	"detailedList":       "Contains a substantial numbered or bulleted list item, leaning assistant.",
	"gratitude":          "Expresses thanks, which usually comes from the user.",
	"hasEmoji":           "Contains an emoji, more common in user messages.",
	"capsIntensity":      "Shouts in capitals for a large share of its letters, leaning user.",
	"explicitUserMarker": "Starts with an explicit user label such as 'user:' or 'me:'.",
	"explicitAIMarker":   "Starts with an explicit assistant label such as 'assistant:' or 'gpt:'.",
	"contextBonus":       "Small nudge toward alternating with the previous turn's speaker.",
}

// countParagraphs counts blank-line-separated paragraphs.
func countParagraphs(text string) int {
	n := 0
	for _, block := range splitBlocks(text) {
		if strings.TrimSpace(block) != "" {
			n++
		}
	}
	return n
}

// capsRatio returns the share of letters that are uppercase. Non-letters are
// ignored so that code and punctuation do not dilute the signal.
func capsRatio(text string) float64 {
	letters, upper := 0, 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(upper) / float64(letters)
}
