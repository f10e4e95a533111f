package dialogue

import "testing"

// The description table feeds the explanatory UI; every catalogue entry must
// have one, and nothing stale may linger.
func TestFeatureDescriptions_MatchCatalogue(t *testing.T) {
	names := map[string]bool{"contextBonus": true}
	for _, f := range featureCatalogue {
		names[f.name] = true
		if _, ok := FeatureDescriptions[f.name]; !ok {
			t.Errorf("feature %q has no description", f.name)
		}
	}
	for key := range FeatureDescriptions {
		if !names[key] {
			t.Errorf("description %q has no matching feature", key)
		}
	}
}

func TestFeatureWeightsArePositive(t *testing.T) {
	for _, f := range featureCatalogue {
		if f.weight <= 0 {
			t.Errorf("feature %q has non-positive weight %d", f.name, f.weight)
		}
		if f.target != SpeakerPrimary && f.target != SpeakerCounterpart {
			t.Errorf("feature %q has invalid target %s", f.name, f.target)
		}
	}
}

func TestFeaturePredicates(t *testing.T) {
	cases := []struct {
		feature string
		text    string
		want    bool
	}{
		{"codeBlock", "```go\nfmt.Println()\n```", true},
		{"codeBlock", "no fences here", false},
		{"markdownHeading", "## Setup\ndetails", true},
		{"markdownHeading", "#### too deep", false},
		{"markdownHeading", "#nospace", false},
		{"endsWithQuestion", "are you sure?", true},
		{"politeRequest", "Could you check this", true},
		{"presentationPhrase", "Here's a quick summary", true},
		{"offerHelp", "I'll take care of it", true},
		{"casualSpeech", "gonna need a minute", true},
		{"formalConnectors", "Therefore, it holds", true},
		{"metaReference", "as mentioned before", true},
		{"metaReference", "as I said earlier", true},
		{"apologetic", "sorry about that", true},
		{"imperativeCommand", "write a sorting routine", true},
		{"imperativeCommand", "please write it", false},
		{"detailedList", "1. configure the database connection pool", true},
		{"detailedList", "1. short", false},
		{"gratitude", "thx for the pointer", true},
		{"hasEmoji", "nice work 🎉", true},
		{"hasEmoji", "nice work", false},
		{"capsIntensity", "WHY IS THIS BROKEN again", true},
		{"capsIntensity", "why is this broken again", false},
		{"explicitUserMarker", "human: next question", true},
		{"explicitAIMarker", "gpt: certainly", true},
		{"explicitAIMarker", "the gpt: style marker midway", false},
	}

	byName := map[string]feature{}
	for _, f := range featureCatalogue {
		byName[f.name] = f
	}

	for _, tc := range cases {
		f, ok := byName[tc.feature]
		if !ok {
			t.Fatalf("unknown feature %q", tc.feature)
		}
		if got := f.match(tc.text); got != tc.want {
			t.Errorf("%s(%q) got %v, want %v", tc.feature, tc.text, got, tc.want)
		}
	}
}

func TestCapsRatio(t *testing.T) {
	if got := capsRatio("ABC def"); got != 0.5 {
		t.Errorf("got %v, want 0.5", got)
	}
	if got := capsRatio("123 !!!"); got != 0 {
		t.Errorf("letterless text got %v, want 0", got)
	}
}

func TestCountParagraphs(t *testing.T) {
	if got := countParagraphs("one\n\ntwo\n\nthree"); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
	if got := countParagraphs("one\n\n   \n\ntwo"); got != 2 {
		t.Errorf("blank-only block counted: got %d, want 2", got)
	}
}
