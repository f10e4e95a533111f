package dialogue

// Speaker identifies which party a classified turn belongs to.
type Speaker string

// Speaker values produced by the classifier
const (
	SpeakerPrimary     Speaker = "primary"     // the human/user side
	SpeakerCounterpart Speaker = "counterpart" // the automated/assistant side
	SpeakerUncertain   Speaker = "uncertain"   // not enough signal either way
)

// Kind values carried by output turns
const (
	KindPrimary     = "primary"
	KindCounterpart = "counterpart"
	KindUnknown     = "unknown"
)

// Turn is one contiguous span of text attributed to a single speaker.
type Turn struct {
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
	Content     string `json:"content"`
	// LabelPrefix is the exact literal text that identified the speaker when
	// label-based detection matched; empty otherwise. Keeping it allows the
	// original text to be rebuilt losslessly.
	LabelPrefix string `json:"label_prefix,omitempty"`
}

// ClassificationResult is the per-turn output of the zero-shot classifier.
type ClassificationResult struct {
	Speaker          Speaker `json:"speaker"`
	Confidence       float64 `json:"confidence"`
	CounterpartScore int     `json:"counterpart_score"`
	PrimaryScore     int     `json:"primary_score"`
	// Features maps each fired feature to the weight it contributed, signed:
	// positive weights pushed toward counterpart, negative toward primary.
	Features map[string]int `json:"features"`
	// ContextBonus tags the previous-speaker nudge ("afterPrimary" or
	// "afterCounterpart") when one applied.
	ContextBonus string `json:"context_bonus,omitempty"`
	// CorrectedBy names the sequence-validation rule that overrode the
	// original decision, if any.
	CorrectedBy string `json:"corrected_by,omitempty"`
}

// Correction records a single sequence-validation override.
type Correction struct {
	Index int     `json:"index"`
	From  Speaker `json:"from"`
	To    Speaker `json:"to"`
	Rule  string  `json:"rule"`
}

// CorrectionLogger receives every override applied by the sequence validator.
// Implementations must tolerate concurrent appends; the log is never read back
// by the classifier.
type CorrectionLogger interface {
	Record(c Correction)
}
