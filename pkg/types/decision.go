// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// NullHeadWord is the placeholder the feature extractor writes when a
// question has no head word.
const NullHeadWord = "null"

// Features are the pre-computed per-question inputs: the wh-word, the
// syntactic head word and the head word's part-of-speech tag.
type Features struct {
	WhWord   string `json:"wh_word" yaml:"wh_word"`
	HeadWord string `json:"head_word" yaml:"head_word"`
	POSTag   string `json:"pos_tag" yaml:"pos_tag"`
}

// Outcome says whether the classifier produced a label.
type Outcome string

const (
	OutcomeDecided    Outcome = "decided"
	OutcomeNoDecision Outcome = "no_decision"
)

// Reason explains a no-decision outcome.
type Reason string

const (
	ReasonNone Reason = ""

	// ReasonNoHeadWord: the head word is empty or "null".
	ReasonNoHeadWord Reason = "no_head_word"

	// ReasonCompoundHeadWord: the head word contains a colon, which marks
	// an unresolved compound feature token such as "DESC:def".
	ReasonCompoundHeadWord Reason = "compound_head_word"

	// ReasonUndetermined: the head word has no senses in the lexicon.
	ReasonUndetermined Reason = "undetermined"

	// ReasonUninformative: every category scored 0.0.
	ReasonUninformative Reason = "uninformative"

	// ReasonCancelled: the batch was cancelled before the question ran.
	ReasonCancelled Reason = "cancelled"
)

// Decision is the classifier output for one question.
type Decision struct {
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	Reason  Reason  `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Label is the chosen fine-grained category; empty without a decision.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Sense is the disambiguated head word sense ID.
	Sense string `json:"sense,omitempty" yaml:"sense,omitempty"`

	// Generalized is the sense ID after hypernym projection.
	Generalized string `json:"generalized,omitempty" yaml:"generalized,omitempty"`

	// Score is the maximum path similarity reached by any category.
	Score float64 `json:"score" yaml:"score"`

	// Tied lists every category label that reached Score.
	Tied []string `json:"tied,omitempty" yaml:"tied,omitempty"`

	// TieBreakScore and WordsUsed are set when more than one category tied.
	TieBreakScore float64 `json:"tie_break_score,omitempty" yaml:"tie_break_score,omitempty"`
	WordsUsed     int     `json:"words_used,omitempty" yaml:"words_used,omitempty"`
}

// Decided reports whether d carries a label.
func (d Decision) Decided() bool {
	return d.Outcome == OutcomeDecided
}

// NoDecision returns a decision without a label for the given reason.
func NoDecision(r Reason) Decision {
	return Decision{Outcome: OutcomeNoDecision, Reason: r}
}
