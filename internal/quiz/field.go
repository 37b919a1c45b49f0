package quiz

// FieldKind is the input element a field renders as.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldRadio    FieldKind = "radio"
	FieldCheckbox FieldKind = "checkbox"
)

// Verdict is the per-field outcome shown after checking.
type Verdict string

const (
	// VerdictNone marks a field with nothing to report (unchecked, or a
	// wrong choice the responder left alone).
	VerdictNone Verdict = ""
	// VerdictCorrect marks the canonical answer when the responder
	// picked something else.
	VerdictCorrect Verdict = "correct"
	// VerdictChosenRight marks a selected correct choice.
	VerdictChosenRight Verdict = "chosen-right"
	// VerdictChosenWrong marks a selected incorrect choice.
	VerdictChosenWrong Verdict = "chosen-wrong"
	// VerdictMissed marks a correct choice left unselected when other
	// selections were made alongside it.
	VerdictMissed Verdict = "missed"
)

// Field is one answerable input unit. Before checking it renders as an
// editable input; after checking it is read-only and carries a verdict.
type Field struct {
	ID       string    `json:"id"`
	Kind     FieldKind `json:"kind"`
	Label    string    `json:"label,omitempty"`
	Value    string    `json:"value,omitempty"`
	Selected bool      `json:"selected,omitempty"`
	Checked  bool      `json:"checked,omitempty"`
	Verdict  Verdict   `json:"verdict,omitempty"`
}
