package model

// Entity labels recognized by the clinical-bundle mapper.
const (
	LabelLabTest   = "LAB_TEST"
	LabelVitalSign = "VITAL_SIGN"
)

// Entity is a labeled span of input text.
// Start and End are rune offsets into the exact input string, half-open [Start, End).
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}
