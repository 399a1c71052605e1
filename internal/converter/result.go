package converter

// EmptyConverted is the canonical serialization of zero declarative entries.
const EmptyConverted = "[]"

// Result is the outcome of converting a list of rules.  It is a value type:
// the clipper and other consumers derive new results instead of mutating a
// shared one, so no aliasing crosses callers.
type Result struct {
	// Converted is the serialized declarative entry array.  It is always a
	// syntactically valid array-of-objects text with no surrounding
	// whitespace, [EmptyConverted] when there are no entries.
	Converted string `json:"converted"`

	// Advanced is the serialized advanced-blocking stream in the configured
	// format.  It is empty when advanced blocking is disabled or no rule
	// required it.
	Advanced string `json:"advancedBlocking,omitempty"`

	// ConvertedCount is the number of top-level entries present in
	// Converted.
	ConvertedCount int `json:"convertedCount"`

	// TotalConvertedCount also counts the entries dropped by optimization
	// and the rule limit.
	TotalConvertedCount int `json:"totalConvertedCount"`

	// ErrorsCount is the number of input lines that could not be converted.
	ErrorsCount int `json:"errorsCount"`

	// OverLimit is true if the rule limit truncated the output.
	OverLimit bool `json:"overLimit"`
}

// EmptyResult returns the canonical result of converting no rules.
func EmptyResult() (res Result) {
	return Result{
		Converted: EmptyConverted,
	}
}
