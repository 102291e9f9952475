package testdata

// TestCase is one labeled input for detection accuracy validation.
//
// Naming convention for IDs:
//
//	TP-<AREA>-<NNN>  True Positive: hostile content correctly blocked
//	TN-<AREA>-<NNN>  True Negative: benign content correctly passed
//	FP-<AREA>-<NNN>  False Positive: benign content incorrectly blocked
//	FN-<AREA>-<NNN>  False Negative: hostile content missed
type TestCase struct {
	ID string

	// Content is the text handed to the engine.
	Content string

	// ExpectBlock is the correct decision for this content, regardless of
	// what the engine currently does.
	ExpectBlock bool

	// Classification is one of "TP", "TN", "FP", "FN". FP and FN cases
	// document known limitations of the pattern catalog.
	Classification string

	// Category is the wire name of the category expected to fire, or ""
	// for benign content.
	Category string

	Description string
}

// AllClassifications is the set of valid Classification values.
var AllClassifications = []string{"TP", "TN", "FP", "FN"}
