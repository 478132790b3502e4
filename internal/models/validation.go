package models

// ValidationInfo is the live comparison of typed input against a target affirmation.
type ValidationInfo struct {
	IsCorrectSoFar  bool `json:"isCorrectSoFar"`
	IsCompleteMatch bool `json:"isCompleteMatch"`
	Percent         int  `json:"percent"`
	InputLength     int  `json:"inputLength"`
	TargetLength    int  `json:"targetLength"`
}

// HighlightSegments splits the display target into typed-correct, typed-wrong and
// not-yet-typed portions.
type HighlightSegments struct {
	Correct   string `json:"correct"`
	Incorrect string `json:"incorrect"`
	Remaining string `json:"remaining"`
}
