package llm

// ReadResult is what an engine extracted from a photo. Confirmation
// fields are filled by ApplyReadPolicy, not by the model.
type ReadResult struct {
	// Text is the problem statement, transcribed as written. Spans the
	// model could not read are marked in [square brackets].
	Text string `json:"text"`
	// Confidence is the model's own 0..1 estimate that Text is faithful.
	// Plain OCR engines that report nothing leave it at 0.
	Confidence float64 `json:"confidence"`
	// Note carries anything the model wants the user to know: skew, crop,
	// a second problem half out of frame.
	Note string `json:"note"`

	ConfirmationNeeded bool   `json:"confirmation_needed"`
	ConfirmationReason string `json:"confirmation_reason"` // "low_confidence" | "unreadable_spans" | "empty_text" | "none"
}
