package logging

// Structured log keys shared by every romhash component. Handlers treat
// FieldPlatform and FieldROMID as the line subject rather than as fields.
const (
	FieldComponent     = "component"
	FieldROMID         = "rom_id"
	FieldPlatform      = "platform"
	FieldROMPath       = "rom_path"
	FieldCorrelationID = "correlation_id"
	FieldHash          = "hash"
	FieldExitCode      = "exit_code"
	FieldStderr        = "stderr"
	// FieldEventType classifies a line for filtering, e.g. "hash_recorded".
	FieldEventType = "event_type"
	FieldErrorKind = "error_kind"
	// FieldErrorHint is the next step an operator should take.
	FieldErrorHint = "error_hint"
	// FieldImpact is what the user loses because of a warning.
	FieldImpact = "impact"
)
