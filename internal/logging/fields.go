package logging

// Standardized structured logging keys.
const (
	FieldComponent   = "component"
	FieldRunID       = "run_id"
	FieldSource      = "source"
	FieldStage       = "stage"
	FieldChapter     = "chapter"
	FieldEventType   = "event_type"
	FieldErrorHint   = "error_hint"
	FieldErrorKind   = "error_kind"
	FieldImpact      = "impact"
	FieldAlert       = "alert"
	FieldProgress    = "progress_percent"
	FieldChapterName = "chapter_name"
)
