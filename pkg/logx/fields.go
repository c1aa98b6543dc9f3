package logx

const (
	FieldAppName    = "app-name"
	FieldAppVersion = "app-version"
	FieldDurationMs = "duration-ms"
	FieldError      = "error"
	FieldRunID      = "run-id"
	FieldOperator   = "operator"
	FieldTest       = "test"
	FieldRange      = "range"
	FieldPoint      = "point"
	FieldInstrument = "instrument"
	FieldResource   = "resource"
	FieldCommand    = "command"
	FieldResponse   = "response"
	FieldVerdict    = "verdict"
	FieldStep       = "step"
	FieldFile       = "file"
)
