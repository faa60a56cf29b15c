package ir

// Version constants for the definition schema and the tool.
const (
	// SchemaVersion is the curve definition schema version.
	SchemaVersion = "1"

	// Version is the curveforge release version.
	Version = "0.1.0"
)
