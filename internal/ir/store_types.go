package ir

// NOTE: These are store-layer records, not canonical values. They carry
// floats and are never hashed.

// BuildStatus is the outcome of one build attempt.
type BuildStatus string

const (
	BuildOK    BuildStatus = "ok"
	BuildError BuildStatus = "error"
)

// Build records one attempt to construct a named curve.
type Build struct {
	ID             string      `json:"id"` // Content-addressed (BuildID)
	RunID          string      `json:"run_id"`
	Seq            int64       `json:"seq"` // Logical clock
	CurveName      string      `json:"curve_name"`
	CurveType      string      `json:"curve_type"`
	Interpolation  string      `json:"interpolation"`
	DefinitionHash string      `json:"definition_hash"`
	Anchor         float64     `json:"anchor"` // Curve value at t=0
	Status         BuildStatus `json:"status"`
	ErrorCode      string      `json:"error_code,omitempty"`
	ErrorMessage   string      `json:"error_message,omitempty"`
	Pillars        []Pillar    `json:"pillars"`
}

// Pillar is one solved node of a successful build.
type Pillar struct {
	Tenor string  `json:"tenor"`
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}
