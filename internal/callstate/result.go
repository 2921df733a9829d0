package callstate

type StructuredData struct {
	IsQualified bool `json:"is_qualified"`
}

type Analysis struct {
	StructuredData StructuredData `json:"structuredData"`
}

// CallResult is the post-call analysis produced by the backend once the
// provider has delivered its end-of-call report.
type CallResult struct {
	Analysis Analysis `json:"analysis"`
	Summary  string   `json:"summary"`
}
