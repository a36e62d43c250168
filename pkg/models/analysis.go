package models

// Verdict is the three-way outcome of a verification request
type Verdict string

const (
	VerdictLikelyAuthentic    Verdict = "Likely Authentic"
	VerdictLikelyNotAuthentic Verdict = "Likely Not Authentic"
	VerdictInconclusive       Verdict = "Inconclusive"
)

// ServerErrorReason is reported when verification fails unexpectedly
const ServerErrorReason = "Server error during verification"

// VerdictResult is the response body of POST /verify.
// Slices are always non-nil so they serialize as [] rather than null.
type VerdictResult struct {
	Verdict       Verdict     `json:"verdict"`
	Confidence    int         `json:"confidence"`
	Reasons       []string    `json:"reasons"`
	MissingPhotos []ViewLabel `json:"missingPhotos"`
	RedFlags      []string    `json:"redFlags"`
}

// NewInconclusiveResult builds the zero-confidence result used for rejected or failed requests
func NewInconclusiveResult(reason string) VerdictResult {
	return VerdictResult{
		Verdict:       VerdictInconclusive,
		Confidence:    0,
		Reasons:       []string{reason},
		MissingPhotos: []ViewLabel{},
		RedFlags:      []string{},
	}
}

// UploadedImage is one photo from a request. It is never persisted.
type UploadedImage struct {
	Filename string
	Size     int64
	MIMEType string
	Content  []byte
}
