package verdict

import "github.com/bagcheck/authenticity-api/pkg/models"

const (
	confidenceIncomplete   = 30
	confidenceSuspicious   = 65
	confidenceModelChecked = 85
	confidenceAuthentic    = 75

	redFlagThreshold = 3

	reasonIncomplete = "Missing or unclear required views"
	reasonSuspicious = "Multiple technical inconsistencies detected"
	reasonAuthentic  = "All required views present; no universal red flags"
)

// Findings accumulates everything a request produced before the verdict is decided
type Findings struct {
	Missing           []models.ViewLabel
	RedFlags          []string
	Reasons           []string
	ModelRulesApplied bool
}

// Aggregate turns findings into a verdict. Missing coverage is checked first,
// then the red flag count; there is no other branch.
func Aggregate(f Findings) models.VerdictResult {
	result := models.VerdictResult{
		MissingPhotos: append([]models.ViewLabel{}, f.Missing...),
		RedFlags:      append([]string{}, f.RedFlags...),
	}

	var lead string
	switch {
	case len(f.Missing) > 0:
		result.Verdict = models.VerdictInconclusive
		result.Confidence = confidenceIncomplete
		lead = reasonIncomplete
	case len(f.RedFlags) >= redFlagThreshold:
		result.Verdict = models.VerdictLikelyNotAuthentic
		result.Confidence = confidenceSuspicious
		if f.ModelRulesApplied {
			result.Confidence = confidenceModelChecked
		}
		lead = reasonSuspicious
	default:
		result.Verdict = models.VerdictLikelyAuthentic
		result.Confidence = confidenceAuthentic
		lead = reasonAuthentic
	}

	result.Reasons = append([]string{lead}, f.Reasons...)
	return result
}
