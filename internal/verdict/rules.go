package verdict

import (
	"fmt"
	"regexp"

	"github.com/arbovm/levenshtein"
	"github.com/bagcheck/authenticity-api/pkg/models"
)

var serialFormats = map[Brand]*regexp.Regexp{
	BrandLouisVuitton: regexp.MustCompile(`^[A-Z0-9]{4,6}$`),
	BrandGucci:        regexp.MustCompile(`^[0-9]{8,14}$`),
	BrandChanel:       regexp.MustCompile(`^[0-9]{7,8}$`),
	BrandPrada:        regexp.MustCompile(`^[A-Z0-9]{6,10}$`),
}

// maxDeclaredSerialDistance tolerates one misread character
const maxDeclaredSerialDistance = 1

// ApplyBrandRules checks a normalized serial against the brand's format.
// Exactly one of reason or redFlag is set for a known brand.
func ApplyBrandRules(brand Brand, serial string) (reason, redFlag string) {
	format, ok := serialFormats[brand]
	if !ok || serial == "" {
		return "", ""
	}
	if format.MatchString(serial) {
		return fmt.Sprintf("%s serial/date code format is consistent", brand.DisplayName()), ""
	}
	return "", fmt.Sprintf("%s serial/date code format does not match expected pattern", brand.DisplayName())
}

// ApplyModelRules checks the model's extra view requirement against the best tier seen for that view
func ApplyModelRules(model Model, qualityByView map[models.ViewLabel]models.QualityTier) (reasons, redFlags []string) {
	tier, ok := qualityByView[model.RequiredView]
	if ok && tier.AtLeast(models.QualityGood) {
		reasons = append(reasons, fmt.Sprintf("%s: %s photo meets model-specific quality expectation", model.Display, model.RequiredView))
		return reasons, nil
	}
	redFlags = append(redFlags, fmt.Sprintf("%s: %s photo missing or below required quality", model.Display, model.RequiredView))
	return nil, redFlags
}

// CompareDeclaredSerial compares the seller's declared serial with the extracted one
func CompareDeclaredSerial(declared, extracted string) (reason, redFlag string) {
	declared = NormalizeSerial(declared)
	if declared == "" || extracted == "" {
		return "", ""
	}
	if levenshtein.Distance(declared, extracted) <= maxDeclaredSerialDistance {
		return "Extracted serial matches declared serial", ""
	}
	return "", "Extracted serial does not match declared serial"
}
