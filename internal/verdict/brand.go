package verdict

import (
	"strings"

	"github.com/bagcheck/authenticity-api/pkg/models"
)

// Brand is a brand from the closed vocabulary. The zero value means unknown.
type Brand string

const (
	BrandUnknown      Brand = ""
	BrandLouisVuitton Brand = "louis_vuitton"
	BrandGucci        Brand = "gucci"
	BrandChanel       Brand = "chanel"
	BrandPrada        Brand = "prada"
)

// minBrandVotes is the number of corroborating filenames a brand needs.
const minBrandVotes = 2

type brandHint struct {
	brand   Brand
	display string
	hints   []string
}

var brandHints = []brandHint{
	{BrandLouisVuitton, "Louis Vuitton", []string{"lv", "louis", "vuitton"}},
	{BrandGucci, "Gucci", []string{"gucci"}},
	{BrandChanel, "Chanel", []string{"chanel"}},
	{BrandPrada, "Prada", []string{"prada"}},
}

// DisplayName returns the brand as written in reasons and red flags
func (b Brand) DisplayName() string {
	for _, h := range brandHints {
		if h.brand == b {
			return h.display
		}
	}
	return "Unknown"
}

// Model is one entry of a brand's model vocabulary
type Model struct {
	Name         string
	Display      string
	Keywords     []string
	RequiredView models.ViewLabel
}

var brandModels = map[Brand][]Model{
	BrandLouisVuitton: {
		{Name: "neverfull", Display: "Neverfull", Keywords: []string{"neverfull"}, RequiredView: models.ViewInterior},
		{Name: "speedy", Display: "Speedy", Keywords: []string{"speedy"}, RequiredView: models.ViewLogoStamp},
		{Name: "alma", Display: "Alma", Keywords: []string{"alma"}, RequiredView: models.ViewHardware},
	},
	BrandGucci: {
		{Name: "marmont", Display: "Marmont", Keywords: []string{"marmont"}, RequiredView: models.ViewHardware},
		{Name: "dionysus", Display: "Dionysus", Keywords: []string{"dionysus"}, RequiredView: models.ViewHardware},
		{Name: "jackie", Display: "Jackie", Keywords: []string{"jackie"}, RequiredView: models.ViewLogoStamp},
	},
	BrandChanel: {
		{Name: "classic_flap", Display: "Classic Flap", Keywords: []string{"classic", "flap"}, RequiredView: models.ViewStitching},
		{Name: "boy", Display: "Boy", Keywords: []string{"boy"}, RequiredView: models.ViewHardware},
	},
	BrandPrada: {
		{Name: "galleria", Display: "Galleria", Keywords: []string{"galleria"}, RequiredView: models.ViewLogoStamp},
		{Name: "re_edition", Display: "Re-Edition", Keywords: []string{"re_edition", "reedition"}, RequiredView: models.ViewHardware},
	},
}

// InferBrand votes over filenames. Each filename counts at most once per brand.
// The brand with strictly the most votes wins if it has at least two; ties are unknown.
func InferBrand(filenames []string) Brand {
	votes := make(map[Brand]int, len(brandHints))
	for _, name := range filenames {
		normalized := NormalizeFilename(name)
		for _, h := range brandHints {
			if containsAny(normalized, h.hints) {
				votes[h.brand]++
			}
		}
	}

	best, bestVotes, tied := BrandUnknown, 0, false
	for _, h := range brandHints {
		n := votes[h.brand]
		switch {
		case n > bestVotes:
			best, bestVotes, tied = h.brand, n, false
		case n == bestVotes && n > 0:
			tied = true
		}
	}

	if tied || bestVotes < minBrandVotes {
		return BrandUnknown
	}
	return best
}

// InferModel returns the first model of the brand's vocabulary named in any filename
func InferModel(brand Brand, filenames []string) (Model, bool) {
	candidates, ok := brandModels[brand]
	if !ok {
		return Model{}, false
	}

	normalized := make([]string, 0, len(filenames))
	for _, name := range filenames {
		normalized = append(normalized, NormalizeFilename(name))
	}

	for _, m := range candidates {
		for _, name := range normalized {
			if containsAny(name, m.Keywords) {
				return m, true
			}
		}
	}
	return Model{}, false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
