package verdict

import (
	"strings"
	"unicode"

	"github.com/bagcheck/authenticity-api/pkg/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

type viewRule struct {
	label    models.ViewLabel
	keywords []string
}

// viewRules is evaluated top to bottom and the first hit wins, so earlier rows
// take overlapping keywords: "handle_base" is a handle shot, "inside" is interior,
// "underside" is bottom.
var viewRules = []viewRule{
	{models.ViewSerial, []string{"serial", "date_code", "datecode"}},
	{models.ViewLogoStamp, []string{"stamp", "logo", "emboss"}},
	{models.ViewInterior, []string{"interior", "inside", "lining"}},
	{models.ViewHandleBase, []string{"handle", "strap"}},
	{models.ViewStitching, []string{"stitch", "seam"}},
	{models.ViewHardware, []string{"hardware", "zipper", "zip", "buckle", "clasp", "lock", "rivet"}},
	{models.ViewBottom, []string{"bottom", "base", "underside", "feet"}},
	{models.ViewTop, []string{"top", "opening"}},
	{models.ViewFront, []string{"front"}},
	{models.ViewBack, []string{"back", "rear"}},
	{models.ViewSide, []string{"side", "profile"}},
}

var lowerCaser = cases.Lower(language.Und)

// NormalizeFilename lowercases a filename and collapses each run of whitespace,
// underscores and hyphens into a single underscore.
func NormalizeFilename(name string) string {
	lowered := lowerCaser.String(norm.NFKC.String(name))

	var b strings.Builder
	b.Grow(len(lowered))
	pendingSep := false
	for _, r := range lowered {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			pendingSep = true
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	if pendingSep {
		b.WriteByte('_')
	}
	return b.String()
}

// Classify assigns a view to an image. A valid explicit label always wins;
// otherwise the normalized filename is matched against the keyword table.
func Classify(filename string, explicit models.ViewLabel) (models.ViewLabel, bool) {
	if explicit.Valid() {
		return explicit, true
	}

	normalized := NormalizeFilename(filename)
	for _, rule := range viewRules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return rule.label, true
			}
		}
	}
	return "", false
}
