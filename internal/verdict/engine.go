// Package verdict decides whether a batch of handbag photos looks authentic.
//
// Photos are classified into views, graded by size, and used to infer brand and
// model from filenames. At most one serial/date-code photo is read per request.
// Brand and model rules then add reasons or red flags, and Aggregate maps the
// result onto one of three verdicts with a fixed confidence.
package verdict

import (
	"context"

	"github.com/bagcheck/authenticity-api/pkg/models"
	"github.com/bagcheck/authenticity-api/pkg/validation"
)

// Assessment is a verdict plus the intermediate signals that produced it
type Assessment struct {
	Result       models.VerdictResult
	Brand        Brand
	Model        string
	SerialText   string
	OCRAttempted bool
}

// Engine runs the verdict pipeline. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	extractor TextExtractor
	quality   *validation.QualityValidator
}

// NewEngine creates an engine. A nil extractor means serial photos are never read.
func NewEngine(extractor TextExtractor, quality *validation.QualityValidator) *Engine {
	if quality == nil {
		quality = validation.NewQualityValidator()
	}
	return &Engine{
		extractor: extractor,
		quality:   quality,
	}
}

// Evaluate produces the verdict for one request
func (e *Engine) Evaluate(ctx context.Context, req models.VerifyRequest) Assessment {
	var (
		findings      Findings
		viewsSeen     = make(map[models.ViewLabel]bool)
		qualityByView = make(map[models.ViewLabel]models.QualityTier)
		filenames     = make([]string, 0, len(req.Images))
		serialPresent bool
		candidate     *models.UploadedImage
	)

	for i := range req.Images {
		img := req.Images[i]
		filenames = append(filenames, img.Filename)

		view, classified := Classify(img.Filename, req.Labels[img.Filename])
		issues := e.quality.Validate(img, view)
		findings.RedFlags = append(findings.RedFlags, e.quality.ConvertIssuesToMessages(issues)...)
		if !classified {
			continue
		}

		clarity := e.quality.AssessSerialClarity(img, view)
		if clarity.Present {
			serialPresent = true
			if clarity.Clear && candidate == nil {
				candidate = &req.Images[i]
			}
		}

		if e.quality.HasCriticalIssues(issues) {
			continue
		}
		viewsSeen[view] = true
		if tier := e.quality.Tier(img.Size); tier.Rank() > qualityByView[view].Rank() {
			qualityByView[view] = tier
		}
	}

	serial := extractSerial(ctx, e.extractor, candidate, serialPresent)
	findings.Reasons = append(findings.Reasons, serial.Reason)

	assessment := Assessment{
		Brand:        InferBrand(filenames),
		SerialText:   serial.Text,
		OCRAttempted: serial.Attempted,
	}

	// Rules need a resolved brand and a clear serial photo. The format check
	// also needs text; model rules only look at view quality.
	if assessment.Brand != BrandUnknown && candidate != nil {
		if serial.Text != "" {
			findings.add(ApplyBrandRules(assessment.Brand, serial.Text))
		}

		if model, ok := InferModel(assessment.Brand, filenames); ok {
			assessment.Model = model.Name
			reasons, redFlags := ApplyModelRules(model, qualityByView)
			findings.Reasons = append(findings.Reasons, reasons...)
			findings.RedFlags = append(findings.RedFlags, redFlags...)
			findings.ModelRulesApplied = true
		}
	}

	findings.add(CompareDeclaredSerial(req.DeclaredSerial, serial.Text))

	for _, view := range models.RequiredViews {
		if !viewsSeen[view] {
			findings.Missing = append(findings.Missing, view)
		}
	}

	assessment.Result = Aggregate(findings)
	return assessment
}

func (f *Findings) add(reason, redFlag string) {
	if reason != "" {
		f.Reasons = append(f.Reasons, reason)
	}
	if redFlag != "" {
		f.RedFlags = append(f.RedFlags, redFlag)
	}
}
