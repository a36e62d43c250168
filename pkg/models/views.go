package models

// ViewLabel is a semantic photo angle or detail category.
type ViewLabel string

const (
	ViewFront      ViewLabel = "front"
	ViewBack       ViewLabel = "back"
	ViewSide       ViewLabel = "side"
	ViewBottom     ViewLabel = "bottom"
	ViewTop        ViewLabel = "top"
	ViewInterior   ViewLabel = "interior"
	ViewLogoStamp  ViewLabel = "logo_stamp"
	ViewHardware   ViewLabel = "hardware"
	ViewHandleBase ViewLabel = "handle_base"
	ViewStitching  ViewLabel = "stitching"
	ViewSerial     ViewLabel = "serial"
)

// AllViewLabels lists every accepted label.
var AllViewLabels = []ViewLabel{
	ViewFront, ViewBack, ViewSide, ViewBottom, ViewTop, ViewInterior,
	ViewLogoStamp, ViewHardware, ViewHandleBase, ViewStitching, ViewSerial,
}

// RequiredViews must each be observed at least once for a complete submission.
// The order is the order missing views are reported in.
var RequiredViews = []ViewLabel{
	ViewFront, ViewBack, ViewSide, ViewBottom, ViewTop, ViewInterior,
	ViewLogoStamp, ViewHardware, ViewHandleBase, ViewStitching,
}

// Valid reports whether v is one of the known labels.
func (v ViewLabel) Valid() bool {
	for _, l := range AllViewLabels {
		if v == l {
			return true
		}
	}
	return false
}

// SerialBearing reports whether photos of this view are expected to show a serial or date code.
func (v ViewLabel) SerialBearing() bool {
	return v == ViewSerial || v == ViewLogoStamp
}

// ParseViewLabel validates a caller supplied label against the enumeration as is.
func ParseViewLabel(s string) (ViewLabel, bool) {
	v := ViewLabel(s)
	if !v.Valid() {
		return "", false
	}
	return v, true
}

// QualityTier is a coarse legibility bucket derived from file size.
type QualityTier string

const (
	QualityMissing QualityTier = "missing"
	QualityPoor    QualityTier = "poor"
	QualityFair    QualityTier = "fair"
	QualityGood    QualityTier = "good"
)

// Rank orders tiers from missing (0) to good (3).
func (q QualityTier) Rank() int {
	switch q {
	case QualityPoor:
		return 1
	case QualityFair:
		return 2
	case QualityGood:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether q is the same as or better than other.
func (q QualityTier) AtLeast(other QualityTier) bool {
	return q.Rank() >= other.Rank()
}
