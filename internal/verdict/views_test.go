package verdict

import (
	"testing"

	"github.com/bagcheck/authenticity-api/pkg/models"
)

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Front.JPG", "front.jpg"},
		{"handle  base.jpg", "handle_base.jpg"},
		{"date - code.png", "date_code.png"},
		{"LV__Speedy--stamp.jpg", "lv_speedy_stamp.jpg"},
		{"  lead.jpg", "_lead.jpg"},
		{"ＦＲＯＮＴ.jpg", "front.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeFilename(tt.in); got != tt.want {
				t.Errorf("NormalizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		explicit models.ViewLabel
		want     models.ViewLabel
		wantOK   bool
	}{
		{"front", "front.jpg", "", models.ViewFront, true},
		{"back", "back.jpg", "", models.ViewBack, true},
		{"side", "side.jpg", "", models.ViewSide, true},
		{"bottom", "bottom.jpg", "", models.ViewBottom, true},
		{"top", "top.jpg", "", models.ViewTop, true},
		{"interior", "interior.jpg", "", models.ViewInterior, true},
		{"stamp", "stamp.jpg", "", models.ViewLogoStamp, true},
		{"zipper", "zipper.jpg", "", models.ViewHardware, true},
		{"handle", "handle.jpg", "", models.ViewHandleBase, true},
		{"stitch", "stitch.jpg", "", models.ViewStitching, true},
		{"serial", "Serial Number.jpg", "", models.ViewSerial, true},
		{"date code with space", "date code.png", "", models.ViewSerial, true},
		{"handle beats base", "handle base.jpg", "", models.ViewHandleBase, true},
		{"inside beats side", "inside_pocket.jpg", "", models.ViewInterior, true},
		{"underside is bottom", "underside.jpg", "", models.ViewBottom, true},
		{"stamp beats front", "front_stamp.jpg", "", models.ViewLogoStamp, true},
		{"no keyword", "img1.jpg", "", "", false},
		{"explicit label wins", "img1.jpg", models.ViewFront, models.ViewFront, true},
		{"explicit overrides keyword", "back.jpg", models.ViewInterior, models.ViewInterior, true},
		{"invalid explicit ignored", "back.jpg", models.ViewLabel("sideways"), models.ViewBack, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.filename, tt.explicit)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Classify(%q, %q) = (%q, %v), want (%q, %v)", tt.filename, tt.explicit, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	names := []string{"front.jpg", "handle base.jpg", "img1.jpg", "LV speedy stamp.jpg"}
	for _, name := range names {
		first, firstOK := Classify(name, "")
		for i := 0; i < 3; i++ {
			got, ok := Classify(name, "")
			if got != first || ok != firstOK {
				t.Errorf("Classify(%q) changed between calls: (%q, %v) then (%q, %v)", name, first, firstOK, got, ok)
			}
		}
	}
}
