package compose

import "classdeck/document"

// Page geometry contract. These constants define the output byte-for-byte;
// changing any of them changes every produced document.
const (
	PageWidth  = 612.0 // Letter
	PageHeight = 792.0
	BandHeight = 100.0 // reserved header band

	BodyFontSize    = 12.0
	CaptionFontSize = 8.0

	TextLeftMargin = 10.0 // overlay text x
	TextTopOffset  = 20.0 // first baseline below page top
	LinePitch      = 15.0
	GapPitch       = 8.0 // vertical space for a blank source line

	CaptionRightOffset = 80.0 // caption x from right edge
	CaptionTopOffset   = 15.0 // caption baseline below page top

	imageSideMargin = 20.0 // per side, band variant only
)

// Anchor selects how a fitted image sits inside its drawable area.
type Anchor int

const (
	// AnchorBottom centers horizontally and rests on the area's bottom edge.
	AnchorBottom Anchor = iota
	// AnchorCenter centers in both axes.
	AnchorCenter
)

// Placement is the computed size and position of an image scaled to fit a
// drawable area without distortion or cropping.
type Placement struct {
	Scale  float64
	Width  float64
	Height float64
	X      float64
	Y      float64
}

// Fit computes the uniform scale min(areaW/w, areaH/h) and anchors the
// scaled image inside area. The result never exceeds the area in either
// dimension.
func Fit(imgWidth, imgHeight int, area document.Rectangle, anchor Anchor) Placement {
	w := float64(imgWidth)
	h := float64(imgHeight)
	scale := area.Width() / w
	if s := area.Height() / h; s < scale {
		scale = s
	}
	p := Placement{Scale: scale, Width: w * scale, Height: h * scale}
	p.X = area.LLX + (area.Width()-p.Width)/2
	switch anchor {
	case AnchorCenter:
		p.Y = area.LLY + (area.Height()-p.Height)/2
	default:
		p.Y = area.LLY
	}
	return p
}

// bandImageArea is the drawable image area of the header-band variant: the
// page minus the band on top and a fixed margin on each side.
func bandImageArea() document.Rectangle {
	return document.Rectangle{
		LLX: imageSideMargin,
		LLY: 0,
		URX: PageWidth - imageSideMargin,
		URY: PageHeight - BandHeight,
	}
}

func fullPageArea() document.Rectangle {
	return document.Rectangle{URX: PageWidth, URY: PageHeight}
}
