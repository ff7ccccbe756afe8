package stepper

import "math"

// Bucket is a viewport width class.
type Bucket int

const (
	Mobile Bucket = iota
	Tablet
	Desktop
)

func (b Bucket) String() string {
	switch b {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// BucketForWidth classifies a viewport width in CSS pixels.
func BucketForWidth(width float64) Bucket {
	switch {
	case width < 768:
		return Mobile
	case width < 1024:
		return Tablet
	default:
		return Desktop
	}
}

// CardTransform is the placement of one card in the stack.
type CardTransform struct {
	X      float64
	Y      float64
	Rotate float64
	Z      int
	Scale  float64
}

// CardSize is the rendered card box.
type CardSize struct {
	Width   int
	Height  int
	Padding string
}

type displacement struct {
	y, x, rotate, scale float64
}

const (
	levelMultiplier = 2
	activeZ         = 30
	behindOffsetY   = 15
	behindOffsetX   = 10
	behindRotate    = -8
)

var baseDisplacement = map[Bucket]displacement{
	Desktop: {y: -500, x: 60, rotate: 15, scale: 0.97},
	Tablet:  {y: -480, x: 45, rotate: 15, scale: 0.95},
	Mobile:  {y: -400, x: 30, rotate: 15, scale: 0.9},
}

var cardSizes = map[Bucket]CardSize{
	Desktop: {Width: 432, Height: 423, Padding: "91px 48px"},
	Tablet:  {Width: 360, Height: 350, Padding: "60px 36px"},
	Mobile:  {Width: 270, Height: 270, Padding: "40px 24px"},
}

// SizeFor returns the card box for a bucket.
func SizeFor(b Bucket) CardSize {
	if size, ok := cardSizes[b]; ok {
		return size
	}
	return cardSizes[Desktop]
}

var active = CardTransform{Z: activeZ, Scale: 1}

// Transform places card cardIndex (0-based) when card activeIndex is in
// front. activeIndex 0 is the idle preview fan shown before the section
// enters view.
func Transform(cardIndex, activeIndex int, b Bucket) CardTransform {
	base, ok := baseDisplacement[b]
	if !ok {
		base = baseDisplacement[Desktop]
	}
	first := CardTransform{X: base.x, Y: base.y, Rotate: base.rotate, Z: 40, Scale: base.scale}
	second := CardTransform{
		X:      base.x * levelMultiplier,
		Y:      base.y * levelMultiplier,
		Rotate: base.rotate * levelMultiplier,
		Z:      50,
		Scale:  math.Max(0.8, base.scale-0.05),
	}
	behind := func(depth int) CardTransform {
		return CardTransform{
			X:      behindOffsetX * float64(depth),
			Y:      behindOffsetY * float64(depth),
			Rotate: behindRotate * float64(depth),
			Z:      activeZ - 10*depth,
			Scale:  1,
		}
	}

	switch activeIndex {
	case 0:
		if cardIndex >= 0 && cardIndex < CardCount {
			return CardTransform{Rotate: float64(cardIndex) * behindRotate, Z: activeZ - cardIndex*10, Scale: 1}
		}
	case 1:
		switch cardIndex {
		case 0:
			return active
		case 1:
			return behind(1)
		case 2:
			return behind(2)
		}
	case 2:
		switch cardIndex {
		case 0:
			return first
		case 1:
			return active
		case 2:
			return behind(1)
		}
	case 3:
		height := float64(SizeFor(b).Height)
		pushY := -math.Ceil(height * 0.25)
		pushRotate := -math.Ceil(height * 0.02)
		var t CardTransform
		switch cardIndex {
		case 0:
			t = second
		case 1:
			t = first
		case 2:
			t = active
		default:
			return CardTransform{Scale: 1}
		}
		t.Y += pushY
		t.Rotate += pushRotate
		return t
	}
	return CardTransform{Scale: 1}
}
