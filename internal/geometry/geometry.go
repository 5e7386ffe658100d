// Package geometry holds the margin and page-projection arithmetic shared by
// the slide overlays.
//
// All margins are kept in canonical left/top/right/bottom order, as fractions
// of the reference surface. The only place another ordering exists is the
// media placement rectangle coming from the document, and the permutation is
// applied once, in Rect.PageMargins.
package geometry

import "fmt"

// Margins is the space around an overlay, as fractions of the reference
// surface, in left/top/right/bottom order.
type Margins struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Valid reports whether all four margins are non-negative. A negative margin
// means the overlay falls (partly) outside the visible surface.
func (m Margins) Valid() bool {
	return m.Left >= 0 && m.Top >= 0 && m.Right >= 0 && m.Bottom >= 0
}

func (m Margins) String() string {
	return fmt.Sprintf("LTRB(%.4f, %.4f, %.4f, %.4f)", m.Left, m.Top, m.Right, m.Bottom)
}

// Rect is a media placement rectangle in normalized page coordinates,
// origin top-left, with X1 <= X2 and Y1 <= Y2.
type Rect struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// PageMargins converts the placement rectangle to page-relative margins.
func (r Rect) PageMargins() Margins {
	return Margins{
		Left:   r.X1,
		Top:    r.Y1,
		Right:  1 - r.X2,
		Bottom: 1 - r.Y2,
	}
}

// PageType identifies which part of the document page the current surface
// displays. In dual-page documents (slide + notes side by side) each surface
// shows one horizontal half.
type PageType int

const (
	// FullPage shows the whole page.
	FullPage PageType = iota
	// LeftHalf shows the left half of the page, stretched to the surface.
	LeftHalf
	// RightHalf shows the right half of the page, stretched to the surface.
	RightHalf
)

func (p PageType) String() string {
	switch p {
	case FullPage:
		return "full"
	case LeftHalf:
		return "left-half"
	case RightHalf:
		return "right-half"
	default:
		return fmt.Sprintf("PageType(%d)", int(p))
	}
}

// ToScreen projects page-relative margins onto the displayed part of the
// page. Horizontal margins of a half page double and shift; vertical margins
// are unchanged. Media placed on the hidden half comes out with a negative
// margin, which callers treat as not placeable.
func (p PageType) ToScreen(m Margins) Margins {
	switch p {
	case LeftHalf:
		return Margins{
			Left:   2 * m.Left,
			Top:    m.Top,
			Right:  2*m.Right - 1,
			Bottom: m.Bottom,
		}
	case RightHalf:
		return Margins{
			Left:   2*m.Left - 1,
			Top:    m.Top,
			Right:  2 * m.Right,
			Bottom: m.Bottom,
		}
	default:
		return m
	}
}
