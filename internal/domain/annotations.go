package domain

// HighlightColor is one of the fixed highlight palette.
type HighlightColor string

// Highlight palette. The renderer maps these to concrete fill/border colors.
const (
	HighlightYellow HighlightColor = "yellow"
	HighlightGreen  HighlightColor = "green"
	HighlightBlue   HighlightColor = "blue"
	HighlightPink   HighlightColor = "pink"
)

// Valid returns true if the color is part of the palette.
func (c HighlightColor) Valid() bool {
	switch c {
	case HighlightYellow, HighlightGreen, HighlightBlue, HighlightPink:
		return true
	default:
		return false
	}
}

// Rect is a rectangle in page-canvas-relative coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Highlight is a captured text selection on a page. Immutable after creation
// except for Note, which the user can edit.
//
// Rects is an ordered sequence: it reflects the selection's client rect order
// and must be preserved as-is for redraw.
type Highlight struct {
	ID         string         `json:"id"`
	PageNumber int            `json:"page_number"`
	Text       string         `json:"text"`
	Rects      []Rect         `json:"rects"`
	Color      HighlightColor `json:"color"`
	Note       string         `json:"note,omitempty"`
	CreatedAt  int64          `json:"created_at"` // epoch millis
}

// Bookmark marks a page. Multiple bookmarks may reference the same page.
// Immutable after creation.
type Bookmark struct {
	ID         string `json:"id"`
	PageNumber int    `json:"page_number"`
	Title      string `json:"title"`
	CreatedAt  int64  `json:"created_at"` // epoch millis
}
