package render

// ViewMode is the page layout of the document view.
type ViewMode string

// Supported layouts.
const (
	ViewSingle     ViewMode = "single"     // one page at a time
	ViewDouble     ViewMode = "double"     // two-page spread
	ViewContinuous ViewMode = "continuous" // vertical scroll
)

// Valid reports whether m is a known layout.
func (m ViewMode) Valid() bool {
	switch m {
	case ViewSingle, ViewDouble, ViewContinuous:
		return true
	}
	return false
}

// Step is how many pages one navigation action advances in this layout.
func (m ViewMode) Step() int {
	if m == ViewDouble {
		return 2
	}
	return 1
}

// NextPage returns the page after current in this layout, clamped to
// totalPages. With totalPages 0 only the current value bounds it.
func (m ViewMode) NextPage(current, totalPages int) int {
	next := current + m.Step()
	if totalPages > 0 && next > totalPages {
		return totalPages
	}
	return next
}

// PrevPage returns the page before current in this layout, never below 1.
func (m ViewMode) PrevPage(current int) int {
	prev := current - m.Step()
	if prev < 1 {
		return 1
	}
	return prev
}
