package domain

// DocumentState is the full mutable state of one open document: position,
// annotations, presentation settings and reading statistics. Exactly one
// instance is live at a time (the currently open document); persistence is a
// whole-blob write keyed by document ID.
type DocumentState struct {
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
	Highlights  []Highlight    `json:"highlights"`
	Bookmarks   []Bookmark     `json:"bookmarks"`
	Settings    ReaderSettings `json:"settings"`
	LastRead    int64          `json:"last_read"` // epoch millis
	Stats       ReadingStats   `json:"stats"`
}

// NewDocumentState returns the default state for a document that has never
// been opened. TotalPages stays 0 until the engine reports a page count.
func NewDocumentState(now int64) DocumentState {
	return DocumentState{
		CurrentPage: 1,
		TotalPages:  0,
		Highlights:  []Highlight{},
		Bookmarks:   []Bookmark{},
		Settings:    DefaultSettings(),
		LastRead:    now,
		Stats:       DefaultStats(),
	}
}

// Normalize fills defaults for fields a persisted blob may be missing.
// Stored state is forward-compatible: any field added in a later version
// falls back to its default when absent. LastRead is always refreshed.
func (s *DocumentState) Normalize(now int64) {
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
	if s.Highlights == nil {
		s.Highlights = []Highlight{}
	}
	if s.Bookmarks == nil {
		s.Bookmarks = []Bookmark{}
	}
	s.Settings.FillDefaults()
	if s.Stats.Sessions == nil {
		s.Stats.Sessions = []ReadingSession{}
	}
	s.LastRead = now
}

// ClampPage clamps a requested page to the valid range. While totalPages is
// still 0 (document not fully opened) only the lower bound applies.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}
