package domain

import (
	"strconv"
	"strings"
)

// DocumentMeta is the library's lightweight record for one imported document.
// One record exists per document; the byte blob and reader state live under
// separate storage keys referencing the same ID.
type DocumentMeta struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	FileName      string `json:"file_name"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	TotalPages    int    `json:"total_pages"`
	CoverRef      string `json:"cover_ref,omitempty"`
	CoverBlurhash string `json:"cover_blurhash,omitempty"`
	AddedAt       int64  `json:"added_at"`     // epoch millis
	LastReadAt    int64  `json:"last_read_at"` // epoch millis
	CurrentPage   int    `json:"current_page"`
}

// DocumentID derives the stable identity for a file from its name and size.
// Deliberately deterministic: re-adding the same file resolves to the same
// library record instead of creating a duplicate.
func DocumentID(fileName string, fileSizeBytes int64) string {
	return fileName + ":" + strconv.FormatInt(fileSizeBytes, 10)
}

// TitleFromFileName derives a display title by stripping the file extension.
func TitleFromFileName(fileName string) string {
	if i := strings.LastIndex(fileName, "."); i > 0 {
		return fileName[:i]
	}
	return fileName
}

// NewDocumentMeta creates a fresh library record for a just-imported file.
// TotalPages starts at 0 and is filled in once the document engine opens it.
func NewDocumentMeta(fileName string, fileSizeBytes, now int64) *DocumentMeta {
	return &DocumentMeta{
		ID:            DocumentID(fileName, fileSizeBytes),
		Title:         TitleFromFileName(fileName),
		FileName:      fileName,
		FileSizeBytes: fileSizeBytes,
		TotalPages:    0,
		AddedAt:       now,
		LastReadAt:    now,
		CurrentPage:   1,
	}
}

// MetaUpdate is a partial update to a DocumentMeta. Nil fields are left
// untouched.
type MetaUpdate struct {
	Title         *string
	TotalPages    *int
	CurrentPage   *int
	CoverRef      *string
	CoverBlurhash *string
	LastReadAt    *int64
}

// Apply merges the non-nil fields of the update into the record.
func (m *DocumentMeta) Apply(u MetaUpdate) {
	if u.Title != nil {
		m.Title = *u.Title
	}
	if u.TotalPages != nil {
		m.TotalPages = *u.TotalPages
	}
	if u.CurrentPage != nil {
		m.CurrentPage = *u.CurrentPage
	}
	if u.CoverRef != nil {
		m.CoverRef = *u.CoverRef
	}
	if u.CoverBlurhash != nil {
		m.CoverBlurhash = *u.CoverBlurhash
	}
	if u.LastReadAt != nil {
		m.LastReadAt = *u.LastReadAt
	}
}
