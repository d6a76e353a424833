package domain

import "slices"

// Margins is an enumerated page margin width.
type Margins string

// Margin presets.
const (
	MarginsNarrow Margins = "narrow"
	MarginsNormal Margins = "normal"
	MarginsWide   Margins = "wide"
)

// Pixels returns the fixed pixel value for a margin preset.
func (m Margins) Pixels() int {
	switch m {
	case MarginsNarrow:
		return 40
	case MarginsNormal:
		return 80
	case MarginsWide:
		return 120
	default:
		return 80
	}
}

// Valid returns true if the margin preset is recognized.
func (m Margins) Valid() bool {
	switch m {
	case MarginsNarrow, MarginsNormal, MarginsWide:
		return true
	default:
		return false
	}
}

// Theme is the reader color theme.
type Theme string

// Reader themes.
const (
	ThemeLight Theme = "light"
	ThemeSepia Theme = "sepia"
	ThemeDark  Theme = "dark"
)

// Valid returns true if the theme is recognized.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeSepia, ThemeDark:
		return true
	default:
		return false
	}
}

// Font size bounds. Adjusted in steps of FontSizeStep.
const (
	FontSizeMin  = 14
	FontSizeMax  = 28
	FontSizeStep = 2
)

// LineHeights is the fixed set of selectable line heights.
var LineHeights = []float64{1.4, 1.6, 1.8, 2.0}

// ReaderSettings holds the user's presentation preferences for a document.
// Zoom here is the persisted baseline, distinct from the live interactive
// zoom held by the viewport controller.
type ReaderSettings struct {
	FontSize   int     `json:"font_size" validate:"omitempty,min=14,max=28"`
	LineHeight float64 `json:"line_height"`
	Margins    Margins `json:"margins"`
	Theme      Theme   `json:"theme"`
	Zoom       float64 `json:"zoom"`
}

// DefaultSettings returns the settings applied to a freshly opened document.
func DefaultSettings() ReaderSettings {
	return ReaderSettings{
		FontSize:   18,
		LineHeight: 1.6,
		Margins:    MarginsWide,
		Theme:      ThemeLight,
		Zoom:       1,
	}
}

// FillDefaults replaces zero-valued fields with their defaults. Persisted
// blobs written by older versions may predate individual fields.
func (s *ReaderSettings) FillDefaults() {
	def := DefaultSettings()
	if s.FontSize == 0 {
		s.FontSize = def.FontSize
	}
	if s.LineHeight == 0 {
		s.LineHeight = def.LineHeight
	}
	if s.Margins == "" {
		s.Margins = def.Margins
	}
	if s.Theme == "" {
		s.Theme = def.Theme
	}
	if s.Zoom == 0 {
		s.Zoom = def.Zoom
	}
}

// SettingsUpdate is a partial update to ReaderSettings. Nil fields are left
// untouched; settings are never replaced wholesale.
type SettingsUpdate struct {
	FontSize   *int     `json:"font_size,omitempty" validate:"omitempty,min=14,max=28"`
	LineHeight *float64 `json:"line_height,omitempty"`
	Margins    *Margins `json:"margins,omitempty"`
	Theme      *Theme   `json:"theme,omitempty"`
	Zoom       *float64 `json:"zoom,omitempty" validate:"omitempty,gte=0.5,lte=3"`
}

// Apply shallow-merges the non-nil fields of the update into the settings.
func (s *ReaderSettings) Apply(u SettingsUpdate) {
	if u.FontSize != nil {
		s.FontSize = *u.FontSize
	}
	if u.LineHeight != nil {
		s.LineHeight = *u.LineHeight
	}
	if u.Margins != nil {
		s.Margins = *u.Margins
	}
	if u.Theme != nil {
		s.Theme = *u.Theme
	}
	if u.Zoom != nil {
		s.Zoom = *u.Zoom
	}
}

// Check verifies enumerated fields against their allowed sets. Bounds on
// numeric fields are enforced by struct validation tags.
func (u SettingsUpdate) Check() (field, problem string, ok bool) {
	if u.Margins != nil && !u.Margins.Valid() {
		return "margins", "must be one of narrow, normal, wide", false
	}
	if u.Theme != nil && !u.Theme.Valid() {
		return "theme", "must be one of light, sepia, dark", false
	}
	if u.LineHeight != nil && !slices.Contains(LineHeights, *u.LineHeight) {
		return "line_height", "must be one of 1.4, 1.6, 1.8, 2.0", false
	}
	return "", "", true
}
