package domain

// Chapter is a flattened outline entry resolved to a page number. Level is
// the nesting depth in the source outline tree, starting at 0.
type Chapter struct {
	Title      string `json:"title"`
	PageNumber int    `json:"page_number"`
	Level      int    `json:"level"`
}
