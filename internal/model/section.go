package model

// Section is one heading+body unit of a generated document. The segmenter
// produces exactly as many as the extraction declared; the renderer
// allocates layout slots per section up front and relies on that count.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}
