package render

// Content types produced by the renderer.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePNG  = "image/png"
)

// Artifact is one encoded chart.
type Artifact struct {
	// Name is a file-name-safe identifier such as "spatial.html".
	Name        string
	Title       string
	ContentType string
	Body        []byte
}
