package mime

// MIME is a content type of a response body. Only the types the server actually
// produces are listed.
type MIME string

const (
	Plain       MIME = "text/plain"
	OctetStream MIME = "application/octet-stream"
)
