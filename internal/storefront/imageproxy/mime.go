package imageproxy

import (
	"path"
	"strings"
)

const defaultContentType = "image/jpeg"

var contentTypeByExtension = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".avif": "image/avif",
}

// TypeByExtension infers the content type from the image path's file
// extension, used when the upstream response carries no Content-Type.
func TypeByExtension(imagePath string) string {
	ext := strings.ToLower(path.Ext(imagePath))
	if contentType, ok := contentTypeByExtension[ext]; ok {
		return contentType
	}
	return defaultContentType
}
