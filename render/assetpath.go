package render

import (
	"path"
	"strings"
)

const (
	uploadsRoot   = "/uploads/"
	optimizedDir  = "/uploads/projects/optimized/"
	thumbnailsDir = "/uploads/projects/thumbnails/"
	originalsDir  = "/uploads/projects/originals/"
)

// ResolveAssetPath maps a stored asset's file name and (possibly malformed or
// legacy) stored path to a public web path. Pure and total: unresolvable
// input falls back to the deterministic optimized-image convention.
//
// Documents (non-images) always resolve under originals/, ignoring the stored
// path, because historical document rows never carried a usable one.
func ResolveAssetPath(fileName, storedPath string, isImage bool) string {
	if !isImage {
		return originalsDir + fileName
	}

	// Absolute or historical paths that already contain the uploads root:
	// truncate to the root so stale filesystem prefixes disappear.
	if idx := strings.Index(storedPath, uploadsRoot); idx >= 0 {
		return storedPath[idx:]
	}

	// Known legacy relative forms.
	if strings.HasPrefix(storedPath, "uploads/") {
		return "/" + storedPath
	}
	if strings.HasPrefix(storedPath, "projects/") {
		return "/uploads/" + storedPath
	}

	return optimizedDir + fileName
}

// ResolveThumbnailPath maps an image asset's file name to its thumbnail web
// path. Documents have no thumbnail; the empty string says so.
func ResolveThumbnailPath(fileName string, isImage bool) string {
	if !isImage {
		return ""
	}
	base := strings.TrimSuffix(fileName, path.Ext(fileName))
	return thumbnailsDir + base + "_thumb.jpeg"
}
