package forensic

import "strings"

// Classifier derives a FileDescriptor from a filesystem path.
// It fails if the path does not resolve to an existing file at call time;
// this is metadata collection, not a security boundary.
type Classifier interface {
	Classify(path string) (*FileDescriptor, error)
}

// categories maps lower-cased extensions (with leading dot) to their media
// category. Unmatched extensions are CategoryUnknown.
var categories = map[string]Category{
	".jpg":  CategoryImage,
	".jpeg": CategoryImage,
	".png":  CategoryImage,
	".gif":  CategoryImage,
	".bmp":  CategoryImage,
	".tiff": CategoryImage,
	".mp4":  CategoryVideo,
	".avi":  CategoryVideo,
	".mov":  CategoryVideo,
	".wmv":  CategoryVideo,
	".mkv":  CategoryVideo,
	".pdf":  CategoryDocument,
	".doc":  CategoryDocument,
	".docx": CategoryDocument,
	".txt":  CategoryDocument,
	".zip":  CategoryArchive,
	".rar":  CategoryArchive,
	".7z":   CategoryArchive,
}

// CategoryForExtension returns the media category for a file extension.
// The extension may be given with or without the leading dot and in any case.
func CategoryForExtension(ext string) Category {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if c, ok := categories[ext]; ok {
		return c
	}
	return CategoryUnknown
}
