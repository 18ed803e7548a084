package domain

// ImageType represents the allowed image types for check uploads.
type ImageType string

const (
	ImageTypeJPG ImageType = "jpg"
	ImageTypePNG ImageType = "png"
)

// AllowedImageTypes maps ImageType to its MIME content type.
var AllowedImageTypes = map[ImageType]string{
	ImageTypeJPG: "image/jpeg",
	ImageTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to ImageType.
var AllowedContentTypes = map[string]ImageType{
	"image/jpeg": ImageTypeJPG,
	"image/png":  ImageTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to ImageType.
var AllowedExtensions = map[string]ImageType{
	"jpg":  ImageTypeJPG,
	"jpeg": ImageTypeJPG,
	"png":  ImageTypePNG,
}

// ReviewStatus represents the review state of a check record.
type ReviewStatus string

const (
	// StatusNeedsReview marks a record whose extracted fields are incomplete.
	StatusNeedsReview ReviewStatus = "needs_review"
	// StatusParsed marks a record with check number, amount, and date all present.
	StatusParsed ReviewStatus = "parsed"
)

// Valid reports whether s is one of the known review statuses.
func (s ReviewStatus) Valid() bool {
	return s == StatusNeedsReview || s == StatusParsed
}
