package model

import "errors"

const (
	MaxAvatarSizeBytes    = 5 * 1024 * 1024  // avatar upload cap
	MaxPostImageSizeBytes = 10 * 1024 * 1024 // post image upload cap

	AvatarWidth  = 320
	AvatarHeight = 320

	// PostImageMaxDim bounds the longest edge of an uploaded post image.
	PostImageMaxDim = 1080

	AvatarFolder    = "avatars"
	PostImageFolder = "posts"

	ImageExt          = ".jpg"
	ImageCacheControl = "public, max-age=31536000" // 1 year
)

// Supported image content types for upload validation
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
)

var allowedImageTypes = map[string]struct{}{
	ContentTypeJPEG: {},
	ContentTypePNG:  {},
	ContentTypeGIF:  {},
	ContentTypeWebP: {},
}

// Domain errors for media operations
var (
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidImageType = errors.New("invalid image type")
)

// UploadResult is the uploaded object location. URL is public-facing; Key
// is the object key inside the bucket, kept for later deletion.
type UploadResult struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// IsAllowedImageType reports if the provided content type is supported
func IsAllowedImageType(contentType string) bool {
	_, ok := allowedImageTypes[contentType]
	return ok
}
