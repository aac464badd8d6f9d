package services

import (
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"yatube/internal/utils"

	// Registered decoders define what counts as a supported upload
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ErrUnsupportedImage means the uploaded bytes do not decode as jpeg, png or
// gif. Surfaced to the form as a field error, not a server fault.
var ErrUnsupportedImage = errors.New("unsupported image format")

// DetectImageExt sniffs the upload and returns the file extension for its
// format.
func DetectImageExt(r io.Reader) (string, error) {
	_, format, err := image.DecodeConfig(r)
	if err != nil {
		return "", ErrUnsupportedImage
	}
	switch format {
	case "jpeg":
		return ".jpg", nil
	case "png", "gif":
		return "." + format, nil
	default:
		return "", ErrUnsupportedImage
	}
}

// MediaRoot is where uploaded files live; served under /media.
func MediaRoot() string {
	if root := os.Getenv("MEDIA_ROOT"); root != "" {
		return root
	}
	return "./media"
}

// SavePostImage validates and stores an uploaded post image under
// MEDIA_ROOT/posts/ and returns the relative path recorded on the post.
func SavePostImage(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	ext, err := DetectImageExt(file)
	if err != nil {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	dir := filepath.Join(MediaRoot(), "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	name := utils.RandString(8) + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}

	return filepath.ToSlash(filepath.Join("posts", name)), nil
}
