package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaRoot returns the directory uploaded media is stored under.
func MediaRoot() string {
	if root := os.Getenv("MEDIA_ROOT"); root != "" {
		return root
	}
	return "media"
}

// SaveUploadedImage validates and stores an uploaded image under
// MEDIA_ROOT/<subfolder>/ and returns the public /media URL of the file.
func SaveUploadedImage(file *multipart.FileHeader, subfolder string) (string, error) {
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", fmt.Errorf("file must be an image, got %q", file.Header.Get("Content-Type"))
	}

	dir := filepath.Join(MediaRoot(), subfolder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	filename := uuid.NewString() + ext
	dstPath := filepath.Join(dir, filename)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", err
	}

	return "/media/" + subfolder + "/" + filename, nil
}
