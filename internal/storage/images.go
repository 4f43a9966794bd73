// Package storage persists uploaded post images on disk. Paths are generated,
// never derived from user input; the rest of the system treats the stored
// path as opaque.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type ImageStore struct {
	root string
}

func NewImageStore(root string) (*ImageStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "posts"), 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &ImageStore{root: root}, nil
}

// Save 落盘并返回相对路径（存入 Post.Image）
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(file.Filename))
	rel := filepath.Join("posts", uuid.New().String()+ext)
	dst, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return rel, nil
}

// Root 静态文件挂载目录
func (s *ImageStore) Root() string { return s.root }
