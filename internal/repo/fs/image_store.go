package fs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ImageStore: файловое хранилище изображений деталей.
// Файлы лежат плоско в одном каталоге, в БД хранится только имя файла.
type ImageStore struct {
	Dir string
}

// NewImageStore создаёт каталог загрузок (если его нет) и возвращает хранилище.
func NewImageStore(dir string) (*ImageStore, error) {
	if dir == "" {
		return nil, errors.New("empty upload dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{Dir: dir}, nil
}

// Save сохраняет поток под случайным именем и возвращает это имя.
// Расширение определяется по содержимому, а не по имени исходного файла.
func (s *ImageStore) Save(r io.Reader) (string, error) {
	br := bufio.NewReaderSize(r, 3072)
	head, err := br.Peek(3072)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", fmt.Errorf("read image: %w", err)
	}
	ext := mimetype.Detect(head).Extension()

	name := uuid.NewString() + ext
	f, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, br); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close image file: %w", err)
	}
	return name, nil
}

// Remove удаляет ранее сохранённый файл. Отсутствие файла: не ошибка.
func (s *ImageStore) Remove(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid image name %q", name)
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
