package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoToken: токен ещё не сохранён (нужен login).
var ErrNoToken = errors.New("not logged in")

// TokenFileStore: файловое хранилище bearer-токена для CLI.
type TokenFileStore struct {
	Path string
}

func NewTokenFileStore(path string) *TokenFileStore {
	return &TokenFileStore{Path: path}
}

// Save сохраняет токен, создавая каталог при необходимости.
func (s *TokenFileStore) Save(token string) error {
	if s.Path == "" {
		return errors.New("token file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token), 0o600)
}

// Load читает токен из файла.
func (s *TokenFileStore) Load() (string, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	tok := strings.TrimRight(string(b), " \t\r\n")
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Clear удаляет файл токена; отсутствие файла не ошибка.
func (s *TokenFileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
