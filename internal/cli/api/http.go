package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrorBody описывает тело ошибки сервера {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
}

// Do выполняет запрос; если token непустой, он передаётся в Authorization: Bearer.
// Возвращает ответ с уже прочитанным и закрытым телом.
func Do(ctx context.Context, method, url, token, contentType string, body io.Reader) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, err
	}
	return resp, bytes.TrimSpace(b), nil
}

// GetJSON отправляет GET-запрос.
func GetJSON(ctx context.Context, url, token string) (*http.Response, []byte, error) {
	return Do(ctx, http.MethodGet, url, token, "", nil)
}

// PostJSON sends a JSON POST request.
func PostJSON(ctx context.Context, url string, payload any, token string) (*http.Response, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	return Do(ctx, http.MethodPost, url, token, "application/json", bytes.NewReader(b))
}

// PostFile загружает файл multipart-формой в поле field.
func PostFile(ctx context.Context, url, field, path, token string) (*http.Response, []byte, error) {
	if field == "" {
		return nil, nil, fmt.Errorf("empty form field")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return nil, nil, err
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, nil, err
	}
	return Do(ctx, http.MethodPost, url, token, mw.FormDataContentType(), &buf)
}

// Endpoint склеивает базовый URL сервера и путь API.
func Endpoint(serverURL, path string) string {
	return strings.TrimRight(serverURL, "/") + path
}

// ResponseError превращает не-2xx ответ в ошибку с текстом из {"error": ...}.
func ResponseError(resp *http.Response, body []byte) error {
	var eb ErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return fmt.Errorf("server status %d: %s", resp.StatusCode, eb.Error)
	}
	return fmt.Errorf("server status %d: %s", resp.StatusCode, string(body))
}
