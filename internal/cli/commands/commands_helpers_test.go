package commands

import (
	"PartsCatalog/internal/config"
	"path/filepath"
	"testing"
)

// testConfig указывает CLI на тестовый сервер и кладёт токен во временный каталог.
func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ServerURL: serverURL,
		TokenFile: filepath.Join(t.TempDir(), "auth_token"),
	}
}
