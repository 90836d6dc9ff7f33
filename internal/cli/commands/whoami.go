package commands

import (
	"PartsCatalog/internal/config"
	"PartsCatalog/internal/middleware"
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show identity from stored token" }
func (whoamiCmd) Usage() string       { return "whoami" }

// Run разбирает сохранённый токен без проверки подписи: секрет есть только у сервера.
func (whoamiCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	tok, err := newTokenStore(cfg).Load()
	if err != nil {
		return err
	}

	var claims middleware.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}

	fmt.Fprintf(Out, "ID:    %d\nEmail: %s\nRole:  %s\n", claims.UserID, claims.Email, claims.Role)
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		state := "valid"
		if time.Now().After(exp) {
			state = "expired"
		}
		fmt.Fprintf(Out, "Token: %s until %s\n", state, exp.Format(time.RFC3339))
	}
	return nil
}

func init() { RegisterCmd(whoamiCmd{}) }
