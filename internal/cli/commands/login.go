package commands

import (
	"PartsCatalog/internal/cli/api"
	"PartsCatalog/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
		Name  string `json:"name"`
	} `json:"user"`
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store bearer token" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	endpoint := api.Endpoint(cfg.ServerURL, "/api/auth/login")
	resp, body, err := api.PostJSON(ctx, endpoint, LoginRequest{Email: args[0], Password: args[1]}, "")
	if err != nil {
		return err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return errors.New("invalid email or password")
	default:
		return api.ResponseError(resp, body)
	}

	var lr LoginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if lr.Token == "" {
		return errors.New("server returned empty token")
	}
	if err := newTokenStore(cfg).Save(lr.Token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	fmt.Fprintf(Out, "Logged in as %s (%s)\n", lr.User.Email, lr.User.Role)
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget stored token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := newTokenStore(cfg).Clear(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type initUsersCmd struct{}

func (initUsersCmd) Name() string        { return "init-users" }
func (initUsersCmd) Description() string { return "Recreate test admin and user accounts" }
func (initUsersCmd) Usage() string       { return "init-users" }

func (initUsersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	resp, body, err := api.PostJSON(ctx, api.Endpoint(cfg.ServerURL, "/api/auth/init-users"), struct{}{}, "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.ResponseError(resp, body)
	}
	fmt.Fprintln(Out, "Test users created: admin@example.com, user@example.com")
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(initUsersCmd{})
}
