package commands

import (
	"PartsCatalog/internal/config"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakeCmd позволяет управлять возвратом ошибок из Run
type fakeCmd struct {
	name, usage, desc string
	run               func(ctx context.Context, cfg *config.Config, args []string) error
}

func (f fakeCmd) Name() string        { return f.name }
func (f fakeCmd) Description() string { return f.desc }
func (f fakeCmd) Usage() string       { return f.usage }
func (f fakeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	return f.run(ctx, cfg, args)
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

func TestDispatcher_HelpAndUnknown(t *testing.T) {
	// зарегистрированы login/parts/import/users из init()
	out := withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{}) })
	if !strings.Contains(out, "PartsCatalog CLI") {
		t.Fatalf("global help expected")
	}

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help"}) })
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("usage expected")
	}

	code := Dispatch(context.Background(), &config.Config{}, []string{"help", "login"})
	if code != 0 {
		t.Fatalf("expected 0 for help login, got %d", code)
	}

	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"help", "nope"}) })
	if !strings.Contains(out, "Unknown command") {
		t.Fatalf("unknown command message expected")
	}

	code = Dispatch(context.Background(), &config.Config{}, []string{"no-such"})
	if code != 2 {
		t.Fatalf("expected 2 for unknown command, got %d", code)
	}
}

func TestDispatcher_RunPaths(t *testing.T) {
	// зарегистрируем временную команду
	cmdOK := fakeCmd{name: "x", usage: "x", desc: "", run: func(_ context.Context, _ *config.Config, _ []string) error { return nil }}
	RegisterCmd(cmdOK)
	if code := Dispatch(context.Background(), &config.Config{}, []string{"x"}); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	cmdUsage := fakeCmd{name: "u", usage: "u <arg>", desc: "", run: func(_ context.Context, _ *config.Config, _ []string) error { return ErrUsage }}
	RegisterCmd(cmdUsage)
	out := withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"u"}) })
	if !strings.Contains(out, "Usage: u <arg>") {
		t.Fatalf("usage text expected")
	}

	cmdErr := fakeCmd{name: "e", usage: "e", desc: "", run: func(_ context.Context, _ *config.Config, _ []string) error { return fmt.Errorf("boom") }}
	RegisterCmd(cmdErr)
	out = withStdoutCapture(t, func() { _ = Dispatch(context.Background(), &config.Config{}, []string{"e"}) })
	if !strings.Contains(out, "e error: boom") {
		t.Fatalf("error line expected, got: %s", out)
	}
}

func TestDispatcher_ExitCodes(t *testing.T) {
	wrapped := fakeCmd{name: "w", usage: "w <id>", run: func(_ context.Context, _ *config.Config, _ []string) error {
		return fmt.Errorf("parse id: %w", ErrUsage)
	}}
	RegisterCmd(wrapped)
	failing := fakeCmd{name: "f", usage: "f", run: func(_ context.Context, _ *config.Config, _ []string) error {
		return errors.New("server returned 500")
	}}
	RegisterCmd(failing)

	cases := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{"no args prints usage", nil, ExitUsage, "PartsCatalog CLI"},
		{"help", []string{"help"}, ExitOK, "PartsCatalog CLI"},
		{"short help flag", []string{"-h"}, ExitOK, "PartsCatalog CLI"},
		{"long help flag", []string{"--help"}, ExitOK, "PartsCatalog CLI"},
		{"help for command", []string{"--help", "w"}, ExitOK, "Usage: w <id>"},
		{"help for unknown command", []string{"help", "nope"}, ExitUsage, "Unknown command: nope"},
		{"unknown command", []string{"nope"}, ExitUsage, "Unknown command: nope"},
		{"wrapped usage error", []string{"w"}, ExitUsage, "Usage: w <id>"},
		{"runtime error", []string{"f"}, ExitFailure, "f error: server returned 500"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var code int
			out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), &config.Config{}, c.args) })
			if code != c.code {
				t.Fatalf("exit code want %d, got %d", c.code, code)
			}
			if !strings.Contains(out, c.out) {
				t.Fatalf("output should contain %q, got: %s", c.out, out)
			}
		})
	}
}
