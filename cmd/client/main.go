package main

import (
	"PartsCatalog/internal/cli/commands"
	"PartsCatalog/internal/config"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// -h до команды: список команд и глобальные флаги
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprint(out, commands.FormatGlobalUsage())
		fmt.Fprintln(out, "\nFlags:")
		flag.PrintDefaults()
	}

	// env + .env + флаги; -base-url, -https и -token-file указывают клиенту сервер и файл токена
	cfg := config.NewConfig()

	if cfg.Version {
		fmt.Printf("PartsCatalog CLI\nVersion: %s\nBuild date: %s\nServer: %s\n", version, buildDate, cfg.ServerURL)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(commands.Dispatch(ctx, cfg, flag.Args()))
}
