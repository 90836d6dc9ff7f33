package commands

import (
	"PartsCatalog/internal/cli/api"
	"PartsCatalog/internal/config"
	"PartsCatalog/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"text/tabwriter"
)

type partsPage struct {
	Parts      []model.Part `json:"parts"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
}

type partsCmd struct{}

func (partsCmd) Name() string        { return "parts" }
func (partsCmd) Description() string { return "Search catalog (empty query lists all)" }
func (partsCmd) Usage() string       { return "parts [query] [page] [limit]" }

func (partsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 3 {
		return ErrUsage
	}
	q := url.Values{}
	if len(args) > 0 && args[0] != "" {
		q.Set("q", args[0])
	}
	for i, name := range []string{"page", "limit"} {
		if len(args) <= i+1 {
			break
		}
		if _, err := strconv.Atoi(args[i+1]); err != nil {
			return ErrUsage
		}
		q.Set(name, args[i+1])
	}

	endpoint := api.Endpoint(cfg.ServerURL, "/api/parts")
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	resp, body, err := api.GetJSON(ctx, endpoint, "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.ResponseError(resp, body)
	}

	var page partsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODEL\tARTICLE\tNAME\tWEIGHT\tSIZE")
	for _, p := range page.Parts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, str(p.ModelNumber), str(p.ArticleNumber), str(p.PartName), str(p.PartWeight), str(p.PartSize))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(Out, "page %d/%d, total %d\n", page.Page, page.TotalPages, page.Total)
	return nil
}

type partCmd struct{}

func (partCmd) Name() string        { return "part" }
func (partCmd) Description() string { return "Show one part" }
func (partCmd) Usage() string       { return "part <id>" }

func (partCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return ErrUsage
	}
	resp, body, err := api.GetJSON(ctx, api.Endpoint(cfg.ServerURL, "/api/parts/"+args[0]), "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.ResponseError(resp, body)
	}

	var p model.Part
	if err := json.Unmarshal(body, &p); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	rows := []struct {
		k string
		v *string
	}{
		{"Model", p.ModelNumber},
		{"Article", p.ArticleNumber},
		{"Article name", p.ArticleName},
		{"Part name", p.PartName},
		{"Pseudo name", p.PartPseudoName},
		{"Description", p.PartDescription},
		{"Weight", p.PartWeight},
		{"Size", p.PartSize},
		{"Image", p.Image},
	}
	fmt.Fprintf(Out, "ID: %d\n", p.ID)
	for _, r := range rows {
		fmt.Fprintf(Out, "%s: %s\n", r.k, str(r.v))
	}
	return nil
}

type importCmd struct{}

func (importCmd) Name() string        { return "import" }
func (importCmd) Description() string { return "Import parts from CSV file" }
func (importCmd) Usage() string       { return "import <file.csv>" }

func (importCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	resp, body, err := api.PostFile(ctx, api.Endpoint(cfg.ServerURL, "/api/parts/upload-csv"), "csv", args[0], "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.ResponseError(resp, body)
	}
	var res struct {
		Inserted int `json:"inserted"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Imported %d parts\n", res.Inserted)
	return nil
}

func str(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func init() {
	RegisterCmd(partsCmd{})
	RegisterCmd(partCmd{})
	RegisterCmd(importCmd{})
}
