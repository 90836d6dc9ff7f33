package commands

import (
	"PartsCatalog/internal/cli/api"
	"PartsCatalog/internal/config"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"text/tabwriter"
)

type userRow struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type usersCmd struct{}

func (usersCmd) Name() string        { return "users" }
func (usersCmd) Description() string { return "List users (admin only)" }
func (usersCmd) Usage() string       { return "users" }

func (usersCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	token, err := newTokenStore(cfg).Load()
	if err != nil {
		return err
	}
	resp, body, err := api.GetJSON(ctx, api.Endpoint(cfg.ServerURL, "/api/users"), token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.ResponseError(resp, body)
	}

	var users []userRow
	if err := json.Unmarshal(body, &users); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
	}
	return tw.Flush()
}

func init() { RegisterCmd(usersCmd{}) }
