// Package inventory holds the remote client commands, one command per
// collection with list, get, create, update and delete subcommands.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/paularlott/cli"

	"github.com/martinsuchenak/assetcompass/internal/client"
	"github.com/martinsuchenak/assetcompass/internal/model"
)

// Output is where command results are printed.
var Output io.Writer = os.Stdout

// Flags returns the global client flags.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:         "server",
			Aliases:      []string{"s"},
			Usage:        "Asset Compass server URL",
			DefaultValue: "http://localhost:8080",
			EnvVars:      []string{"ASSETCOMPASS_SERVER_URL"},
			Global:       true,
		},
		&cli.IntFlag{
			Name:         "timeout",
			Usage:        "Request timeout in seconds",
			DefaultValue: 30,
			Global:       true,
		},
	}
}

type resource struct {
	path     string
	singular string
	children []string
	filters  []string
}

var resources = []resource{
	{path: "datacenters", singular: "datacenter", children: []string{"servers"}},
	{path: "operating-systems", singular: "operating system", children: []string{"hosts"}},
	{path: "servers", singular: "server", children: []string{"hosts"}},
	{path: "hosts", singular: "host", children: []string{"ip-addresses"}},
	{path: "ip-addresses", singular: "IP address"},
	{path: "persons", singular: "person", children: []string{"assignments"}},
	{path: "assignments", singular: "assignment", filters: []string{"entity_type", "entity_id"}},
}

// Commands returns one command per collection.
func Commands() []*cli.Command {
	cmds := make([]*cli.Command, 0, len(resources))
	for _, r := range resources {
		cmds = append(cmds, r.command())
	}
	return cmds
}

func newClient(cmd *cli.Command) *client.Client {
	timeout := time.Duration(cmd.GetInt("timeout")) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return client.New(cmd.GetString("server"), timeout)
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "skip", Usage: "Records to skip", DefaultValue: 0},
		&cli.IntFlag{Name: "limit", Usage: "Maximum records to return", DefaultValue: model.DefaultLimit},
	}
}

func bodyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "JSON body"},
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Read the JSON body from a file, - for stdin"},
	}
}

func page(cmd *cli.Command) model.Page {
	return model.Page{Skip: cmd.GetInt("skip"), Limit: cmd.GetInt("limit")}
}

func (r resource) command() *cli.Command {
	listFlags := pageFlags()
	for _, f := range r.filters {
		listFlags = append(listFlags, &cli.StringFlag{Name: strings.ReplaceAll(f, "_", "-"), Usage: "Filter by " + strings.ReplaceAll(f, "_", " ")})
	}

	idArg := []cli.Argument{&cli.StringArg{Name: "id", Required: true}}

	cmds := []*cli.Command{
		{
			Name:        "list",
			Usage:       "List " + r.path,
			Description: "List " + r.path + " in insertion order",
			Flags:       listFlags,
			Run: func(ctx context.Context, cmd *cli.Command) error {
				filter := url.Values{}
				for _, f := range r.filters {
					if v := cmd.GetString(strings.ReplaceAll(f, "_", "-")); v != "" {
						filter.Set(f, v)
					}
				}
				return printJSON(newClient(cmd).List(ctx, r.path, page(cmd), filter))
			},
		},
		{
			Name:        "get",
			Usage:       "Get a " + r.singular,
			Description: "Get a " + r.singular + " by ID",
			Arguments:   idArg,
			Run: func(ctx context.Context, cmd *cli.Command) error {
				return printJSON(newClient(cmd).Get(ctx, r.path, cmd.GetStringArg("id")))
			},
		},
		{
			Name:        "create",
			Usage:       "Create a " + r.singular,
			Description: "Create a " + r.singular + " from a JSON body given with --data or --file",
			Flags:       bodyFlags(),
			Run: func(ctx context.Context, cmd *cli.Command) error {
				body, err := readBody(cmd)
				if err != nil {
					return err
				}
				return printJSON(newClient(cmd).Create(ctx, r.path, body))
			},
		},
		{
			Name:        "update",
			Usage:       "Update a " + r.singular,
			Description: "Replace every mutable field of a " + r.singular + " with a full JSON body",
			Arguments:   idArg,
			Flags:       bodyFlags(),
			Run: func(ctx context.Context, cmd *cli.Command) error {
				body, err := readBody(cmd)
				if err != nil {
					return err
				}
				return printJSON(newClient(cmd).Update(ctx, r.path, cmd.GetStringArg("id"), body))
			},
		},
		{
			Name:        "delete",
			Usage:       "Delete a " + r.singular,
			Description: "Delete a " + r.singular + " by ID",
			Arguments:   idArg,
			Run: func(ctx context.Context, cmd *cli.Command) error {
				return printJSON(newClient(cmd).Delete(ctx, r.path, cmd.GetStringArg("id")))
			},
		},
	}

	for _, child := range r.children {
		cmds = append(cmds, &cli.Command{
			Name:        child,
			Usage:       "List the " + child + " of a " + r.singular,
			Description: "List the " + child + " that reference a " + r.singular,
			Arguments:   idArg,
			Flags:       pageFlags(),
			Run: func(ctx context.Context, cmd *cli.Command) error {
				return printJSON(newClient(cmd).ListChildren(ctx, r.path, cmd.GetStringArg("id"), child, page(cmd)))
			},
		})
	}

	return &cli.Command{
		Name:        r.path,
		Usage:       "Manage " + r.path,
		Description: "List, get, create, update and delete " + r.path + " on a running server",
		Commands:    cmds,
	}
}

// readBody returns the JSON body from --data or --file.
func readBody(cmd *cli.Command) ([]byte, error) {
	data, file := cmd.GetString("data"), cmd.GetString("file")
	switch {
	case data != "" && file != "":
		return nil, errors.New("use either --data or --file, not both")
	case data != "":
		return []byte(data), nil
	case file == "-":
		return io.ReadAll(os.Stdin)
	case file != "":
		return os.ReadFile(file)
	}
	return nil, errors.New("a JSON body is required: pass --data or --file")
}

// printJSON writes an indented copy of raw, or returns err.
func printJSON(raw json.RawMessage, err error) error {
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if json.Indent(&buf, raw, "", "  ") != nil {
		buf.Reset()
		buf.Write(raw)
	}
	buf.WriteByte('\n')
	_, err = Output.Write(buf.Bytes())
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
