// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package siblings

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cmatts/genealogy/internal/api"
	"github.com/cmatts/genealogy/internal/api/cli"
	"github.com/cmatts/genealogy/internal/api/genealogyservice"
	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/cmatts/genealogy/pkg/genealogy/store"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the siblings command.
type Config struct {
	ID                 string
	Format             string
	UnknownParentFirst bool
	IncludeTarget      bool
	// API, when set, resolves through a running genealogy API instead of
	// opening Store directly.
	API   string
	Store store.Config
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.ID == "" {
		return errors.New("person id is required")
	}
	if c.Format != "" && c.Format != "text" && c.Format != "json" {
		return errors.Errorf("invalid format: %s. Expected one of 'text' or 'json'", c.Format)
	}
	if c.API != "" {
		if _, err := url.Parse(c.API); err != nil {
			return errors.Wrap(err, "parsing --api")
		}
		return nil
	}
	return c.Store.Validate()
}

// Deps holds dependencies for the command.
type Deps struct {
	IO       cli.IO
	Siblings api.StubT[schema.SiblingsRequest, schema.Siblings]
	Closer   io.Closer
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps initializes Deps from cfg.
func InitDeps(ctx context.Context, cfg Config) (*Deps, error) {
	if cfg.API != "" {
		u, err := url.Parse(cfg.API)
		if err != nil {
			return nil, errors.Wrap(err, "parsing --api")
		}
		return &Deps{
			Siblings: api.Stub[schema.SiblingsRequest, schema.Siblings](http.DefaultClient, u.JoinPath("siblings")),
		}, nil
	}
	rw, closer, err := cfg.Store.Open(ctx)
	if err != nil {
		return nil, err
	}
	sd := &genealogyservice.SiblingsDeps{Store: rw}
	return &Deps{
		Siblings: func(ctx context.Context, req schema.SiblingsRequest) (*schema.Siblings, error) {
			return genealogyservice.Siblings(ctx, req, sd)
		},
		Closer: closer,
	}, nil
}

func parseArgs(cfg *Config, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one person id")
	}
	cfg.ID = args[0]
	return nil
}

// Handler resolves and prints the siblings of cfg.ID.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*schema.Siblings, error) {
	if deps.Closer != nil {
		defer deps.Closer.Close()
	}
	s, err := deps.Siblings(ctx, schema.SiblingsRequest{
		ID:                 cfg.ID,
		UnknownParentFirst: cfg.UnknownParentFirst,
		IncludeTarget:      cfg.IncludeTarget,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "resolving siblings of %s", cfg.ID)
	}
	switch cfg.Format {
	case "", "text":
		writeText(deps.IO.Out, s)
	case "json":
		enc := json.NewEncoder(deps.IO.Out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return nil, errors.Wrap(err, "encoding siblings")
		}
	}
	return s, nil
}

var heading = color.New(color.Bold, color.FgCyan)

func writeText(w io.Writer, s *schema.Siblings) {
	for _, g := range []struct {
		title  string
		people []schema.Person
	}{
		{"Full siblings", s.FullSiblings},
		{"Step siblings by father", s.StepByFather},
		{"Step siblings by mother", s.StepByMother},
		{"Parents", s.Parents},
	} {
		heading.Fprintf(w, "%s (%d)\n", g.title, len(g.people))
		for _, p := range g.people {
			fmt.Fprintf(w, "  %-6s %s%s\n", p.ID, p.Name, lifespan(p))
		}
	}
}

func lifespan(p schema.Person) string {
	if p.YearOfBirth == nil && p.YearOfDeath == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(" (")
	if p.YearOfBirth != nil {
		fmt.Fprint(&b, *p.YearOfBirth)
	} else {
		b.WriteString("?")
	}
	b.WriteString("-")
	if p.YearOfDeath != nil {
		fmt.Fprint(&b, *p.YearOfDeath)
	}
	b.WriteString(")")
	return b.String()
}

// Command creates a new siblings command instance.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "siblings <id> [--format=text|json] [--unknown-parent-first] [--include-target] [--api <URL> | --backend <name> ...]",
		Short: "List the full and step siblings of a person",
		Args:  cobra.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			parseArgs,
			func(ctx context.Context) (*Deps, error) { return InitDeps(ctx, cfg) },
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

// flagSet returns the command-line flags for the Config struct.
func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Format, "format", "", "format of the output (text|json)")
	set.BoolVar(&cfg.UnknownParentFirst, "unknown-parent-first", false, "order step siblings with an unknown other parent before the known ones")
	set.BoolVar(&cfg.IncludeTarget, "include-target", false, "list the person among their own full siblings")
	set.StringVar(&cfg.API, "api", "", "URL of a genealogy API to query instead of a local store")
	cfg.Store.RegisterFlags(set)
	return set
}
