// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type greetConfig struct {
	Name string
}

func (c greetConfig) Validate() error {
	if c.Name == "" {
		return errors.New("empty name")
	}
	return nil
}

type greetDeps struct {
	IO IO
}

func (d *greetDeps) SetIO(cio IO) { d.IO = cio }

type greetOutput struct{}

func greet(ctx context.Context, cfg greetConfig, deps *greetDeps) (*greetOutput, error) {
	deps.IO.Out.Write([]byte("Hello " + cfg.Name))
	return &greetOutput{}, nil
}

func greetInit(context.Context) (*greetDeps, error) {
	return &greetDeps{}, nil
}

func nameArg(cfg *greetConfig, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one name")
	}
	cfg.Name = args[0]
	return nil
}

func TestSkipArgs(t *testing.T) {
	cfg := &greetConfig{Name: "x"}
	if err := SkipArgs(cfg, []string{"ignored"}); err != nil {
		t.Errorf("SkipArgs() error = %v", err)
	}
	if cfg.Name != "x" {
		t.Errorf("SkipArgs() modified config: %+v", cfg)
	}
}

func TestRunE(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{"greets", []string{"World"}, "Hello World", false},
		{"arg error", []string{}, "", true},
		{"validation error", []string{""}, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg greetConfig
			cmd := &cobra.Command{
				Use:  "greet",
				RunE: RunE(&cfg, nameArg, greetInit, greet),
			}
			cmd.SetArgs(tc.args)
			cmd.SilenceUsage = true
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&bytes.Buffer{})
			err := cmd.Execute()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got := out.String(); got != tc.want {
				t.Errorf("output = %q, want %q", got, tc.want)
			}
		})
	}
}
