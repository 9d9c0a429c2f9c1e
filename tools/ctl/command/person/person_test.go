// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package person

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/cmatts/genealogy/internal/genealogytest"
	"github.com/cmatts/genealogy/pkg/genealogy/schema"
	"github.com/cmatts/genealogy/pkg/genealogy/store"
	"github.com/google/go-cmp/cmp"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "people.yaml")
	snap := store.Snapshot{People: genealogytest.AllPeople(), Facts: genealogytest.AllFacts()}
	if err := store.WriteSnapshotFile(path, snap); err != nil {
		t.Fatalf("WriteSnapshotFile(): %v", err)
	}
	cmd := Command()
	cmd.SetArgs(append(args, "--snapshot", path))
	cmd.SilenceUsage = true
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestCommand(t *testing.T) {
	out, err := run(t, "13")
	if err != nil {
		t.Fatalf("Execute(): %v", err)
	}
	var got schema.Person
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if diff := cmp.Diff(genealogytest.Person(13), got); diff != "" {
		t.Errorf("person 13 diff (-want +got):\n%s", diff)
	}
}

func TestCommandNotFound(t *testing.T) {
	if _, err := run(t, "99"); err == nil {
		t.Error("person 99 succeeded, want not found")
	}
}
