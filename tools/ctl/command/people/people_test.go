// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package people

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
	out, err := run(t, "--format=json")
	if err != nil {
		t.Fatalf("Execute(): %v", err)
	}
	var got schema.PeopleResponse
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, out)
	}
	if len(got.People) != genealogytest.PeopleCount() {
		t.Fatalf("listed %d people, want %d", len(got.People), genealogytest.PeopleCount())
	}
	// "First Person" sorts ahead of every "Mr Test" entry.
	if diff := cmp.Diff(genealogytest.Person(22), got.People[0]); diff != "" {
		t.Errorf("first person diff (-want +got):\n%s", diff)
	}
}

func TestCommandText(t *testing.T) {
	out, err := run(t)
	if err != nil {
		t.Fatalf("Execute(): %v", err)
	}
	if lines := bytes.Count([]byte(out), []byte("\n")); lines != genealogytest.PeopleCount() {
		t.Errorf("printed %d lines, want %d", lines, genealogytest.PeopleCount())
	}
}
