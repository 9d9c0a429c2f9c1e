// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log"

	"github.com/cmatts/genealogy/tools/ctl/command/export"
	"github.com/cmatts/genealogy/tools/ctl/command/facts"
	"github.com/cmatts/genealogy/tools/ctl/command/people"
	"github.com/cmatts/genealogy/tools/ctl/command/person"
	"github.com/cmatts/genealogy/tools/ctl/command/seed"
	"github.com/cmatts/genealogy/tools/ctl/command/siblings"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ctl",
	Short: "A command-line client for the genealogy store",
}

func init() {
	rootCmd.AddCommand(siblings.Command())
	rootCmd.AddCommand(person.Command())
	rootCmd.AddCommand(people.Command())
	rootCmd.AddCommand(facts.Command())
	rootCmd.AddCommand(seed.Command())
	rootCmd.AddCommand(export.Command())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
