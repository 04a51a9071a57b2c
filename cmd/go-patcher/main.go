// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command go-patcher applies SEARCH/REPLACE diff blocks to text files.
// Implements: prd006-cli R1.1-R1.8;
//
//	docs/ARCHITECTURE § Project Structure.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "go-patcher",
		Short: "Fuzzy search/replace patching engine",
		Long:  "go-patcher applies LLM-generated SEARCH/REPLACE edit blocks to text files, with exact and fuzzy matching and all-or-nothing semantics.",
	}

	// Global flags.
	rootCmd.PersistentFlags().Float64("fuzzy-threshold", 0, "Minimum fuzzy match confidence (default 0.97)")
	rootCmd.PersistentFlags().Int("hint-radius", 0, "Fuzzy scan radius around line hints in lines (default 100)")
	rootCmd.PersistentFlags().Bool("strict-blank-lines", false, "Disable trailing-blank-line match tolerance")
	rootCmd.PersistentFlags().String("workdir", ".", "Repository root for git operations")
	rootCmd.PersistentFlags().Bool("no-git", false, "Disable git operations")

	// Bind flags to viper.
	viper.BindPFlag("fuzzy-threshold", rootCmd.PersistentFlags().Lookup("fuzzy-threshold"))
	viper.BindPFlag("hint-radius", rootCmd.PersistentFlags().Lookup("hint-radius"))
	viper.BindPFlag("strict-blank-lines", rootCmd.PersistentFlags().Lookup("strict-blank-lines"))
	viper.BindPFlag("workdir", rootCmd.PersistentFlags().Lookup("workdir"))
	viper.BindPFlag("no-git", rootCmd.PersistentFlags().Lookup("no-git"))

	// Env vars: GO_PATCHER_FUZZY_THRESHOLD, GO_PATCHER_WORKDIR, etc.
	viper.SetEnvPrefix("GO_PATCHER")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".go-patcher")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-patcher version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("go-patcher %s\n", version)
		},
	}
}
