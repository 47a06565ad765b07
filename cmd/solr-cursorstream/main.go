// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the solr-cursorstream CLI, a
// thin operational wrapper around the cursorstream library: dump a
// result set to stdout, count matches, or snapshot documents into a
// SQLite file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the solr-cursorstream CLI.
var rootCmd = &cobra.Command{
	Use:   "solr-cursorstream",
	Short: "Stream documents from a Solr-style cursorMark endpoint",
	Long: `solr-cursorstream reads complete result sets from a search endpoint that
supports cursorMark pagination, without the deep-paging cost of start/rows
offsets. Documents arrive as one lazy stream regardless of how many pages
the server splits them into.

The endpoint and query can come from flags, from a saved query file, or
from a solr-cursorstream.yaml config file.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./solr-cursorstream.yaml or ~/.config/solr-cursorstream/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("solr-cursorstream")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "solr-cursorstream"))
		}
	}

	viper.SetEnvPrefix("SOLR_CURSORSTREAM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
