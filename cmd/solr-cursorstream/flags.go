// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlibrary/solr-cursorstream/pkg/cursorstream"
)

// addQueryFlags registers the flags shared by every streaming command.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", "", "base URL of the search endpoint (e.g. http://localhost:8983/solr/catalog)")
	cmd.Flags().String("handler", cursorstream.DefaultHandler, "request handler path segment")
	cmd.Flags().String("query", cursorstream.DefaultQuery, "primary query expression (q)")
	cmd.Flags().StringArray("filter", nil, "filter query (fq); repeatable")
	cmd.Flags().String("sort", cursorstream.DefaultSort, "sort spec; must include the uniqueKey field")
	cmd.Flags().Int("rows", cursorstream.DefaultRows, "documents requested per page")
	cmd.Flags().StringSlice("fields", nil, "fields to return (fl); empty returns all")
	cmd.Flags().String("query-file", "", "load the query definition from a YAML file")
	cmd.Flags().Bool("verbose", false, "log per-page fetch progress to stderr")
}

// resolveString returns the flag value when set on the command line,
// the config-file value when present, and the flag default otherwise.
func resolveString(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

func resolveInt(cmd *cobra.Command, flag, key string) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(flag)
	return v
}

// streamFromFlags builds a stream from a query file, the config file,
// and command-line flags, in increasing order of precedence.
func streamFromFlags(cmd *cobra.Command) (*cursorstream.Stream, error) {
	var opts []cursorstream.Option

	baseURL := resolveString(cmd, "url", "base_url")

	if path, _ := cmd.Flags().GetString("query-file"); path != "" {
		qf, err := cursorstream.ReadQueryFile(path)
		if err != nil {
			return nil, err
		}
		if baseURL == "" {
			baseURL = qf.BaseURL
		}
		opts = append(opts, qf.Options()...)
	}

	if baseURL == "" {
		return nil, fmt.Errorf("no endpoint configured: pass --url, set base_url in the config file, or use --query-file")
	}

	if v := resolveString(cmd, "handler", "handler"); cmd.Flags().Changed("handler") || viper.IsSet("handler") {
		opts = append(opts, cursorstream.WithHandler(v))
	}
	if v := resolveString(cmd, "query", "query"); cmd.Flags().Changed("query") || viper.IsSet("query") {
		opts = append(opts, cursorstream.WithQuery(v))
	}
	if cmd.Flags().Changed("filter") {
		filters, _ := cmd.Flags().GetStringArray("filter")
		opts = append(opts, cursorstream.WithFilters(filters...))
	} else if viper.IsSet("filters") {
		opts = append(opts, cursorstream.WithFilters(viper.GetStringSlice("filters")...))
	}
	if v := resolveString(cmd, "sort", "sort"); cmd.Flags().Changed("sort") || viper.IsSet("sort") {
		opts = append(opts, cursorstream.WithSort(v))
	}
	if v := resolveInt(cmd, "rows", "rows"); cmd.Flags().Changed("rows") || viper.IsSet("rows") {
		opts = append(opts, cursorstream.WithRows(v))
	}
	if cmd.Flags().Changed("fields") {
		fields, _ := cmd.Flags().GetStringSlice("fields")
		opts = append(opts, cursorstream.WithFields(fields...))
	} else if viper.IsSet("fields") {
		opts = append(opts, cursorstream.WithFields(viper.GetStringSlice("fields")...))
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts = append(opts, cursorstream.WithLog(os.Stderr))
	}

	return cursorstream.New(baseURL, opts...), nil
}
