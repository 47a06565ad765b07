// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mlibrary/solr-cursorstream/pkg/cursorstream"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Stream matching documents to stdout as JSON lines",
	Long: `Dump streams every document matching the query to stdout, one JSON
object per line, fetching pages lazily as output is consumed. Use --max
to stop after a fixed number of documents; only the pages needed to
produce them are fetched.`,
	RunE: runDump,
}

func init() {
	addQueryFlags(dumpCmd)
	dumpCmd.Flags().Int("max", 0, "stop after this many documents (0 = no limit)")
	dumpCmd.Flags().String("save-query", "", "also save the query definition to this YAML file")

	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	s, err := streamFromFlags(cmd)
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save-query"); path != "" {
		qf := cursorstream.QueryFile{
			BaseURL: s.BaseURL,
			Handler: s.Query.Handler,
			Query:   s.Query.Text,
			Filters: s.Query.Filters,
			Sort:    s.Query.Sort,
			Rows:    s.Query.Rows,
			Fields:  s.Query.Fields,
		}
		if err := cursorstream.WriteQueryFile(path, qf); err != nil {
			return err
		}
	}

	max, _ := cmd.Flags().GetInt("max")

	enc := json.NewEncoder(os.Stdout)
	written := 0
	for doc, err := range s.Documents(context.Background()) {
		if err != nil {
			return err
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("writing document: %w", err)
		}
		written++
		if max > 0 && written >= max {
			break
		}
	}

	fmt.Fprintf(os.Stderr, "%d documents in %d fetches (numFound %d)\n",
		written, s.Fetches(), s.NumFound())
	return nil
}
