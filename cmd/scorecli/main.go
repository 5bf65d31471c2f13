// Command scorecli runs the scoring and summarisation pipelines over local
// CSV files without the HTTP service.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var format string

var rootCmd = &cobra.Command{
	Use:           "scorecli",
	Short:         "Score or summarise CSV files offline",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(summarizeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// render writes v to w as indented JSON or as YAML.
func render(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (want json or yaml)", format)
}
