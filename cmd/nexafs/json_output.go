package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// writeJSON renders scan results and inventory payloads as indented JSON
// on the command's stdout. HTML escaping is off so archive paths survive
// round-tripping through shell pipelines unmangled.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
