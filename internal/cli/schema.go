package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charlie-x/simget/internal/symbols"
	"github.com/charlie-x/simget/internal/tags"
	"github.com/charlie-x/simget/internal/writer"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

// schemaTypes maps the schema names to the types they describe.
var schemaTypes = map[string]func() any{
	"listing": func() any { return &writer.Record{} },
	"symbols": func() any { return &symbols.File{} },
	"tags":    func() any { return &tags.File{} },
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [listing|symbols|tags]",
		Short:     "Generate JSON schema for the file formats",
		Long:      "Generate the JSON schema of the JSON lines listing output, the symbol file or the tag file",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"listing", "symbols", "tags"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "listing"
			if len(args) > 0 {
				name = strings.ToLower(args[0])
			}

			newType, ok := schemaTypes[name]
			if !ok {
				return &UsageError{msg: fmt.Sprintf("unknown schema '%s', supported: listing, symbols, tags", name)}
			}

			reflector := new(jsonschema.Reflector)
			bts, err := json.MarshalIndent(reflector.Reflect(newType()), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal schema: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bts))
			return err
		},
	}
}
