package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsongraph/pkg/accessor"
	"github.com/matzehuels/jsongraph/pkg/errors"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// Value output formats for get.
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// getCommand creates the get command.
func (c *CLI) getCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get FILE ACCESSOR",
		Short: "Print the value at an accessor",
		Long: `Print the value at an accessor such as user.tags[0]. An empty accessor
prints the whole document.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openWorkspace(cmd.Context(), args[0], openOptions{})
			if err != nil {
				return err
			}
			defer ws.Close()

			v, ok, err := ws.store.Get(args[1])
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "no value at %s", accessor.Display(accessor.Decode(args[1])))
			}

			data, err := encodeValue(v, output)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "output format: json, yaml")
	return cmd
}

// encodeValue renders v as JSON or YAML, ending in a newline.
func encodeValue(v jsonvalue.Value, format string) ([]byte, error) {
	switch format {
	case "", outputJSON:
		data, err := jsonvalue.Marshal(v)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case outputYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf, yaml.Indent(2), yaml.IndentSequence(true))
		if err := enc.Encode(toYAML(v)); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown output format %q (want json or yaml)", format)
}

// toYAML converts v into values go-yaml encodes in document order.
func toYAML(v jsonvalue.Value) any {
	switch t := v.(type) {
	case *jsonvalue.Object:
		out := make(yaml.MapSlice, 0, t.Len())
		for _, k := range t.Keys() {
			child, _ := t.Get(k)
			out = append(out, yaml.MapItem{Key: k, Value: toYAML(child)})
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = toYAML(e)
		}
		return out
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	}
	return v
}
