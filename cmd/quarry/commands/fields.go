package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quarry-build/quarry/pkg/field"
)

// fieldInfo is the serializable view of one registered field.
type fieldInfo struct {
	Name      string   `json:"name" yaml:"name"`
	Kind      string   `json:"kind" yaml:"kind"`
	Scope     string   `json:"scope,omitempty" yaml:"scope,omitempty"`
	Mergeable bool     `json:"mergeable" yaml:"mergeable"`
	Allowed   []string `json:"allowed,omitempty" yaml:"allowed,omitempty"`
}

func newFieldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the builtin field registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := field.DefaultRegistry()

			infos := make([]fieldInfo, 0, registry.Len())
			for _, name := range registry.Names() {
				f, _ := registry.Get(name)
				infos = append(infos, fieldInfo{
					Name:      f.Name,
					Kind:      string(f.Kind),
					Scope:     f.Scope,
					Mergeable: f.Mergeable(),
					Allowed:   f.Allowed,
				})
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonOutput:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			case yamlOutput:
				enc := yaml.NewEncoder(out)
				defer enc.Close()
				return enc.Encode(infos)
			default:
				for _, info := range infos {
					merge := "override"
					if info.Mergeable {
						merge = "merge"
					}
					fmt.Fprintf(out, "%-16s %-9s %-9s %s\n", info.Name, info.Kind, info.Scope, merge)
				}
				return nil
			}
		},
	}
}
