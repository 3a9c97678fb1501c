package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quarry-build/quarry/pkg/api"
	"github.com/quarry-build/quarry/pkg/criteria"
	"github.com/quarry-build/quarry/pkg/field"
	"github.com/quarry-build/quarry/pkg/script"
	"github.com/quarry-build/quarry/pkg/telemetry"
)

func newResolveCommand() *cobra.Command {
	var (
		projectName   string
		configuration string
		platform      string
		system        string
		file          string
		extraTerms    []string
		fieldNames    []string
		compileSet    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <definition.star>",
		Short: "Evaluate a definition file and resolve fields for a context",
		Long: `Resolve evaluates a Starlark build definition, then queries the
resolution engine for the effective value of each field in the context
given by the flags. With --compile the config sets are pre-filtered
against the context first, the fast path the generator uses when the
same context is queried once per source file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := telemetry.NewLogger(loggingConfig())
			runID := uuid.NewString()
			logger.Info().Str("run_id", runID).Str("definition", args[0]).Msg("resolving definition")

			registry := field.DefaultRegistry()
			evaluator := script.NewEvaluator(registry, logger)
			session, err := evaluator.EvalFile(args[0], nil)
			if err != nil {
				return err
			}
			if len(session.Workspaces) == 0 {
				return fmt.Errorf("definition %s declares no workspace", args[0])
			}

			ctx := buildContext(configuration, platform, system, file, extraTerms)
			logger.Debug().Str("run_id", runID).Interface("context", ctx).Msg("query context")

			names := fieldNames
			if len(names) == 0 {
				names = registry.Names()
			}

			result := make(map[string]map[string]map[string]interface{})
			for _, ws := range session.Workspaces {
				wsOut := make(map[string]map[string]interface{})
				for _, p := range ws.Projects() {
					if projectName != "" && p.Name != projectName {
						continue
					}
					wsOut[p.Name] = resolveContainer(p, registry, names, ctx, compileSet)
				}
				result[ws.Name] = wsOut
			}

			return writeResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "limit output to one project")
	cmd.Flags().StringVar(&configuration, "configuration", "debug", "build configuration term")
	cmd.Flags().StringVar(&platform, "platform", "", "platform term")
	cmd.Flags().StringVar(&system, "system", "", "target system term")
	cmd.Flags().StringVar(&file, "file", "", "source file path term")
	cmd.Flags().StringArrayVar(&extraTerms, "term", nil, "additional context term as key:value (repeatable)")
	cmd.Flags().StringArrayVar(&fieldNames, "field", nil, "field to resolve (repeatable; default all)")
	cmd.Flags().BoolVar(&compileSet, "compile", false, "pre-compile config sets against the context")

	return cmd
}

// buildContext assembles the lowercase query context from the flag values.
func buildContext(configuration, platform, system, file string, extraTerms []string) criteria.Context {
	ctx := criteria.Context{}
	if configuration != "" {
		ctx["configurations"] = strings.ToLower(configuration)
	}
	if platform != "" {
		ctx["platforms"] = strings.ToLower(platform)
	}
	if system != "" {
		ctx["system"] = strings.ToLower(system)
	}
	if file != "" {
		ctx[criteria.FilesKey] = strings.ToLower(strings.ReplaceAll(file, "\\", "/"))
	}
	for _, term := range extraTerms {
		if key, value, ok := strings.Cut(term, ":"); ok {
			ctx[strings.ToLower(strings.TrimSpace(key))] = strings.ToLower(strings.TrimSpace(value))
		}
	}
	return ctx
}

// resolveContainer fetches the named fields from one project container,
// skipping absent scalars and empty containers.
func resolveContainer(c *api.Container, registry *field.Registry, names []string, ctx criteria.Context, compile bool) map[string]interface{} {
	cset := c.Config
	if compile {
		cset = cset.Compile(ctx)
	}

	out := make(map[string]interface{})
	for _, name := range names {
		f, ok := registry.Get(name)
		if !ok {
			continue
		}
		queryCtx := ctx
		if compile {
			// Compiled sets trust their precomputed membership.
			queryCtx = criteria.Context{}
		}
		value, ok := cset.Fetch(f, queryCtx)
		if !ok {
			continue
		}
		if list, isList := value.([]string); isList && len(list) == 0 {
			continue
		}
		if m, isMap := value.(map[string]string); isMap && len(m) == 0 {
			continue
		}
		out[name] = value
	}
	return out
}

func writeResult(w io.Writer, result map[string]map[string]map[string]interface{}) error {
	switch {
	case jsonOutput:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case yamlOutput:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(result)
	default:
		return writeText(w, result)
	}
}

func writeText(w io.Writer, result map[string]map[string]map[string]interface{}) error {
	workspaces := sortedKeys(result)
	for _, ws := range workspaces {
		fmt.Fprintf(w, "workspace %s\n", ws)
		for _, project := range sortedKeys(result[ws]) {
			fmt.Fprintf(w, "  project %s\n", project)
			values := result[ws][project]
			for _, name := range sortedKeys(values) {
				fmt.Fprintf(w, "    %-16s %v\n", name, values[name])
			}
		}
	}
	return nil
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// loggingConfig derives the logging configuration from the global flags.
func loggingConfig() telemetry.LoggingConfig {
	cfg := telemetry.DefaultLoggingConfig()
	if verbose {
		cfg.Level = "debug"
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Level = lvl
	}
	return cfg
}
