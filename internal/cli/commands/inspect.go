package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/caesar0301/wizagent/gem"
	"github.com/caesar0301/wizagent/internal/cli/ui"
)

var (
	inspectFormat string
	inspectTypes  bool
	noColor       bool
)

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the models a schema file compiles to",
		Long: `Show the models a schema file compiles to.

Displays every model with its fields, resolved types, and descriptions.
The file must compile cleanly; use 'gemc check' to diagnose failures.

With --types, lists the built-in type names instead of reading a file.`,
		Example: `  # Show the models in a schema
  gemc inspect schemas/stocks.yml

  # Output in JSON format for tooling
  gemc inspect schemas/stocks.yml --format json

  # List the built-in types
  gemc inspect --types`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable color output if requested
			if noColor {
				color.NoColor = true
			}
		},
		RunE: runInspect,
	}

	cmd.PersistentFlags().StringVar(&inspectFormat, "format", "text", "Output format: json or text")
	cmd.PersistentFlags().BoolVar(&inspectTypes, "types", false, "List built-in type names")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

// fieldInfo is the JSON shape for one model field.
type fieldInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// modelInfo is the JSON shape for one compiled model.
type modelInfo struct {
	Name       string      `json:"name"`
	Fields     []fieldInfo `json:"fields"`
	References []string    `json:"references,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectFormat != "text" && inspectFormat != "json" {
		return fmt.Errorf("unsupported format: %s (supported: json, text)", inspectFormat)
	}

	writer := cmd.OutOrStdout()

	if inspectTypes {
		return inspectBuiltinTypes(writer)
	}

	if len(args) == 0 {
		return fmt.Errorf("requires a schema file argument (or --types)")
	}

	file := args[0]
	doc, err := gem.LoadDocument(file)
	if err != nil {
		return err
	}

	compiler := gem.NewCompiler()
	set, err := compiler.Compile(doc)
	if err != nil {
		return err
	}
	deps, err := compiler.Dependencies(doc)
	if err != nil {
		return err
	}

	models := make([]modelInfo, 0, set.Len())
	for _, name := range set.Names() {
		model, _ := set.Get(name)

		info := modelInfo{
			Name:       name,
			Fields:     make([]fieldInfo, 0, len(model.Fields())),
			References: deps[name],
		}
		for _, f := range model.Fields() {
			info.Fields = append(info.Fields, fieldInfo{
				Name:        f.Name,
				Type:        f.Type.String(),
				Description: f.Description,
			})
		}
		models = append(models, info)
	}

	if inspectFormat == "json" {
		output := struct {
			File   string      `json:"file"`
			Task   string      `json:"task,omitempty"`
			Models []modelInfo `json:"models"`
		}{
			File:   file,
			Task:   doc.Task,
			Models: models,
		}

		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	return formatModelsAsText(writer, doc.Task, models)
}

func inspectBuiltinTypes(writer io.Writer) error {
	names := gem.NewCompiler().Registry().Names()

	if inspectFormat == "json" {
		output := struct {
			Types []string `json:"types"`
		}{Types: names}

		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	bold := color.New(color.Bold)
	bold.Fprintf(writer, "BUILT-IN TYPES (%d)\n\n", len(names))
	for _, name := range names {
		fmt.Fprintf(writer, "  %s\n", name)
	}

	return nil
}

func formatModelsAsText(writer io.Writer, task string, models []modelInfo) error {
	if task != "" {
		fmt.Fprint(writer, ui.KeyValueList([][2]string{{"Task", task}}, color.NoColor))
		fmt.Fprintln(writer)
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	bold.Fprintf(writer, "MODELS (%d total)\n\n", len(models))

	for _, model := range models {
		cyan.Fprintf(writer, "%s:\n", model.Name)

		if len(model.Fields) == 0 {
			fmt.Fprintln(writer, "  (no fields)")
			fmt.Fprintln(writer)
			continue
		}

		table := ui.NewTable("FIELD", "TYPE", "DESCRIPTION")
		if color.NoColor {
			table.DisableColor()
		}
		for _, f := range model.Fields {
			table.AddRow(f.Name, f.Type, f.Description)
		}
		fmt.Fprint(writer, table.Render())
		if len(model.References) > 0 {
			fmt.Fprintf(writer, "  references: %s\n", strings.Join(model.References, ", "))
		}
		fmt.Fprintln(writer)
	}

	return nil
}
