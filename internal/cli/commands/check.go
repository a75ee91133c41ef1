package commands

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caesar0301/wizagent/compiler/errors"
	"github.com/caesar0301/wizagent/gem"
	"github.com/caesar0301/wizagent/internal/cli/config"
	"github.com/caesar0301/wizagent/internal/cli/ui"
	"github.com/caesar0301/wizagent/internal/utils"
)

var (
	checkJSON    bool
	checkVerbose bool
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Compile schema files and report errors",
		Long: `Compile schema documents and report any errors without producing output.

Each file goes through the full pipeline:
  1. Document parsing - validate the YAML structure
  2. Type resolution - parse every field's type expression
  3. Cycle detection - reject circular model references
  4. Model building - construct and seal the model set

With no arguments, all .yml and .yaml files under the configured schema
directory are checked.`,
		Example: `  # Check every schema in the project
  gemc check

  # Check specific files
  gemc check schemas/stocks.yml schemas/metrics.yml

  # Check with detailed output for each file
  gemc check --verbose

  # Output results in JSON format (useful for tooling)
  gemc check --json`,
		RunE: runCheck,
	}

	cmd.Flags().BoolVar(&checkJSON, "json", false, "Output results in JSON format")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Show each file as it is checked")

	return cmd
}

// checkResult records the outcome of compiling one schema file.
type checkResult struct {
	File        string   `json:"file"`
	OK          bool     `json:"ok"`
	Models      []string `json:"models,omitempty"`
	Error       string   `json:"error,omitempty"`
	Code        string   `json:"code,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`

	typeName string
}

func runCheck(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	infoColor := color.New(color.FgCyan)
	warningColor := color.New(color.FgYellow)

	// Load config
	cfg, err := config.Load()
	if err != nil {
		if checkVerbose {
			warningColor.Printf("Warning: %v\n", err)
		}
	}

	// Determine which files to check
	files := args
	if len(files) == 0 {
		schemaDir := "schemas"
		if cfg != nil && cfg.Schema.Dir != "" {
			schemaDir = cfg.Schema.Dir
		}

		if _, err := os.Stat(schemaDir); os.IsNotExist(err) {
			return fmt.Errorf("%s/ directory not found - pass schema files explicitly or run 'gemc init'", schemaDir)
		}

		files, err = utils.FindSchemaFiles(schemaDir)
		if err != nil {
			return fmt.Errorf("failed to find schema files: %w", err)
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no schema files found")
	}

	if checkVerbose {
		infoColor.Printf("Found %d schema file(s)\n", len(files))
	}

	logger := zap.NewNop()
	if checkVerbose {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}
	compiler := gem.NewCompiler(gem.WithLogger(logger))
	if cfg != nil {
		if err := registerConfigTypes(compiler, cfg.Schema.Types); err != nil {
			return err
		}
	}

	results := make([]checkResult, 0, len(files))
	failures := 0
	for _, file := range files {
		if checkVerbose {
			infoColor.Printf("Checking %s...\n", file)
		}

		result := checkFile(compiler, file)
		if !result.OK {
			failures++
		}
		results = append(results, result)
	}

	if checkJSON {
		outputCheckJSON(results, failures == 0)
		if failures > 0 {
			return fmt.Errorf("check failed")
		}
		return nil
	}

	if failures > 0 {
		outputCheckFailures(results, failures, errorColor)
		return fmt.Errorf("check failed")
	}

	totalModels := 0
	for _, r := range results {
		totalModels += len(r.Models)
	}

	elapsed := time.Since(startTime)
	successColor.Printf("✓ %d file(s) checked, %d model(s) compiled in %.2fs\n",
		len(results), totalModels, elapsed.Seconds())

	return nil
}

// registerConfigTypes registers the project's type aliases from
// wizagent.yml. Each alias must name a type that is already registered.
func registerConfigTypes(compiler *gem.Compiler, aliases map[string]string) error {
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	sort.Strings(names)

	for _, alias := range names {
		base := aliases[alias]
		t, ok := compiler.Registry().Get(base)
		if !ok {
			return fmt.Errorf("config: alias '%s' names unknown type '%s'", alias, base)
		}
		compiler.RegisterType(alias, t)
	}
	return nil
}

// checkFile compiles one schema file and records the outcome. The compiler
// is shared so custom type registrations carry across files.
func checkFile(compiler *gem.Compiler, file string) checkResult {
	result := checkResult{File: file}

	doc, err := gem.LoadDocument(file)
	if err != nil {
		result.Error = err.Error()
		result.Code, result.typeName = classifyError(err)
		return result
	}

	set, err := compiler.Compile(doc)
	if err != nil {
		result.Error = err.Error()
		result.Code, result.typeName = classifyError(err)
		if result.typeName != "" {
			candidates := append(compiler.Registry().Names(), doc.ModelNames()...)
			result.Suggestions = ui.Suggest(result.typeName, candidates)
		}
		return result
	}

	result.OK = true
	result.Models = set.Names()
	return result
}

// classifyError extracts the stable error code, plus the offending type
// name when the failure is an unknown-type lookup.
func classifyError(err error) (code, typeName string) {
	var schemaErr *errors.SchemaError
	if stderrors.As(err, &schemaErr) {
		return schemaErr.Code, ""
	}

	var typeErr *errors.TypeResolutionError
	if stderrors.As(err, &typeErr) {
		if typeErr.Code == errors.CodeUnknownType {
			return typeErr.Code, typeErr.TypeName
		}
		return typeErr.Code, ""
	}

	var cycleErr *errors.CircularReferenceError
	if stderrors.As(err, &cycleErr) {
		return errors.CodeCircularReference, ""
	}

	return "", ""
}

func outputCheckJSON(results []checkResult, success bool) {
	output := struct {
		Success bool          `json:"success"`
		Files   []checkResult `json:"files"`
	}{
		Success: success,
		Files:   results,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(output)
}

func outputCheckFailures(results []checkResult, failures int, errorColor *color.Color) {
	errorColor.Fprintf(os.Stderr, "\nCheck failed with %d error(s):\n\n", failures)

	for _, r := range results {
		if r.OK {
			continue
		}

		fmt.Fprintln(os.Stderr, r.File)
		if r.typeName != "" {
			fmt.Fprint(os.Stderr, ui.UnknownTypeMessage(r.typeName, r.Suggestions, color.NoColor))
		} else {
			ui.WriteMessage(os.Stderr, ui.MessageOptions{
				Level:   ui.LevelError,
				Problem: r.Error,
			})
		}
		fmt.Fprintln(os.Stderr)
	}
}
