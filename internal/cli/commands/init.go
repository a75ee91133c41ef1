package commands

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed templates/*
var templatesFS embed.FS

var (
	initInteractive bool
	initTask        string
)

// validateProjectName validates project name with security checks
func validateProjectName(name string) error {
	name = strings.TrimSpace(name)

	// Check length
	if len(name) == 0 || len(name) > 100 {
		return fmt.Errorf("project name must be 1-100 characters")
	}

	// Check for absolute paths
	if filepath.IsAbs(name) {
		return fmt.Errorf("project name cannot be an absolute path")
	}

	// Only allow alphanumeric, dash, and underscore
	// This regex already prevents dots (including ".."), so no additional check needed
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_-]+$`, name)
	if !matched {
		return fmt.Errorf("project name can only contain letters, numbers, dashes, and underscores")
	}

	return nil
}

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [project-name]",
		Short: "Create a new wizagent project",
		Long: `Create a new wizagent project with a starter schema and configuration.

If no project name is provided, you will be prompted to enter one.

Examples:
  gemc init stock-extractor
  gemc init invoices --task "Extract line items from invoices"
  gemc init --interactive`,
		RunE: runInit,
	}

	cmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "Interactive project setup with prompts")
	cmd.Flags().StringVar(&initTask, "task", "Extract structured records from the source text", "Task description for the starter schema")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	var projectName string

	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)
	promptColor := color.New(color.FgYellow)

	// Get project name from args or prompt
	if len(args) > 0 {
		projectName = args[0]
	}

	task := initTask

	if projectName == "" && !initInteractive {
		prompt := &survey.Input{
			Message: "Project name:",
		}
		if err := survey.AskOne(prompt, &projectName, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	// Interactive mode
	if initInteractive {
		questions := []*survey.Question{
			{
				Name: "projectName",
				Prompt: &survey.Input{
					Message: "Project name:",
					Default: projectName,
				},
				Validate: survey.Required,
			},
			{
				Name: "task",
				Prompt: &survey.Input{
					Message: "Extraction task:",
					Default: task,
					Help:    "One or two sentences describing what the models capture",
				},
			},
		}

		answers := struct {
			ProjectName string
			Task        string
		}{}

		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}

		projectName = answers.ProjectName
		task = answers.Task
	}

	// Validate project name with security checks
	if err := validateProjectName(projectName); err != nil {
		return err
	}

	// Create project directory
	projectPath := filepath.Join(".", projectName)
	if _, err := os.Stat(projectPath); err == nil {
		return fmt.Errorf("directory %s already exists", projectName)
	}

	infoColor.Printf("Creating project: %s\n\n", projectName)

	// Create directory structure
	dirs := []string{
		projectPath,
		filepath.Join(projectPath, "schemas"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Template data
	data := map[string]interface{}{
		"ProjectName": projectName,
		"Task":        task,
	}

	// Create files from templates
	files := map[string]string{
		"schemas/models.yml": "templates/schema.yml.tmpl",
		"wizagent.yml":       "templates/config.tmpl",
		".gitignore":         "templates/gitignore.tmpl",
	}

	for destPath, tmplPath := range files {
		if err := renderTemplate(projectPath, destPath, tmplPath, data); err != nil {
			return err
		}
		infoColor.Printf("  ✓ Created %s\n", destPath)
	}

	// Create README
	readmePath := filepath.Join(projectPath, "README.md")
	readmeContent := fmt.Sprintf(`# %s

Extraction model schemas compiled with gemc.

## Getting Started

1. Describe your models in `+"`schemas/models.yml`"+`

2. Check that everything compiles:
   `+"`"+`bash
   gemc check
   `+"`"+`

3. Inspect the compiled models:
   `+"`"+`bash
   gemc inspect schemas/models.yml
   `+"`"+`

## Project Structure

- `+"`schemas/`"+` - Model declarations (`+"`.yml`"+`)
- `+"`wizagent.yml`"+` - Project configuration
`, projectName)

	if err := os.WriteFile(readmePath, []byte(readmeContent), 0644); err != nil {
		return fmt.Errorf("failed to create README: %w", err)
	}

	infoColor.Println("  ✓ Created README.md")

	// Print success message
	fmt.Println()
	successColor.Printf("✓ Created project: %s\n\n", projectName)

	promptColor.Println("Get started:")
	fmt.Printf("  cd %s\n", projectName)
	fmt.Println("  gemc check")
	fmt.Println("  gemc inspect schemas/models.yml")
	fmt.Println()

	return nil
}

func renderTemplate(projectPath, destPath, tmplPath string, data map[string]interface{}) error {
	tmplContent, err := templatesFS.ReadFile(tmplPath)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(filepath.Base(tmplPath)).Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", tmplPath, err)
	}

	destFullPath := filepath.Join(projectPath, destPath)
	f, err := os.Create(destFullPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destFullPath, err)
	}

	if err := tmpl.Execute(f, data); err != nil {
		f.Close()
		os.Remove(destFullPath)
		return fmt.Errorf("failed to execute template %s: %w", tmplPath, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(destFullPath)
		return fmt.Errorf("failed to close file %s: %w", destFullPath, err)
	}

	return nil
}
