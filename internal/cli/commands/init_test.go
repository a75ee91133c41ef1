package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caesar0301/wizagent/gem"
)

func TestInitCommand(t *testing.T) {
	t.Run("has correct usage", func(t *testing.T) {
		cmd := NewInitCommand()
		assert.Equal(t, "init [project-name]", cmd.Use)
		assert.NotEmpty(t, cmd.Short)
		assert.NotEmpty(t, cmd.Long)
	})

	t.Run("has interactive flag", func(t *testing.T) {
		cmd := NewInitCommand()
		flag := cmd.Flags().Lookup("interactive")
		require.NotNil(t, flag)
		assert.Equal(t, "false", flag.DefValue)
		assert.Equal(t, "i", flag.Shorthand)
	})

	t.Run("has task flag", func(t *testing.T) {
		cmd := NewInitCommand()
		flag := cmd.Flags().Lookup("task")
		require.NotNil(t, flag)
		assert.NotEmpty(t, flag.DefValue)
	})
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "my-project", false},
		{"underscores", "stock_extractor", false},
		{"digits", "extractor2", false},
		{"empty", "", true},
		{"absolute path", "/etc/passwd", true},
		{"parent traversal", "../escape", true},
		{"spaces", "my project", true},
		{"slashes", "a/b", true},
		{"too long", strings.Repeat("a", 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateProjectName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInitCreatesProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cmd := NewInitCommand()
	cmd.SetArgs([]string{"stock-extractor"})
	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join("stock-extractor", "wizagent.yml"))
	assert.FileExists(t, filepath.Join("stock-extractor", ".gitignore"))
	assert.FileExists(t, filepath.Join("stock-extractor", "README.md"))
	assert.FileExists(t, filepath.Join("stock-extractor", "schemas", "models.yml"))

	// The starter schema must itself compile.
	set, err := gem.CompileFile(filepath.Join("stock-extractor", "schemas", "models.yml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Item", "Collection"}, set.Names())

	// The rendered config must name the project.
	cfgBytes, err := os.ReadFile(filepath.Join("stock-extractor", "wizagent.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfgBytes), "project_name: stock-extractor")
}

func TestInitCustomTask(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cmd := NewInitCommand()
	cmd.SetArgs([]string{"invoices", "--task", "Extract line items from invoices"})
	require.NoError(t, cmd.Execute())

	schemaBytes, err := os.ReadFile(filepath.Join("invoices", "schemas", "models.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(schemaBytes), "task: Extract line items from invoices")
}

func TestInitRejectsExistingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	require.NoError(t, os.Mkdir("taken", 0755))

	cmd := NewInitCommand()
	cmd.SetArgs([]string{"taken"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitRejectsBadName(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cmd := NewInitCommand()
	cmd.SetArgs([]string{"../escape"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "letters, numbers, dashes, and underscores")
}
