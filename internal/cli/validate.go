package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/scrollbind/decl"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool     `json:"valid"`
	Kind       string   `json:"kind"` // "fixture" or "declarations"
	Selectors  int      `json:"selectors"`
	Properties int      `json:"properties"`
	Elements   int      `json:"elements,omitempty"`
	Steps      int      `json:"steps,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a fixture or declaration file",
		Long: `Validate a fixture or a bare declaration file.

Declarations are checked against the closed schema: unknown fields, wrong
types and unknown ease names are reported. Fixtures additionally need a
page and, when present, a well-formed scroll script.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	n, err := readDocument(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	result := ValidationResult{Valid: true}
	var d *decl.File
	if isFixture(n) {
		formatter.VerboseLog("Validating fixture %s", path)
		f, err := decodeFixture(n)
		if err != nil {
			return outputValidationFailure(formatter, err)
		}
		result.Kind = "fixture"
		result.Elements = len(f.Page)
		if f.Script != nil {
			result.Steps = len(f.Script.Steps)
		}
		d = f.Decl
	} else {
		formatter.VerboseLog("Validating declarations %s", path)
		d, err = decodeDeclarations(n)
		if err != nil {
			return outputValidationFailure(formatter, err)
		}
		result.Kind = "declarations"
	}
	result.Selectors = len(d.Animations)
	result.Properties = countProperties(d.Animations)

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Valid %s: %d selector(s), %d propert%s\n",
		result.Kind, result.Selectors, result.Properties, plural(result.Properties, "y", "ies"))
	return nil
}

// outputLoadError reports a file that could not be read or parsed (exit 2).
func outputLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Message, nil)
	}
	return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
}

// outputValidationFailure reports a readable file with invalid content
// (exit 1). Parse errors keep exit code 2.
func outputValidationFailure(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if !errors.As(err, &loadErr) || loadErr.Code == ErrCodeParse {
		return outputLoadError(formatter, err)
	}
	issues := loadErr.Details
	if len(issues) == 0 {
		issues = []string{loadErr.Message}
	}

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: issues},
			Error: &CLIError{
				Code:    loadErr.Code,
				Message: loadErr.Message,
			},
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, issue := range issues {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", loadErr.Code, issue)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
