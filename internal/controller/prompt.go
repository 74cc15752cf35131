package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// SortParams are the run parameters an operator supplies for a sort.
type SortParams struct {
	Source   string
	Root     string
	MaxDepth int
	Limit    int
	DryRun   bool
}

// Prompter collects sort parameters interactively.
type Prompter interface {
	PromptSortParams(ctx context.Context, defaults SortParams) (SortParams, error)
}

// FormPrompter asks for sort parameters with a huh form.
type FormPrompter struct {
	input  io.Reader
	output io.Writer
}

// NewFormPrompter creates a prompter reading from in and drawing to out.
func NewFormPrompter(in io.Reader, out io.Writer) *FormPrompter {
	return &FormPrompter{input: in, output: out}
}

// PromptSortParams shows the form prefilled with defaults.
func (p *FormPrompter) PromptSortParams(ctx context.Context, defaults SortParams) (SortParams, error) {
	source := defaults.Source
	root := defaults.Root
	depth := strconv.Itoa(defaults.MaxDepth)
	limit := strconv.Itoa(defaults.Limit)
	dryRun := defaults.DryRun

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Folder to sort files from").
				Value(&source).
				Validate(validateDirectory),
			huh.NewInput().
				Title("Sort to folders in").
				Value(&root).
				Validate(validateDirectory),
			huh.NewInput().
				Title("How many folders deep can the classifier see").
				Value(&depth).
				Validate(validateNonNegative),
			huh.NewInput().
				Title("Iteration limit").
				Value(&limit).
				Validate(validateNonNegative),
			huh.NewConfirm().
				Title("Dry run").
				Description("Report moves without performing them").
				Value(&dryRun),
		),
	).WithInput(p.input).WithOutput(p.output)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return SortParams{}, fmt.Errorf("prompt cancelled: %w", err)
		}

		return SortParams{}, fmt.Errorf("prompt: %w", err)
	}

	params := SortParams{
		Source: strings.TrimSpace(source),
		Root:   strings.TrimSpace(root),
		DryRun: dryRun,
	}

	// Both values already passed validation.
	params.MaxDepth, _ = strconv.Atoi(strings.TrimSpace(depth))
	params.Limit, _ = strconv.Atoi(strings.TrimSpace(limit))

	return params, nil
}

func validateDirectory(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("path required")
	}

	info, err := os.Stat(value)
	if err != nil {
		return fmt.Errorf("cannot access %s", value)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", value)
	}

	return nil
}

func validateNonNegative(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return errors.New("enter a whole number")
	}

	if n < 0 {
		return errors.New("must not be negative")
	}

	return nil
}
