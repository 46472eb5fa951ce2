package main

import (
	"encoding/json"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"amr-fleet-monitor/internal/registration"
	"amr-fleet-monitor/internal/tui"
)

func runRegister(args []string, out io.Writer) error {
	flagSet := pflag.NewFlagSet("register", pflag.ContinueOnError)
	if ok, err := parseFlags(flagSet, args, out); !ok {
		return err
	}

	final, err := tea.NewProgram(tui.NewRegisterModel()).Run()
	if err != nil {
		return fmt.Errorf("registration form: %w", err)
	}

	model, ok := final.(tui.RegisterModel)
	if !ok {
		return fmt.Errorf("unexpected model %T", final)
	}
	outcome, finished := model.Outcome()
	if !finished {
		return fmt.Errorf("registration form exited without an outcome")
	}
	return printOutcome(out, outcome)
}

func printOutcome(out io.Writer, outcome registration.Outcome) error {
	switch outcome.Kind {
	case registration.OutcomeSubmitted:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(outcome.Draft)
	case registration.OutcomeCancelled:
		_, err := fmt.Fprintln(out, "cancelled")
		return err
	default:
		return fmt.Errorf("unknown outcome %d", outcome.Kind)
	}
}
