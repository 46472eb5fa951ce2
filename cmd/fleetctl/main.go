// fleetctl is the operator console of the AMR fleet monitor. It hosts the
// robot-registration form and renders the status overlay of a running
// fleetd.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		printUsage(out)
		return errors.New("missing command")
	}

	switch args[0] {
	case "register":
		return runRegister(args[1:], out)
	case "overlay":
		return runOverlay(args[1:], out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func parseFlags(flagSet *pflag.FlagSet, args []string, out io.Writer) (bool, error) {
	flagSet.SetOutput(out)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return false, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return true, nil
}

func printUsage(out io.Writer) {
	fmt.Fprint(out, `fleetctl: operator console for the AMR fleet monitor.

Usage:
  fleetctl register            open the robot-registration form
  fleetctl overlay [flags]     print the fleet status overlay

Run "fleetctl <command> --help" for command flags.
`)
}
