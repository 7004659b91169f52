// Command litvm runs the Lit bytecode virtual machine. It loads an
// already-emitted textual .lbc program and interprets it to exhaustion;
// it does not compile source — the lexer/parser/AST/optimiser/codegen
// front-end is an external collaborator (spec.md §1).
//
// Grounded on cmd/hey/main.go's urfave/cli/v3 command shape.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/litlang/litvm/internal/vm"
	"github.com/litlang/litvm/internal/vmconfig"
	"github.com/litlang/litvm/repl"
)

func main() {
	app := &cli.Command{
		Name:  "litvm",
		Usage: "Interpreter for the Lit textual bytecode format",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "repl", Usage: "start the interactive REPL stub"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a .litvm.yml config file"},
			&cli.BoolFlag{Name: "trace", Usage: "trace every dispatched instruction to stderr"},
		},
		Commands: []*cli.Command{
			runCommand,
			dumpCommand,
			replCommand,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("repl") {
				return runREPL(cmd)
			}
			if cmd.Args().Len() == 0 {
				return cli.ShowAppHelp(cmd)
			}
			return runFile(cmd, cmd.Args().First(), false)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "litvm: %v\n", err)
		os.Exit(1)
	}
}

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "run a .lbc program",
	ArgsUsage: "<program.lbc>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() == 0 {
			return fmt.Errorf("usage: litvm run <program.lbc>")
		}
		return runFile(cmd, cmd.Args().First(), false)
	},
}

var dumpCommand = &cli.Command{
	Name:      "dump",
	Usage:     "run a .lbc program tracing every instruction (not a debugger — no breakpoints/stepping)",
	ArgsUsage: "<program.lbc>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() == 0 {
			return fmt.Errorf("usage: litvm dump <program.lbc>")
		}
		return runFile(cmd, cmd.Args().First(), true)
	},
}

var replCommand = &cli.Command{
	Name:  "repl",
	Usage: "start the interactive REPL stub",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return runREPL(cmd)
	},
}

func runFile(cmd *cli.Command, path string, forceTrace bool) error {
	if !strings.HasSuffix(path, ".lbc") {
		fmt.Fprintln(os.Stderr, "Not .lbc file")
		return nil
	}

	cfg, err := vmconfig.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.Bool("trace") || forceTrace {
		cfg.Trace = true
	}

	machine, err := vm.LoadFile(path, cfg)
	if err != nil {
		return err
	}

	if err := machine.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if machine.Halted() {
		os.Exit(machine.ExitCode())
	}
	return nil
}

func runREPL(cmd *cli.Command) error {
	cfg, err := vmconfig.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	return repl.Run(cfg)
}
