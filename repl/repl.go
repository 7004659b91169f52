// Package repl is the Lit VM's interactive shell. It is a genuine "stub"
// per spec.md §1/§6: it does not compile source, nor does it offer any
// debugging protocol beyond what DUMP already provides. Each line the
// user types is tokenised and dispatched immediately as one bytecode
// instruction against a persistent Machine — there is no compilation
// step, matching original_source/vm/lvm.py's repl() placeholder while
// still being useful for poking at the instruction set one opcode at a
// time.
//
// Grounded on cmd/hey/main.go's interactive-shell branch
// (cmd.Bool("a") -> runInteractiveShell), generalised from a PHP REPL to
// a bytecode-line REPL.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"

	"github.com/litlang/litvm/internal/vm"
	"github.com/litlang/litvm/internal/vmconfig"
)

const banner = `Lit VM REPL (stub) — one bytecode instruction per line. Type "exit" to quit.`

// Run starts the REPL loop. It reads from stdin via readline (with a
// history file under the user's home directory when stdin is a real
// terminal; a plain scanner otherwise, so piping a script of lines into
// "litvm repl" still works for scripted testing).
func Run(cfg vmconfig.Config) error {
	machine := vm.NewMachine("<repl>", nil, cfg)

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return runNonInteractive(machine)
	}

	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = home + "/.litvm_history"
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "lit> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), banner)
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}
		if shouldExit(line) {
			return nil
		}
		evalLine(machine, line)
		if machine.Halted() {
			os.Exit(machine.ExitCode())
		}
	}
}

func runNonInteractive(machine *vm.Machine) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if shouldExit(line) {
			return nil
		}
		evalLine(machine, line)
		if machine.Halted() {
			os.Exit(machine.ExitCode())
		}
	}
	return nil
}

func shouldExit(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "exit" || trimmed == "quit"
}

func evalLine(machine *vm.Machine, line string) {
	if err := machine.AppendAndStep(line); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
