package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	lox "github.com/cschram/lox"
)

const appName = "lox"

var banner = fmt.Sprintf("Lox %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", lox.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(lox.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Lox %s

Usage:
  %s run <file.lox>    Run a script.
  %s repl              Start the REPL.
  %s version           Print the compiled version

Configuration is read from an optional lox.toml in the working directory or
your home directory (prompt, history file, color).
`, lox.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.lox>\n", appName)
		return 2
	}

	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ip := lox.NewInterpreter()
	if err := ip.RunNamed(filepath.Base(file), string(src)); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		var rt *lox.RuntimeError
		if errors.As(err, &rt) {
			return 70
		}
		return 65
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	cfg := loadConfig()
	errText := func(s string) string {
		if cfg.Color {
			return red(s)
		}
		return s
	}

	fmt.Println(banner)

	histPath := cfg.historyPath()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := lox.NewInterpreter()

	for {
		code, err := ln.Prompt(cfg.Prompt)
		if err != nil {
			// EOF or Ctrl+C on an empty line ends the session.
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		// A bare expression is echoed by rewriting it to a print statement;
		// the rewrite is only attempted when it parses, so side effects run
		// exactly once either way.
		input := code
		if wrapped, ok := asPrintStmt(trimmed); ok {
			input = wrapped
		}
		if err := ip.RunNamed("<repl>", input); err != nil {
			fmt.Fprintln(os.Stderr, errText(err.Error()))
			continue
		}
		ln.AppendHistory(code)
	}
}

// asPrintStmt reports whether code is a lone expression and, if so, returns
// it wrapped as `print code;`. Statements (anything ending in ';' or '}', or
// anything the wrapped form cannot parse) are left alone.
func asPrintStmt(code string) (string, bool) {
	if strings.HasSuffix(code, ";") || strings.HasSuffix(code, "}") {
		return "", false
	}
	wrapped := "print " + code + ";"
	toks, lexErrs := lox.NewLexer(wrapped).Scan()
	if len(lexErrs) > 0 {
		return "", false
	}
	if _, parseErrs := lox.NewParser(toks).Parse(); len(parseErrs) > 0 {
		return "", false
	}
	return wrapped, true
}
