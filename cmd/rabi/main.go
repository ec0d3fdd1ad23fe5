// Command rabi is a small terminal text editor with syntax highlighting.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"example.com/rabi/internal/app"
	"example.com/rabi/pkg/config"
	"example.com/rabi/pkg/logs"
	"example.com/rabi/pkg/syntax"
	"example.com/rabi/pkg/terminal"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "rabi: %v\n", err)
		os.Exit(1)
	}
}

// run starts the editor. The terminal is restored before it returns, so
// the caller can print the error on a sane screen.
func run(args []string, stdin, stdout *os.File, stderr io.Writer) error {
	flags := flag.NewFlagSet("rabi", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configDir := flags.String("config", "", "configuration directory (default $XDG_CONFIG_HOME/rabi)")
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "usage: rabi [-config dir] [file]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if flags.NArg() > 1 {
		flags.Usage()
		return errors.New("too many arguments")
	}

	dir := *configDir
	if dir == "" {
		dir = config.Dir()
	}
	cfg, err := config.LoadDefault(dir)
	if err != nil {
		return err
	}
	syntaxDir := ""
	if dir != "" {
		syntaxDir = filepath.Join(dir, "syntax.d")
	}
	reg, err := syntax.LoadRegistry(syntaxDir)
	if err != nil {
		return err
	}

	r, err := app.New(cfg, reg)
	if err != nil {
		return err
	}
	r.Logger = logs.NewFromEnv()
	defer r.Logger.Close()
	if err := r.LoadFile(flags.Arg(0)); err != nil {
		return err
	}

	term, err := terminal.Open(stdin, stdout)
	if err != nil {
		return err
	}
	defer term.Restore()
	r.Term = term
	return r.Run()
}
