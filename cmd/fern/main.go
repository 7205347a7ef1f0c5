package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "tokens":
		return tokensCommand(args[2:])
	case "repl":
		return replCommand()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func replCommand() error {
	p := tea.NewProgram(newREPLModel())
	_, err := p.Run()
	return err
}

func usageError() error {
	printUsage()
	return errors.New("fern: unknown command")
}

func printUsage() {
	fmt.Println(`Usage: fern <command>

Commands:
  tokens <file>   tokenize a source file and print its token table ('-' reads stdin)
  repl            interactive tokenizer
  help            show this message`)
}
