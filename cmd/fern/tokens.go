package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fernlang/fern/fern"
)

var (
	structuralColor = lipgloss.Color("#8B5CF6")
	markColor       = lipgloss.Color("#6B7280")
	keywordColor    = lipgloss.Color("#3B82F6")
	literalColor    = lipgloss.Color("#10B981")
	nameColor       = lipgloss.Color("#F59E0B")

	structuralStyle = lipgloss.NewStyle().Foreground(structuralColor).Italic(true)
	markStyle       = lipgloss.NewStyle().Foreground(markColor)
	keywordStyle    = lipgloss.NewStyle().Foreground(keywordColor).Bold(true)
	literalStyle    = lipgloss.NewStyle().Foreground(literalColor)
	nameStyle       = lipgloss.NewStyle().Foreground(nameColor)
)

func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	plain := fs.Bool("plain", false, "disable styled output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return errors.New("fern tokens: source path required ('-' for stdin)")
	}

	var in fern.Input
	if rest[0] == "-" {
		in = fern.FromReader(os.Stdin)
	} else {
		f, err := os.Open(rest[0])
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer f.Close()
		in = fern.FromReader(f)
	}

	out, err := fern.Tokenize(in, nil)
	if err != nil {
		return fmt.Errorf("tokenize failed: %w", err)
	}
	fmt.Print(renderTokenTable(out, !*plain))
	return nil
}

func renderTokenTable(out *fern.Output, styled bool) string {
	var b strings.Builder
	for i := 0; i < out.Len(); i++ {
		entry := out.At(i)
		loc := "?"
		if l, ok := out.Location(entry.Range); ok {
			loc = l.String()
		}
		row := fmt.Sprintf("%-10s %-8s %s", entry.Range, loc, tokenLabel(out, entry.Token))
		if styled {
			row = kindStyle(entry.Token.Kind).Render(row)
		}
		b.WriteString(row)
		b.WriteByte('\n')
	}
	b.WriteString(fmt.Sprintf("%d tokens\n", out.Len()))
	return b.String()
}

func tokenLabel(out *fern.Output, tok fern.Token) string {
	switch tok.Kind {
	case fern.KindIdent:
		return fmt.Sprintf("identifier %s", out.Name(tok.Ident()))
	case fern.KindString:
		return fmt.Sprintf("string %q", out.StringValue(tok.StringLit()))
	case fern.KindChar:
		return fmt.Sprintf("character %q", tok.Char())
	case fern.KindBool:
		return fmt.Sprintf("boolean %t", tok.Bool())
	}
	return tok.Kind.String()
}

func kindStyle(kind fern.Kind) lipgloss.Style {
	switch kind {
	case fern.KindIndent, fern.KindDedent:
		return structuralStyle
	case fern.KindDefine, fern.KindLambda, fern.KindUse, fern.KindType:
		return keywordStyle
	case fern.KindChar, fern.KindString, fern.KindBool:
		return literalStyle
	case fern.KindIdent:
		return nameStyle
	}
	return markStyle
}
