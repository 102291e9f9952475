package analyzer

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/gzhole/veritas/internal/catalog"
)

// commandCategories are the categories whose matches read as shell text and
// so carry an executable name in their evidence.
var commandCategories = map[catalog.Category]bool{
	catalog.Shell:   true,
	catalog.System:  true,
	catalog.FileOp:  true,
	catalog.Network: true,
}

func isCommandCategory(c catalog.Category) bool {
	return commandCategories[c]
}

// Executable parses a matched fragment as a shell command and returns the
// program it would run. sudo and its flags are transparent, so "sudo rm"
// yields "rm". Fragments the shell parser rejects fall back to their first
// whitespace-separated field. The result is informational only and never
// influences scoring.
func Executable(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}

	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(fragment), "")
	if err != nil {
		return fallbackExecutable(fragment)
	}

	for _, stmt := range file.Stmts {
		if exe := stmtExecutable(stmt); exe != "" {
			return exe
		}
	}
	return fallbackExecutable(fragment)
}

func stmtExecutable(stmt *syntax.Stmt) string {
	if stmt == nil || stmt.Cmd == nil {
		return ""
	}

	switch cmd := stmt.Cmd.(type) {
	case *syntax.CallExpr:
		words := make([]string, 0, len(cmd.Args))
		for _, word := range cmd.Args {
			words = append(words, wordToString(word))
		}
		return unwrapSudo(words)

	case *syntax.BinaryCmd:
		// The left side of a pipeline or list runs first.
		if exe := stmtExecutable(cmd.X); exe != "" {
			return exe
		}
		return stmtExecutable(cmd.Y)

	case *syntax.Subshell:
		for _, s := range cmd.Stmts {
			if exe := stmtExecutable(s); exe != "" {
				return exe
			}
		}
	}
	return ""
}

// unwrapSudo returns the first word, skipping a leading sudo and its flags.
func unwrapSudo(words []string) string {
	if len(words) == 0 {
		return ""
	}
	if !strings.EqualFold(words[0], "sudo") {
		return words[0]
	}
	rest := words[1:]
	for len(rest) > 0 && strings.HasPrefix(rest[0], "-") {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return words[0]
	}
	return rest[0]
}

func fallbackExecutable(fragment string) string {
	return unwrapSudo(strings.Fields(fragment))
}

// wordToString converts a syntax.Word AST node to its string representation.
func wordToString(word *syntax.Word) string {
	var sb strings.Builder
	printer := syntax.NewPrinter()
	printer.Print(&sb, word)
	return sb.String()
}
