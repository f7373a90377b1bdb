package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kod-kristoff/lci/pkg/ast"
	"github.com/kod-kristoff/lci/pkg/lexer"
	"github.com/kod-kristoff/lci/pkg/parser"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Debug flags for dumping the frontend stages
var (
	dTokens bool
	dParse  bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lci [file]",
		Short: "lci is a LOLCODE frontend",
		Long: `lci tokenizes and parses LOLCODE source files. By default it
checks the syntax of a program and reports the first diagnostic.
The debug flags dump the token stream or the parsed AST.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			if dTokens {
				return doTokens(filename, out, errOut)
			}
			if dParse {
				return doParse(filename, out, errOut)
			}
			if _, err := parseFile(filename, errOut); err != nil {
				return err
			}
			fmt.Fprintf(out, "lci: %s: syntax ok\n", filename)
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVar(&dTokens, "dtokens", false, "Dump the token stream")
	rootCmd.Flags().BoolVar(&dParse, "dparse", false, "Dump the AST as canonical source")

	return rootCmd
}

// tokenizeFile reads and tokenizes a LOLCODE file
func tokenizeFile(filename string, errOut io.Writer) ([]lexer.Token, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "lci: error reading %s: %v\n", filename, err)
		return nil, err
	}
	tokens, err := lexer.New(string(content), filename).Tokenize()
	if err != nil {
		fmt.Fprintf(errOut, "lci: %v\n", err)
		return nil, err
	}
	return tokens, nil
}

// parseFile tokenizes and parses a LOLCODE file, returning the AST
func parseFile(filename string, errOut io.Writer) (*ast.Main, error) {
	tokens, err := tokenizeFile(filename, errOut)
	if err != nil {
		return nil, err
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		fmt.Fprintf(errOut, "lci: %v\n", err)
		return nil, err
	}
	return program, nil
}

// doTokens dumps the token stream, one token per line (--dtokens)
func doTokens(filename string, out, errOut io.Writer) error {
	tokens, err := tokenizeFile(filename, errOut)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		if tok.Literal != "" && tok.Literal != tok.Type.String() {
			fmt.Fprintf(out, "%d\t%s\t%s\n", tok.Line, tok.Type, tok.Literal)
		} else {
			fmt.Fprintf(out, "%d\t%s\n", tok.Line, tok.Type)
		}
	}
	return nil
}

// doParse parses the file and prints the AST back as canonical
// LOLCODE source (--dparse)
func doParse(filename string, out, errOut io.Writer) error {
	program, err := parseFile(filename, errOut)
	if err != nil {
		return err
	}
	ast.NewPrinter(out).PrintMain(program)
	return nil
}
