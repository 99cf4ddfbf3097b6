package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"lexdfa/automaton"
	"lexdfa/internal/calc"
	"lexdfa/internal/envconfig"
	"lexdfa/internal/logutil"
	"lexdfa/lexicon"
)

func loadLexer(cmd *cobra.Command) (*lexicon.Lexer, error) {
	name, err := cmd.Flags().GetString("lexicon")
	if err != nil {
		return nil, err
	}
	lx, err := lexicon.Builtin(name)
	if err != nil {
		return nil, err
	}
	return lx.Compile(automaton.WithMaxStates(envconfig.MaxStates))
}

func MatchHandler(cmd *cobra.Command, args []string) error {
	lx, err := loadLexer(cmd)
	if err != nil {
		return err
	}

	rejected := 0
	out := cmd.OutOrStdout()
	for _, text := range args {
		verdict := "accept"
		if !lx.Match(text) {
			verdict = "reject"
			rejected++
		}
		fmt.Fprintf(out, "%s\t%s\n", verdict, strconv.Quote(text))
	}
	if rejected > 0 {
		return fmt.Errorf("%d of %d inputs rejected by lexicon %s", rejected, len(args), lx.Name())
	}
	return nil
}

type tokenizeResult struct {
	name   string
	input  string
	tokens []automaton.Token
	err    error
}

func TokenizeHandler(cmd *cobra.Command, args []string) error {
	lx, err := loadLexer(cmd)
	if err != nil {
		return err
	}

	var results []*tokenizeResult
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		results = []*tokenizeResult{{name: "<stdin>", input: string(data)}}
		results[0].tokens, results[0].err = lx.TokenizeAll(results[0].input)
	} else {
		results = make([]*tokenizeResult, len(args))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, name := range args {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				data, err := os.ReadFile(name)
				if err != nil {
					return err
				}
				r := &tokenizeResult{name: name, input: string(data)}
				// every goroutine shares lx's DFA; only the tokenizers are per file
				r.tokens, r.err = lx.TokenizeAll(r.input)
				slog.Debug("tokenized", "file", name, "tokens", len(r.tokens), "error", r.err)
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	failed := 0
	for _, r := range results {
		if len(results) > 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", r.name)
		}
		writeTokens(cmd.OutOrStdout(), r.tokens)
		if r.err != nil {
			failed++
			fmt.Fprintln(cmd.ErrOrStderr(), diagnose(r.name, r.input, r.err))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed to tokenize", failed, len(results))
	}
	return nil
}

func writeTokens(w io.Writer, tokens []automaton.Token) {
	var data [][]string
	for _, tok := range tokens {
		data = append(data, []string{strconv.Itoa(tok.Offset), tok.Tag.String(), strconv.Quote(tok.Lexeme)})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"OFFSET", "TOKEN", "LEXEME"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

// diagnose formats a tokenizer failure, pointing at the offending byte when
// the error carries a position.
func diagnose(name, input string, err error) string {
	var nv *automaton.NoViableTokenError
	if !errors.As(err, &nv) {
		return fmt.Sprintf("%s: %v", name, err)
	}
	return fmt.Sprintf("%s:%v\n%s", name, nv, caret(input, nv.Offset))
}

func DotHandler(cmd *cobra.Command, args []string) error {
	if nfa, _ := cmd.Flags().GetBool("nfa"); nfa {
		name, err := cmd.Flags().GetString("lexicon")
		if err != nil {
			return err
		}
		lx, err := lexicon.Builtin(name)
		if err != nil {
			return err
		}
		n, err := lx.NFA()
		if err != nil {
			return err
		}
		return automaton.WriteDOT(cmd.OutOrStdout(), n)
	}

	lx, err := loadLexer(cmd)
	if err != nil {
		return err
	}
	return automaton.WriteDOT(cmd.OutOrStdout(), lx.DFA())
}

func CalcHandler(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	env, err := calc.Run(string(src), cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if vars, _ := cmd.Flags().GetBool("vars"); vars {
		fmt.Fprintln(cmd.ErrOrStderr(), env)
	}
	return nil
}

func EnvHandler(cmd *cobra.Command, args []string) error {
	vars := envconfig.AsMap()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var data [][]string
	for _, k := range keys {
		v := vars[k]
		data = append(data, []string{v.Name, fmt.Sprint(v.Value), v.Description})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"NAME", "VALUE", "DESCRIPTION"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
	return nil
}

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lexdfa",
		Short: "Build DFAs from token rules and tokenize input",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Disable usage printing on errors
			cmd.SilenceUsage = true

			slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), envconfig.LogLevel))
		},
	}

	rootCmd.PersistentFlags().StringP("lexicon", "l", envconfig.Lexicon,
		fmt.Sprintf("Built-in lexicon to use %v", lexicon.BuiltinNames()))

	cobra.EnableCommandSorting = false

	matchCmd := &cobra.Command{
		Use:   "match TEXT...",
		Short: "Report whether each text is a single token of the lexicon",
		Args:  cobra.MinimumNArgs(1),
		RunE:  MatchHandler,
	}

	tokenizeCmd := &cobra.Command{
		Use:   "tokenize [FILE...]",
		Short: "Split files (or stdin) into tokens",
		RunE:  TokenizeHandler,
	}

	dotCmd := &cobra.Command{
		Use:   "dot",
		Short: "Write the lexicon DFA in Graphviz DOT format",
		Args:  cobra.NoArgs,
		RunE:  DotHandler,
	}
	dotCmd.Flags().Bool("nfa", false, "Write the Thompson NFA instead of the DFA")

	calcCmd := &cobra.Command{
		Use:   "calc FILE",
		Short: "Run a calc program",
		Args:  cobra.ExactArgs(1),
		RunE:  CalcHandler,
	}
	calcCmd.Flags().Bool("vars", false, "Print the final variables to stderr")

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show the environment variables lexdfa reads",
		Args:  cobra.NoArgs,
		RunE:  EnvHandler,
	}

	rootCmd.AddCommand(
		matchCmd,
		tokenizeCmd,
		dotCmd,
		calcCmd,
		envCmd,
	)

	return rootCmd
}
