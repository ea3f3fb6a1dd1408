package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/combine/combinator"
)

var calcLog = commonlog.GetLogger("combine.calc")

func newCalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calc [expression]",
		Short: "Evaluate an arithmetic expression, or start a REPL",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runCalcREPL()
			}
			expr := strings.Join(args, " ")
			n, err := evalCalc("calc", expr)
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
}

// calcGrammar builds the arithmetic grammar once:
//
//	expr   = term (('+'|'-') term)*
//	term   = factor (('*'|'/') factor)*
//	factor = int | '(' expr ')'
//
// The folds evaluate directly, so parsing "1+2*3" yields 7.
func calcGrammar() *combinator.Parser {
	expr := combinator.New("expr")
	term := combinator.New("term")
	factor := combinator.New("factor")

	factor.Define(combinator.Or(
		lexeme(combinator.Int()),
		combinator.Seq(combinator.Pick(1),
			lexeme(combinator.Char('(')),
			expr,
			lexeme(combinator.Char(')')))))

	term.Define(combinator.Seq(chainFold,
		factor,
		combinator.Many(combinator.Collect,
			combinator.Seq(combinator.Collect, lexeme(combinator.OneOf("*/")), factor))))

	expr.Define(combinator.Seq(chainFold,
		term,
		combinator.Many(combinator.Collect,
			combinator.Seq(combinator.Collect, lexeme(combinator.OneOf("+-")), term))))

	return combinator.Seq(combinator.Pick(1),
		combinator.Whitespaces(),
		expr,
		combinator.End())
}

// lexeme consumes trailing whitespace after p.
func lexeme(p *combinator.Parser) *combinator.Parser {
	return combinator.Seq(combinator.First, p, combinator.Whitespaces())
}

// chainFold evaluates a left-associative operator chain: the first
// value is the initial operand, the second a list of [operator,
// operand] pairs.
func chainFold(vals []combinator.Value) (combinator.Value, error) {
	acc, err := vals[0].Int()
	if err != nil {
		return combinator.Value{}, err
	}
	rest, err := vals[1].List()
	if err != nil {
		return combinator.Value{}, err
	}
	for _, pairVal := range rest {
		pair, err := pairVal.List()
		if err != nil {
			return combinator.Value{}, err
		}
		op, err := pair[0].Text()
		if err != nil {
			return combinator.Value{}, err
		}
		n, err := pair[1].Int()
		if err != nil {
			return combinator.Value{}, err
		}
		switch op {
		case "+":
			acc += n
		case "-":
			acc -= n
		case "*":
			acc *= n
		case "/":
			if n == 0 {
				return combinator.Value{}, errors.New("division by zero")
			}
			acc /= n
		}
	}
	return combinator.IntValue(acc), nil
}

func evalCalc(source, expr string) (int64, error) {
	calcLog.Debugf("parsing %q", expr)
	v, err := combinator.Parse(source, expr, calcGrammar())
	if err != nil {
		return 0, err
	}
	return v.Int()
}

func runCalcREPL() error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := calcHistoryPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Println("combine calc - enter an expression, or :quit")
	for {
		line, err := ln.Prompt("calc> ")
		if err != nil {
			// Ctrl-C or Ctrl-D ends the session.
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":quit" || line == ":q" {
			return nil
		}
		ln.AppendHistory(line)

		n, err := evalCalc("repl", line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(n)
	}
}

func calcHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".combine_history"
	}
	return filepath.Join(home, ".combine_history")
}
