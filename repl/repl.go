// Package repl is an interactive "check one declaration" loop, grounded
// on the teacher's bufio-scanner shape but upgraded to a readline-style
// prompt (history, arrow-key editing) the way github.com/sunholo/ailang's
// REPL drives github.com/peterh/liner.
package repl

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"aura-lang/internal/checker"
	"aura-lang/internal/errors"
	"aura-lang/internal/parser"
)

const prompt = "aura> "

func Start(in io.Reader, out io.Writer) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Fprintln(out, "Aura REPL — one cell declaration per line, Ctrl-D to exit")

	for {
		input, err := line.Prompt(prompt)
		if err == io.EOF || err == liner.ErrPromptAborted {
			fmt.Fprintln(out, "goodbye")
			return
		}
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		prog, err := parser.ParseSource("repl", input)
		if err != nil {
			color.Red("syntax error: %s", err)
			continue
		}

		_, diags := checker.CheckProgram(prog)
		if diags.HasErrors() {
			reporter := errors.NewReporter("repl", input)
			for _, d := range diags.Semantic {
				fmt.Fprint(out, reporter.FormatSemantic(d))
			}
			continue
		}

		for _, d := range prog.Decls {
			if d.Cell != nil {
				color.Green("cell %s checked ok", d.Cell.Name)
			}
		}
	}
}
