package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"aura-lang/internal/checker"
	"aura-lang/internal/config"
	"aura-lang/internal/errors"
	"aura-lang/internal/ir"
	"aura-lang/internal/lower"
	"aura-lang/internal/parser"
	"aura-lang/internal/verify"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	printIR := flag.Bool("ir", false, "print the lowered ModuleIR")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Println("Usage: aura-cli [-config file.yaml] [-ir] <file.aura>...")
		os.Exit(1)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			color.Red("failed to load config %s: %s", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	// Distinct files share no mutable state — each gets its own
	// checker.Env/ModuleIR, so checking them is embarrassingly parallel
	// (§5, the only concurrency in this repository).
	results := make([]bool, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			results[i] = compileFile(path, cfg, *printIR)
		}(i, path)
	}
	wg.Wait()

	for _, ok := range results {
		if !ok {
			os.Exit(1)
		}
	}
}

func compileFile(path string, cfg config.Config, printIR bool) bool {
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read file: %s", err)
		return false
	}

	prog, err := parser.ParseSource(path, string(source))
	if err != nil {
		reportParseError(string(source), err)
		return false
	}

	c, diags := checker.CheckProgram(prog)
	if diags.HasErrors() {
		reporter := errors.NewReporter(path, string(source))
		for _, d := range diags.Semantic {
			fmt.Print(reporter.FormatSemantic(d))
		}
		return false
	}

	mod := lower.LowerProgram(c.Env, prog)
	if err := mod.Validate(); err != nil {
		color.Red("internal error: lowered IR failed validation: %s", err)
		return false
	}

	if !dischargeObligations(path, string(source), mod, cfg) {
		return false
	}

	if printIR {
		fmt.Println(ir.Print(mod))
	}

	switch cfg.Output {
	case config.OutputJSON:
		fmt.Printf("{\"file\":%q,\"status\":\"ok\"}\n", path)
	default:
		color.Green("%s checked and verified", path)
	}
	return true
}

// dischargeObligations runs every RangeCheckU32 obligation the lowering
// pass emitted through cfg's prover and prints every Refuted/Unknown
// verdict. Only in eager mode does such a verdict fail the file (§4.6).
func dischargeObligations(path, source string, mod *ir.ModuleIR, cfg config.Config) bool {
	prover := proverFor(cfg.Solver)
	reporter := errors.NewReporter(path, source)
	ok := true
	for _, o := range verify.CollectObligations(mod) {
		verdict, counterexample := prover.Prove(o)
		if verdict == verify.Proved {
			continue
		}
		ve := &errors.VerifyError{Predicate: o.Description, Span: o.Span, Counterexample: counterexample}
		fmt.Print(reporter.FormatVerify(ve))
		if cfg.Verify == config.VerifyEager {
			ok = false
		}
	}
	return ok
}

// proverFor resolves cfg.Solver to a Prover. Only "dummy" (DummyProver)
// ships in this core (§1); an unrecognized name falls back to it rather
// than failing, since wiring a real SMT backend is out of scope here.
func proverFor(name string) verify.Prover {
	switch name {
	case "dummy", "":
		return verify.DummyProver{}
	default:
		return verify.DummyProver{}
	}
}

// reportParseError prints a friendly caret-style parse error message.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}
