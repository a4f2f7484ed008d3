package runner

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"wspace/pkg/interpreter"
	"wspace/pkg/lexer"
	"wspace/pkg/parser"
)

// Runner drives one compile-and-execute cycle of a source file against
// the process streams: stdin/stdout belong to the program being run,
// diagnostics go to stderr.
type Runner struct {
	Help       bool   // Show help message
	Verbose    bool   // Enable verbose output (disassembly + debug logging)
	NoColor    bool   // Disable colored output
	MaxSteps   int    // Step limit for runaway programs (0 = unlimited)
	SourceFile string // Path to the source file
}

var (
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	lineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headStyle  = lipgloss.NewStyle().Bold(true)
)

// Run reads the source file, compiles it and executes the resulting
// program. Compile errors and runtime tracebacks are rendered to
// stderr and returned.
func (r *Runner) Run() error {
	if r.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	log.Info("Processing file", "file", r.SourceFile)

	source, err := os.ReadFile(r.SourceFile)
	if err != nil {
		log.Fatal("Failed to read file", "file", r.SourceFile, "error", err)
	}

	l := lexer.NewLexer(source)
	p := parser.NewParser(l)

	prog, err := p.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("=== Compile Error ==="))
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	log.Info("Compiled", "instructions", prog.Len())

	if r.Verbose {
		fmt.Fprintln(os.Stderr, headStyle.Render("=== Disassembly ==="))
		fmt.Fprint(os.Stderr, prog.String())
	}

	opts := []interpreter.Option{
		interpreter.WithInput(os.Stdin),
		interpreter.WithOutput(os.Stdout),
	}
	if r.MaxSteps > 0 {
		opts = append(opts, interpreter.WithMaxSteps(r.MaxSteps))
	}

	it := interpreter.New(prog, opts...)
	if err := it.Run(); err != nil {
		var tb *interpreter.Traceback
		if errors.As(err, &tb) {
			r.reportTraceback(tb)
		} else {
			fmt.Fprintln(os.Stderr, errStyle.Render("Error:"), err)
		}
		return err
	}

	return nil
}

// reportTraceback renders a runtime fault with its captured call
// stack, most recent call first
func (r *Runner) reportTraceback(tb *interpreter.Traceback) {
	fmt.Fprintln(os.Stderr, errStyle.Render("Stack traceback:"))

	for _, frame := range tb.Frames {
		fmt.Fprintf(os.Stderr, "  %s in subroutine %s\n",
			lineStyle.Render(fmt.Sprintf("[line %d]", frame.Line)),
			labelStyle.Render(frame.Label.String()))
	}
	fmt.Fprintf(os.Stderr, "  %s in main\n",
		lineStyle.Render(fmt.Sprintf("[line %d]", tb.Line)))

	fmt.Fprintf(os.Stderr, "%s %s\n", errStyle.Render("Error:"), tb.Kind)
}
