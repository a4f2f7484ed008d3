package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"wspace/internal/logger"
	"wspace/internal/runner"
)

// Main entry point for the wspace interpreter.
func main() {
	options := runner.Runner{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.IntVar(&options.MaxSteps, "s", 0, "Maximum interpreter steps (0 = unlimited)")

	flag.Parse()
	args := flag.Args()

	logger.Init(options.Verbose, options.NoColor)
	if options.Help {
		fmt.Printf("Usage: %s [options] <file>\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if len(args) == 0 {
		log.Fatal("No input file provided", "help", fmt.Sprintf("%s -h", os.Args[0]))
	}

	options.SourceFile = args[0]

	if err := options.Run(); err != nil {
		os.Exit(1)
	}
}
