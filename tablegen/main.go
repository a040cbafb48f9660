package main

import (
	"github.com/alecthomas/kong"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/synadia-labs/dangerous.go/tablegen/core"
)

// CLI defines the tablegen command-line interface.
//
// tablegen regenerates the byte-class membership tables the runtime
// uses to accelerate TakeWhileIn. The class definitions live in
// core.Defaults; the output is a checked-in generated Go file.
type CLI struct {
	Output  string `short:"o" help:"Output file" default:"runtime/byteclass_tables.go"`
	Package string `help:"Package name for the generated file" default:"dangerous"`
	Verbose bool   `short:"v" help:"Enable verbose diagnostics"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("tablegen"),
		kong.Description("Generate byte-class membership tables for the dangerous runtime."),
	)

	verbosity := 0
	if cli.Verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	err := core.Run(cli.Output, core.Defaults(), core.Options{Package: cli.Package})
	ctx.FatalIfErrorf(err)
}
