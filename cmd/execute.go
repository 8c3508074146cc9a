package cmd

import (
	"context"
	"fmt"
	"os"

	"benda/ast"
	"benda/bend"
	"benda/build"
	"benda/common"
	"benda/config"
	"benda/eval"
	"benda/marshal"
	"benda/report"

	"github.com/ComedicChimera/olive"
	"github.com/kr/pretty"
)

// Execute runs the main `benda` application.  It exits with a non-zero status
// if the requested command fails.
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("benda", "benda compiles Python functions into Bend programs", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, report.LogLevelNames)

	compileCmd := cli.AddSubcommand("compile", "compile a function to Bend source", true)
	addCompileArgs(compileCmd)
	compileCmd.AddStringArg("out", "o", "the file to write the Bend source to", false)

	runCmd := cli.AddSubcommand("run", "compile and evaluate a function", true)
	addCompileArgs(runCmd)
	runCmd.AddSelectorArg("runtime", "r", "the Bend runtime to evaluate with", false, []string{"rust", "c", "cuda"})
	runCmd.AddSelectorArg("backend", "b", "the evaluator backend", false, []string{config.BackendLocal, config.BackendBend})

	cli.AddSubcommand("version", "print the benda version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(1)
	}

	ok := true
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "compile", "run":
		cfg, err := loadConfig(result)
		if err != nil {
			report.PrintErrorMessage("Config Error", err)
			os.Exit(1)
		}

		if subcmdName == "compile" {
			ok = execCompileCommand(subResult, cfg)
		} else {
			ok = execRunCommand(subResult, cfg)
		}
	case "version":
		report.PrintInfoMessage("benda Version", common.BendaVersion)
	}

	if !ok {
		os.Exit(1)
	}
}

// addCompileArgs adds the arguments shared by the commands which compile.
func addCompileArgs(cmd *olive.Command) {
	cmd.AddPrimaryArg("ast-path", "the path to the JSON AST of the source module", true)
	cmd.AddStringArg("function", "f", "the name of the function to compile", true)
	cmd.AddStringArg("args", "a", "comma-separated arguments to apply the function to", false)
	cmd.AddFlag("dump", "d", "dump the compiled types and definitions")
}

// loadConfig loads the configuration from the working directory and applies
// the global command line options to it.  It also initializes the reporter.
func loadConfig(result *olive.ArgParseResult) (*config.Config, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		return nil, err
	}

	if name, ok := result.Arguments["loglevel"]; ok {
		// the selector only accepts valid names
		cfg.LogLevel, _ = report.LogLevelFromName(name.(string))
	}

	report.InitReporter(cfg.LogLevel)
	return cfg, nil
}

// execCompileCommand executes the `compile` subcommand and handles all errors.
func execCompileCommand(result *olive.ArgParseResult, cfg *config.Config) bool {
	book, ok := compileFunction(result, build.NewCompiler(cfg))
	if !ok {
		return false
	}

	src := book.String()
	if out, ok := result.Arguments["out"]; ok {
		if err := os.WriteFile(out.(string), []byte(src), 0644); err != nil {
			report.PrintErrorMessage("Output Error", err)
			return false
		}

		report.PrintInfoMessage("Written", out.(string))
		return true
	}

	fmt.Print(src)
	return true
}

// execRunCommand executes the `run` subcommand and handles all errors.
func execRunCommand(result *olive.ArgParseResult, cfg *config.Config) bool {
	if name, ok := result.Arguments["runtime"]; ok {
		// the selector only accepts valid names
		cfg.Runtime, _ = eval.ParseRuntime(name.(string))
	}

	if backend, ok := result.Arguments["backend"]; ok {
		cfg.Backend = backend.(string)
	}

	c := build.NewCompiler(cfg)
	book, ok := compileFunction(result, c)
	if !ok {
		return false
	}

	res, err := c.Run(context.Background(), book)
	if err != nil {
		report.ReportError("", err)
		return false
	}

	for _, diag := range res.Diagnostics {
		report.ReportWarning("Evaluator", diag)
	}

	report.PrintInfoMessage("Result", res.Term.String())
	report.PrintInfoMessage("Value", fmt.Sprintf("%# v", pretty.Formatter(marshal.FromTerm(book, res.Term))))
	return true
}

// compileFunction loads the module named by the primary argument and compiles
// the selected function of it.  Compilation errors are reported.
func compileFunction(result *olive.ArgParseResult, c *build.Compiler) (*bend.Book, bool) {
	astPath, _ := result.PrimaryArg()
	fun := result.Arguments["function"].(string)

	f, err := os.Open(astPath)
	if err != nil {
		report.PrintErrorMessage("Path Error", err)
		return nil, false
	}
	defer f.Close()

	mod, err := ast.Decode(f)
	if err != nil {
		report.PrintErrorMessage("AST Error", err)
		return nil, false
	}

	var book *bend.Book
	if argText, ok := result.Arguments["args"]; ok {
		var args []marshal.Value
		args, err = ParseArgs(argText.(string))
		if err != nil {
			report.PrintErrorMessage("CLI Usage Error", err)
			return nil, false
		}

		book, err = c.Compile(mod, fun, args)
	} else {
		book, err = c.CompileScript(mod, fun)
	}

	if err != nil {
		report.ReportError(mod.Path, err)
		return nil, false
	}

	if result.HasFlag("dump") {
		fmt.Println(build.Dump(book))
	}

	return book, true
}
