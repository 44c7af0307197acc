package cmd

import (
	"fmt"
	"os"

	"github.com/ComedicChimera/olive"

	"nullc/report"
)

// Execute is the main entry point for the `nullc` CLI utility (spec.md's
// "ambient stack" — grounded on the teacher's own olive-based
// cmd.Execute).
func Execute() {
	cli := olive.NewCLI("nullc", "nullc is the NULLC semantic-analysis front end", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "analyze a module and build its IR", true)
	buildCmd.AddPrimaryArg("module-path", "the path to the module to build", true)
	buildCmd.AddFlag("dump-ir", "d", "print the built IR module to stdout")
	buildCmd.AddFlag("optimize", "O", "run the peephole optimizer before dumping IR")

	checkCmd := cli.AddSubcommand("check", "analyze a module without building IR", true)
	checkCmd.AddPrimaryArg("module-path", "the path to the module to check", true)

	cli.AddSubcommand("version", "print the nullc version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	logLevel := parseLogLevel(result.Arguments["loglevel"].(string))
	report.InitReporter(logLevel)

	subcmdName, subResult, _ := result.Subcommand()
	exitCode := 0
	switch subcmdName {
	case "build":
		exitCode = execBuild(subResult)
	case "check":
		exitCode = execCheck(subResult)
	case "version":
		fmt.Println(Version)
	}

	report.Finish()
	os.Exit(exitCode)
}

func execBuild(result *olive.ArgParseResult) int {
	modulePath, _ := result.PrimaryArg()
	_, dumpIR := result.Arguments["dump-ir"]
	_, optimize := result.Arguments["optimize"]

	c := NewCompiler(modulePath, nil, nil)
	irMod, ok := c.Build(optimize)
	if !ok {
		return 1
	}

	if dumpIR {
		fmt.Println(irMod.Repr())
	} else {
		fmt.Println(c.String())
	}
	return 0
}

func execCheck(result *olive.ArgParseResult) int {
	modulePath, _ := result.PrimaryArg()

	c := NewCompiler(modulePath, nil, nil)
	ok := c.Analyze()
	if !ok {
		return 1
	}

	fmt.Println(c.String(), "OK")
	return 0
}

func parseLogLevel(s string) int {
	switch s {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}
