package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ComedicChimera/olive"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/twiki/config"
	"github.com/pterm/pterm"
)

// Version is the version of the twiki command.
const Version = "0.3.0"

func main() {
	initDisplay()
	cli := olive.NewCLI("twiki", "twiki translates twiki markup to HTML", true)
	cli.AddSelectorArg("tracelevel", "tl", "the root trace level", false, []string{"Error", "Info", "Debug"})
	cli.AddStringArg("config", "c", "a TOML configuration file", false)

	translateCmd := cli.AddSubcommand("translate", "translate a twiki document to HTML", true)
	translateCmd.AddPrimaryArg("file", "the twiki document, default is stdin", false)
	translateCmd.AddStringArg("output", "o", "the HTML output file, default is stdout", false)

	tokensCmd := cli.AddSubcommand("tokens", "print the tokens of a twiki document", true)
	tokensCmd.AddPrimaryArg("file", "the twiki document, default is stdin", false)

	grammarCmd := cli.AddSubcommand("grammar", "print the twiki grammar and its LL(1) analysis", true)
	grammarCmd.AddFlag("html", "H", "write the parse table as an HTML document")
	grammarCmd.AddStringArg("output", "o", "the output file for --html, default is stdout", false)

	cli.AddSubcommand("repl", "translate twiki lines interactively", true)
	cli.AddSubcommand("version", "print the twiki version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	settings, err := loadSettings(result)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	subcmdName, subResult, _ := result.Subcommand()
	settings.Interactive = subcmdName == "repl"
	config.Install(settings)
	tracer().Infof("Trace level is %s", settings.LevelFor("twiki.cli"))
	//
	switch subcmdName {
	case "translate":
		err = withOutput(subResult, func(w io.Writer) error {
			return translate(inputArg(subResult), w)
		})
	case "tokens":
		err = tokens(inputArg(subResult), os.Stdout)
	case "grammar":
		if subResult.HasFlag("html") {
			err = withOutput(subResult, grammarTable)
		} else {
			err = grammar(os.Stdout)
		}
	case "repl":
		err = runREPL()
	case "version":
		pterm.Info.Println("twiki version " + Version)
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// loadSettings reads the configuration file, if any, and applies the
// trace level argument.
func loadSettings(result *olive.ArgParseResult) (*config.Settings, error) {
	settings := config.Default()
	if path, ok := result.Arguments["config"]; ok {
		s, err := config.Load(path.(string))
		if err != nil {
			return nil, err
		}
		settings = s
	}
	if level, ok := result.Arguments["tracelevel"]; ok {
		settings.TraceLevel["root"] = level.(string)
		for _, key := range config.TracerKeys {
			delete(settings.TraceLevel, key)
		}
	}
	return settings, nil
}

func inputArg(result *olive.ArgParseResult) string {
	path, _ := result.PrimaryArg()
	return path
}

// withOutput calls f with the file named by argument "output", or with
// stdout if there is none.
func withOutput(result *olive.ArgParseResult, f func(io.Writer) error) error {
	path, ok := result.Arguments["output"]
	if !ok {
		return f(os.Stdout)
	}
	out, err := os.Create(path.(string))
	if err != nil {
		return err
	}
	if err = f(out); err != nil {
		out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("Output written to %s", path))
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
