package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/twiki/config"
	"github.com/npillmayer/twiki/lexer"
	"github.com/npillmayer/twiki/wiki"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object.
type Intp struct {
	tr     *wiki.Translator
	repl   *readline.Instance
	out    io.Writer
	tokens bool // print tokens instead of HTML
}

func runREPL() error {
	tr, err := wiki.NewTranslator()
	if err != nil {
		return err
	}
	repl, err := readline.New("twiki> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to twiki")
	tracer().Infof("Quit with <ctrl>D")
	intp := &Intp{tr: tr, repl: repl, out: os.Stdout}
	intp.REPL()
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	fmt.Fprintln(intp.out, "Good bye!")
}

// Eval handles a single input line, which is either a command starting with
// ':' or a line of twiki markup.
func (intp *Intp) Eval(line string) (quit bool) {
	if cmd := strings.Fields(line); len(cmd) > 0 && strings.HasPrefix(cmd[0], ":") {
		return intp.command(cmd)
	}
	if intp.tokens {
		toks, err := intp.tr.Tokenize(line + "\n")
		if err != nil {
			pterm.Error.Println(err.Error())
			return false
		}
		for _, tok := range toks {
			fmt.Fprintf(intp.out, "%-24s %q\n", lexer.TokTypeString(tok.Type), tok.HTML)
		}
		return false
	}
	html, err := intp.tr.Translate(line + "\n")
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	fmt.Fprint(intp.out, html)
	return false
}

func (intp *Intp) command(cmd []string) (quit bool) {
	switch cmd[0] {
	case ":q", ":quit":
		return true
	case ":tokens":
		intp.tokens = true
	case ":html":
		intp.tokens = false
	case ":trace":
		if len(cmd) < 2 {
			pterm.Error.Println("usage: :trace Error|Info|Debug")
			return false
		}
		for _, key := range config.TracerKeys {
			tracer().Debugf("setting trace level of %s to %s", key, cmd[1])
			tracing.Select(key).SetTraceLevel(traceLevel(cmd[1]))
		}
	default:
		pterm.Error.Println(fmt.Sprintf("unknown command %s", cmd[0]))
	}
	return false
}
