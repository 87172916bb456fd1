package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/truetype"
	"github.com/npillmayer/truetype/ot"
	"github.com/pterm/pterm"
)

// tracer traces with key 'font.truetype'
func tracer() tracing.Trace {
	return tracing.Select("font.truetype")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.font.truetype": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the glyph outline inspector")
	//
	// set up REPL
	repl, err := readline.New("glyf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to inspect
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font *ot.Font
	name string
	repl *readline.Instance
}

func (intp *Intp) loadFont(fontname string) error {
	if fontname == "" {
		return errors.New("no font given; use flag -font")
	}
	f, err := truetype.LoadTrueTypeFont(fontname)
	if err != nil {
		return err
	}
	otf, err := ot.Parse(f.Binary)
	if err != nil {
		return err
	}
	intp.font = otf
	intp.name = f.Fontname
	if intp.name == "" {
		intp.name = fontname
	}
	tracer().Infof("loaded font %s with %d glyphs", intp.name, otf.NumGlyphs())
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		err, quit := intp.execute(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

var commandFn = map[string]func(*Intp, string) (error, bool){
	"help":     helpOp,
	"quit":     quitOp,
	"tables":   tablesOp,
	"info":     infoOp,
	"glyph":    glyphOp,
	"contours": contoursOp,
	"errors":   errorsOp,
}

// execute runs a single REPL command of the form "op" or "op <arg>".
func (intp *Intp) execute(line string) (error, bool) {
	fields := strings.Fields(line)
	op, arg := fields[0], ""
	if len(fields) > 1 {
		arg = fields[1]
	}
	f, ok := commandFn[strings.ToLower(op)]
	if !ok {
		pterm.Error.Printf("unknown command: %s\n", op)
		return nil, false
	}
	return f(intp, arg)
}

func quitOp(intp *Intp, arg string) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

func helpOp(intp *Intp, arg string) (error, bool) {
	pterm.Info.Println("Commands")
	pterm.Println(`
	tables        list the tables of the font's table directory
	info          show font-wide information (glyph count, units per em, …)
	glyph N       show the decoded outline of glyph N
	contours N    list the contours of glyph N point by point
	errors        show errors and warnings accumulated during decoding
	quit          leave the inspector (also <ctrl>D)
	`)
	return nil, false
}

// glyphArg parses a glyph index argument and checks it against the font.
func (intp *Intp) glyphArg(arg string) (ot.GlyphIndex, error) {
	if arg == "" {
		return 0, errors.New("missing glyph index argument")
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("not a glyph index: %q", arg)
	}
	if n >= intp.font.NumGlyphs() {
		return 0, fmt.Errorf("glyph index %d out of range, font has %d glyphs", n, intp.font.NumGlyphs())
	}
	return ot.GlyphIndex(n), nil
}
