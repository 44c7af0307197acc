package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

// Color styles for the different message severities, ported from the
// teacher's src/logging/display.go banner/caret convention.
var (
	errorFG = pterm.FgRed
	errorBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	warnFG  = pterm.FgYellow
	warnBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	infoFG  = pterm.FgLightCyan
)

func init() {
	if !rep.colorOn {
		pterm.DisableColor()
	}
}

// displayCompileMessage prints an error or warning banner followed by the
// offending source excerpt with caret underlining. kind of -1 means the
// label alone (used for warnings, which are not tagged with an ErrorKind in
// the closed set).
func displayCompileMessage(label string, ctx *CompilationContext, kind ErrorKind, pos *TextPosition, msg string) {
	fmt.Println()

	bannerText := label
	if kind >= 0 {
		bannerText = fmt.Sprintf("%s (%s)", label, kind.String())
	}

	if label == "error" {
		errorBG.Print(" " + bannerText + " ")
	} else {
		warnBG.Print(" " + bannerText + " ")
	}

	if ctx != nil {
		fmt.Print(" ")
		infoFG.Print(ctx.ReprPath)
	}

	fmt.Println()
	fmt.Println(msg)

	if pos != nil && ctx != nil {
		displaySourceExcerpt(ctx.AbsPath, pos)
	}

	fmt.Println()
}

// displaySourceExcerpt reads back the lines spanned by pos and underlines
// the erroneous range with carets, trimming shared leading indentation the
// way the teacher's displaySourceText/displayCodeSelection do.
func displaySourceExcerpt(absPath string, pos *TextPosition) {
	f, err := os.Open(absPath)
	if err != nil {
		return
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for ln := 0; sc.Scan(); ln++ {
		if pos.StartLine <= ln && ln <= pos.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if len(lines) == 0 {
		return
	}

	minIndent := len(lines[0])
	for _, line := range lines {
		indent := 0
		for _, c := range line {
			if c != ' ' {
				break
			}
			indent++
		}
		if indent < minIndent {
			minIndent = indent
		}
	}

	numWidth := len(strconv.Itoa(pos.EndLine + 1))
	numFmt := "%-" + strconv.Itoa(numWidth) + "v | "

	for i, line := range lines {
		infoFG.Print(fmt.Sprintf(numFmt, i+pos.StartLine+1))
		trimmed := line
		if minIndent < len(line) {
			trimmed = line[minIndent:]
		}
		fmt.Println(trimmed)

		fmt.Print(strings.Repeat(" ", numWidth), " | ")

		prefix := 0
		if i == 0 {
			prefix = pos.StartCol - minIndent
			if prefix < 0 {
				prefix = 0
			}
		}

		suffix := 0
		if i == len(lines)-1 {
			suffix = len(line) - pos.EndCol
			if suffix < 0 {
				suffix = 0
			}
		}

		caretLen := len(line) - suffix - prefix - minIndent
		if caretLen < 1 {
			caretLen = 1
		}

		fmt.Print(strings.Repeat(" ", prefix))
		errorFG.Println(strings.Repeat("^", caretLen))
	}
}

func displayModuleMessage(label, modPath, msg string, args ...interface{}) {
	fmt.Println()
	if label == "error" {
		errorBG.Print(" module error ")
	} else {
		warnBG.Print(" module warning ")
	}
	fmt.Print(" ")
	infoFG.Print(modPath)
	fmt.Println()
	fmt.Println(fmt.Sprintf(msg, args...))
}

func displayFatal(msg string, args ...interface{}) {
	fmt.Println()
	errorBG.Print(" fatal error ")
	fmt.Print(" ")
	errorFG.Println(fmt.Sprintf(msg, args...))
}

func displayICE(msg string, args ...interface{}) {
	fmt.Println()
	errorBG.Print(" internal compiler error ")
	fmt.Print(" ")
	errorFG.Println(fmt.Sprintf(msg, args...))
	infoFG.Println("this should never happen; please file an issue")
}

var (
	phaseSpinner   *pterm.SpinnerPrinter
	currentPhase   string
	phaseStartTime time.Time
)

func displayBeginPhase(name string) {
	currentPhase = name
	phaseStartTime = time.Now()

	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(infoFG))
	phaseSpinner.Start(name + "...")
}

func displayEndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}

	elapsed := time.Since(phaseStartTime).Seconds()
	if success {
		phaseSpinner.Success(fmt.Sprintf("%s (%.3fs)", currentPhase, elapsed))
	} else {
		phaseSpinner.Fail(currentPhase)
	}

	phaseSpinner = nil
}

func displayFinished(errorCount, warnCount int) {
	fmt.Println()

	if errorCount == 0 {
		pterm.FgLightGreen.Print("done ")
	} else {
		errorFG.Print("failed ")
	}

	fmt.Print("(")

	if errorCount == 0 {
		pterm.FgLightGreen.Print(0)
	} else {
		errorFG.Print(errorCount)
	}
	if errorCount == 1 {
		fmt.Print(" error, ")
	} else {
		fmt.Print(" errors, ")
	}

	if warnCount == 0 {
		pterm.FgLightGreen.Print(0)
	} else {
		warnFG.Print(warnCount)
	}
	if warnCount == 1 {
		fmt.Println(" warning)")
	} else {
		fmt.Println(" warnings)")
	}
}
