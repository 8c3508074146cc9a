package report

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console.
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console.
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Internal Compiler Error")
	ErrorColorFG.Println(" " + message)
	InfoColorFG.Println("This error was not supposed to happen: please open an issue.")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + message)
}

// displayCompileError displays a compile error along with the banner above it
// and, if the source file can be read, the erroneous source text.
func displayCompileError(srcPath string, cerr *CompileError) {
	displayBanner(cerr.Kind.String()+" Error", srcPath)

	if cerr.Span != nil {
		fmt.Printf("%s: ", cerr.Span)
	}
	fmt.Println(cerr.Message)

	if cerr.Span != nil && srcPath != "" {
		displaySourceText(srcPath, cerr.Span)
	}
}

// displayBanner displays the banner on top of all compilation messages.
func displayBanner(label, srcPath string) {
	fmt.Print("\n-- ")
	ErrorStyleBG.Print(label)
	fmt.Print(" ")

	fileName := "<module>"
	if srcPath != "" {
		fileName = filepath.Base(srcPath)
	}

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - len(label) - 1
	if dashCount < 3 {
		dashCount = 3
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// displaySourceText displays a segment of source text defined by a text span.
// Unreadable sources are silently skipped: the message has already been shown.
func displaySourceText(srcPath string, span *TextSpan) {
	file, err := os.Open(srcPath)
	if err != nil {
		return
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if sc.Err() != nil || len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := -1
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if minIndent == -1 || lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	fmt.Println()
	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumFmtStr, i+span.StartLine+1))
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		start := 0
		if i == 0 {
			start = span.StartCol - minIndent
		}

		end := len(line) - minIndent
		if i == len(lines)-1 && span.EndCol-minIndent < end {
			end = span.EndCol - minIndent
		}

		if start < 0 {
			start = 0
		}
		if end < start+1 {
			end = start + 1
		}

		fmt.Print(strings.Repeat(" ", start))
		ErrorColorFG.Println(strings.Repeat("^", end-start))
	}

	fmt.Println()
}

// -----------------------------------------------------------------------------

// currentPhase is the name of the phase currently being displayed.
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Synthesizing")

// displayBeginPhase displays the beginning of a compilation phase.
func displayBeginPhase(phase string) {
	currentPhase = phase
	phaseStartTime = time.Now()

	InfoColorFG.Print(phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2))
}

// displayEndPhase displays the end of a compilation phase.
func displayEndPhase(success bool) {
	if currentPhase == "" {
		return
	}

	elapsed := fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds())
	if success {
		SuccessStyleBG.Print("Done")
	} else {
		ErrorStyleBG.Print("Fail")
	}
	fmt.Println(" " + elapsed)

	currentPhase = ""
}
