package eval

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"benda/bend"
	"benda/common"
	"benda/report"
)

// Command evaluates programs by running the external `bend` executable.
type Command struct {
	// Path is the path to the executable.
	Path string
}

// resultPrefix marks the line of the evaluator's output holding the result.
const resultPrefix = "Result: "

// Run writes the program to a temporary file and runs it with the selected
// runtime.
func (c *Command) Run(ctx context.Context, book *bend.Book, rt Runtime) (*Result, error) {
	file, err := os.CreateTemp("", "benda-*"+common.BendFileExt)
	if err != nil {
		return nil, fmt.Errorf("failed to create program file: %w", err)
	}
	defer os.Remove(file.Name())

	_, err = file.WriteString(book.String())
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write program file: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.Path, rt.Command(), file.Name())
	outBuff := bytes.Buffer{}
	cmd.Stdout = &outBuff
	cmd.Stderr = &outBuff

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// the evaluator ran but rejected the program
			return nil, &report.EvalError{
				Message:     fmt.Sprintf("evaluator exited with status %d", exitErr.ExitCode()),
				Diagnostics: outputLines(outBuff.String()),
			}
		}

		return nil, fmt.Errorf("failed to run evaluator `%s`: %w", c.Path, err)
	}

	return parseOutput(outBuff.String()), nil
}

// parseOutput extracts the result from the evaluator's output.  Every other
// non-empty line is a diagnostic.  It returns nil if there is no result.
func parseOutput(output string) *Result {
	var result *Result
	var diagnostics []string

	for _, line := range outputLines(output) {
		if strings.HasPrefix(line, resultPrefix) && result == nil {
			result = &Result{Term: parseTerm(strings.TrimSpace(line[len(resultPrefix):]))}
		} else {
			diagnostics = append(diagnostics, line)
		}
	}

	if result != nil {
		result.Output = output
		result.Diagnostics = diagnostics
	}

	return result
}

// parseTerm parses the textual form of a result term.  Only numbers are read
// back: any other term is kept as text.
func parseTerm(text string) bend.Expr {
	if text == "" {
		return &bend.Var{Name: text}
	}

	switch {
	case strings.ContainsAny(text, ".eE"):
		if f, err := strconv.ParseFloat(text, 32); err == nil {
			return bend.NewF24(float32(f))
		}
	case text[0] == '+' || text[0] == '-':
		if n, err := strconv.ParseInt(text, 10, 32); err == nil {
			return bend.NewI24(int32(n))
		}
	default:
		if n, err := strconv.ParseUint(text, 10, 32); err == nil {
			return bend.NewU24(uint32(n))
		}
	}

	return &bend.Var{Name: text}
}

func outputLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimRight(line, "\r"); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
