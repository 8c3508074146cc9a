package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"benda/marshal"
)

// ParseArgs parses a comma-separated list of argument literals.  A literal
// with a decimal point or exponent is an f24, a signed literal is an i24, and
// any other literal is a u24.
func ParseArgs(text string) ([]marshal.Value, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	parts := strings.Split(text, ",")
	args := make([]marshal.Value, len(parts))
	for i, part := range parts {
		arg, err := parseArg(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}

		args[i] = arg
	}

	return args, nil
}

func parseArg(lit string) (marshal.Value, error) {
	switch {
	case strings.ContainsAny(lit, ".eE"):
		f, err := strconv.ParseFloat(lit, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid float argument `%s`", lit)
		}
		return marshal.F24(f), nil
	case strings.HasPrefix(lit, "+"), strings.HasPrefix(lit, "-"):
		n, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid signed argument `%s`", lit)
		}
		return marshal.I24(n), nil
	}

	n, err := strconv.ParseUint(lit, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid argument `%s`", lit)
	}
	return marshal.U24(n), nil
}
