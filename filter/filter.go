// Package filter runs a text conversion from a file or the standard input
// to a file or the standard output, optionally adding a warning about
// the output being generated.
package filter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/hesusruiz/aml/sliceedit"
)

// StdStream is the name used for the standard input and output
const StdStream = "-"

// DefaultCommentSyntax wraps the warning in an HTML comment
const DefaultCommentSyntax = "<!-- %s -->"

// GeneratedWarning is the first line of the banner
const GeneratedWarning = "Generated file - DO NOT EDIT"

// ErrCommentSyntax is returned for comment formats other than a single %s,
// with literal percent signs written as %%.
var ErrCommentSyntax = errors.New("invalid comment syntax")

// ConvertFunc converts the whole input text.
type ConvertFunc func(text string) (string, error)

// Filter describes one conversion run. Empty or "-" Input and Output mean
// the standard streams.
type Filter struct {
	Input  string
	Output string

	// Generated adds the banner, formatted with CommentSyntax
	Generated     bool
	CommentSyntax string

	Stdin  io.Reader
	Stdout io.Writer
}

// IsStd returns true if the name refers to a standard stream.
func IsStd(name string) bool {
	return name == "" || name == StdStream
}

// Result reports the sizes of a run.
type Result struct {
	InputSize  int
	OutputSize int
}

// Run reads the input, converts it and writes the output.
// Nothing is written if reading or converting fails.
func (f *Filter) Run(convert ConvertFunc) (Result, error) {
	var res Result

	in, err := f.read()
	if err != nil {
		return res, err
	}
	res.InputSize = len(in)

	out, err := convert(string(in))
	if err != nil {
		return res, err
	}

	if f.Generated {
		banner, err := Banner(f.CommentSyntax, f.inputName())
		if err != nil {
			return res, err
		}
		out = Prepend(out, banner)
	}
	res.OutputSize = len(out)

	return res, f.write([]byte(out))
}

func (f *Filter) inputName() string {
	if IsStd(f.Input) {
		return ""
	}
	return f.Input
}

func (f *Filter) read() ([]byte, error) {
	if IsStd(f.Input) {
		stdin := f.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		return io.ReadAll(stdin)
	}

	data, err := os.ReadFile(f.Input)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

func (f *Filter) write(data []byte) error {
	if IsStd(f.Output) {
		stdout := f.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		_, err := stdout.Write(data)
		return err
	}

	// The file is replaced with a rename, never written in place
	if err := atomic.WriteFile(f.Output, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// ValidateCommentSyntax checks that format has exactly one %s verb and
// no verbs other than %%.
func ValidateCommentSyntax(format string) error {
	verbs := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		if i+1 == len(format) {
			return fmt.Errorf("%w: %q ends with %%", ErrCommentSyntax, format)
		}
		i++
		switch format[i] {
		case 's':
			verbs++
		case '%':
		default:
			return fmt.Errorf("%w: %q uses %%%c", ErrCommentSyntax, format, format[i])
		}
	}
	if verbs != 1 {
		return fmt.Errorf("%w: %q must have one %%s", ErrCommentSyntax, format)
	}
	return nil
}

// Banner returns the generated file warning, one comment per line.
// input is the name of the source file, or empty for the standard input.
func Banner(format string, input string) (string, error) {
	if format == "" {
		format = DefaultCommentSyntax
	}
	if err := ValidateCommentSyntax(format); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(format, GeneratedWarning))
	sb.WriteByte('\n')
	if input != "" {
		sb.WriteString(fmt.Sprintf(format, "Created from: "+input))
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// Prepend inserts the banner at the start of text.
func Prepend(text string, banner string) string {
	b := sliceedit.NewBufferString(text)
	b.Insert(0, banner)
	return b.String()
}
