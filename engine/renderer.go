package engine

import (
	"bytes"
	"fmt"
	"strconv"
)

// ByteRenderer accumulates rendered output. It accepts strings, byte slices,
// runes, bytes and ints, and falls back to fmt for anything else.
type ByteRenderer struct {
	buf bytes.Buffer
}

// Render writes all its arguments, in order, with no separators.
func (br *ByteRenderer) Render(args ...any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			br.buf.WriteString(v)
		case []byte:
			br.buf.Write(v)
		case byte:
			br.buf.WriteByte(v)
		case rune:
			br.buf.WriteRune(v)
		case int:
			br.buf.WriteString(strconv.Itoa(v))
		default:
			fmt.Fprint(&br.buf, v)
		}
	}
}

// Renderln is like Render but finishes with a newline.
func (br *ByteRenderer) Renderln(args ...any) {
	br.Render(args...)
	br.buf.WriteByte('\n')
}

func (br *ByteRenderer) Len() int {
	return br.buf.Len()
}

func (br *ByteRenderer) Bytes() []byte {
	return br.buf.Bytes()
}

func (br *ByteRenderer) String() string {
	return br.buf.String()
}
