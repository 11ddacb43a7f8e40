package engine

import "strconv"

// A FragmentKind tells where a rendered fragment came from.
type FragmentKind uint8

const (
	// PlainFragment is any rendered line which is not a block tag.
	PlainFragment FragmentKind = iota
	// StartTagFragment is the start tag emitted for a block header.
	StartTagFragment
	// EndTagFragment is the end tag emitted after a block body.
	EndTagFragment
)

// String returns a string representation of the FragmentKind.
func (k FragmentKind) String() string {
	switch k {
	case PlainFragment:
		return "Plain"
	case StartTagFragment:
		return "StartTag"
	case EndTagFragment:
		return "EndTag"
	}
	return "Invalid(" + strconv.Itoa(int(k)) + ")"
}

// A Fragment is one unit of rendered output, normally one output line.
// Flush marks text which may be emitted without its indentation prefix.
type Fragment struct {
	Kind  FragmentKind
	Text  string
	Flush bool
}

// Output accumulates the fragments rendered for a document.
type Output struct {
	frags []Fragment
}

func (o *Output) Append(frags ...Fragment) {
	o.frags = append(o.frags, frags...)
}

func (o *Output) Fragments() []Fragment {
	return o.frags
}

func (o *Output) Len() int {
	return len(o.frags)
}
