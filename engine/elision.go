package engine

// WhitespaceElisionName is the name of the whitespace elision extension
const WhitespaceElisionName = "whitespace-elision"

// WhitespaceElision removes the line breaks between block tags and their
// children. Block tags and converted lines also lose their indentation,
// while flush left and blank lines are emitted unchanged:
//
//	ul
//	    li
//	        a href=foo
//	            bar
//
// renders as <ul><li><a href="foo">bar</a></li></ul>.
func WhitespaceElision() Extension {
	return NewExtension(WhitespaceElisionName, func(h *Hooks) {
		h.WrapLine(func(next LineFunc) LineFunc {
			return func(line string) Fragment {
				f := next(line)
				f.Kind = PlainFragment
				f.Flush = true
				return f
			}
		})

		h.WrapSugar(func(next SugarFunc) SugarFunc {
			return func(markup string) (Fragment, Fragment) {
				start, end := next(markup)
				start.Kind, start.Flush = StartTagFragment, true
				end.Kind, end.Flush = EndTagFragment, true
				return start, end
			}
		})

		h.WrapJoin(func(next JoinFunc) JoinFunc {
			return func(prefix string, f Fragment) Fragment {
				if f.Flush {
					return f
				}
				return next(prefix, f)
			}
		})

		h.WrapAccumulate(func(next AccumulateFunc) AccumulateFunc {
			return func(lines []Line) []Fragment {
				return MergeFragments(next(lines))
			}
		})
	})
}

// MergeFragments joins the start tags with the fragment that follows them,
// and every fragment with the end tags that follow it. It scans the
// fragments once from left to right:
//
//   - two consecutive end tags become a single end tag
//   - a fragment followed by an end tag is emitted together with it
//   - a start tag takes the fragment after it, and gets its kind
//   - any other fragment is emitted unchanged
//
// The input is not modified.
func MergeFragments(frags []Fragment) []Fragment {
	if len(frags) < 2 {
		return append([]Fragment(nil), frags...)
	}

	queue := append([]Fragment(nil), frags...)
	out := make([]Fragment, 0, len(frags))

	i := 0
	for len(queue)-i > 1 {
		first, second := queue[i], queue[i+1]

		switch {
		case second.Kind == EndTagFragment && i+2 < len(queue) && queue[i+2].Kind == EndTagFragment:
			third := queue[i+2]
			queue[i+2] = Fragment{Kind: EndTagFragment, Text: second.Text + third.Text, Flush: true}
			queue[i+1] = first
			i++

		case second.Kind == EndTagFragment:
			out = append(out, Fragment{Kind: PlainFragment, Text: first.Text + second.Text})
			i += 2

		case first.Kind == StartTagFragment:
			queue[i+1] = Fragment{Kind: second.Kind, Text: first.Text + second.Text, Flush: true}
			i++

		default:
			out = append(out, first)
			i++
		}
	}

	if i < len(queue) {
		out = append(out, queue[i])
	}

	return out
}
