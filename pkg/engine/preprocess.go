package engine

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites script source into something zygomys accepts:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords need
//     no global symbol and never clash with script variables.
//  2. kebab-case identifiers become snake_case (create-hole -> create_hole),
//     since zygomys reads a hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals (double-quoted and backtick) pass through untouched.
func preprocessSource(source string) string {
	p := &preprocessor{src: []byte(source)}
	p.out = make([]byte, 0, len(p.src)+len(p.src)/4)
	for p.pos < len(p.src) {
		p.step()
	}
	return string(p.out)
}

type preprocessor struct {
	src []byte
	out []byte
	pos int
}

func (p *preprocessor) peek(off int) (byte, bool) {
	if i := p.pos + off; i >= 0 && i < len(p.src) {
		return p.src[i], true
	}
	return 0, false
}

func (p *preprocessor) emit(b ...byte) {
	p.out = append(p.out, b...)
}

func (p *preprocessor) step() {
	c := p.src[p.pos]
	switch {
	case c == '"':
		p.quoted('"', true)
	case c == '`':
		p.quoted('`', false)
	case c == ';':
		p.comment()
	case c == ':':
		p.colon()
	case c == '-' && p.inIdentifier():
		p.emit('_')
		p.pos++
	default:
		p.emit(c)
		p.pos++
	}
}

// quoted copies a string literal through its closing quote.
func (p *preprocessor) quoted(q byte, escapes bool) {
	p.emit(q)
	p.pos++
	for p.pos < len(p.src) && p.src[p.pos] != q {
		if escapes && p.src[p.pos] == '\\' && p.pos+1 < len(p.src) {
			p.emit(p.src[p.pos], p.src[p.pos+1])
			p.pos += 2
			continue
		}
		p.emit(p.src[p.pos])
		p.pos++
	}
	if p.pos < len(p.src) {
		p.emit(q)
		p.pos++
	}
}

// comment turns a run of ; into // and copies the rest of the line.
func (p *preprocessor) comment() {
	p.emit('/', '/')
	for p.pos < len(p.src) && p.src[p.pos] == ';' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] != '\n' {
		p.emit(p.src[p.pos])
		p.pos++
	}
}

// colon handles := and :keyword; a lone colon is copied as-is.
func (p *preprocessor) colon() {
	next, ok := p.peek(1)
	switch {
	case ok && next == '=':
		p.emit(':', '=')
		p.pos += 2
	case ok && isLetter(next):
		end := p.pos + 1
		for end < len(p.src) && isKWChar(p.src[end]) {
			end++
		}
		p.emit('"')
		p.emit([]byte(kwPrefix)...)
		p.emit(p.src[p.pos+1 : end]...)
		p.emit('"')
		p.pos = end
	default:
		p.emit(':')
		p.pos++
	}
}

// inIdentifier reports whether the hyphen at pos joins two identifier
// parts rather than acting as a minus sign.
func (p *preprocessor) inIdentifier() bool {
	prev, okPrev := p.peek(-1)
	next, okNext := p.peek(1)
	return okPrev && okNext && isIdentChar(prev) && isLetter(next)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
