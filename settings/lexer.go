package settings

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokName
	tokString
	tokNumber
	tokOp
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokNewline:
		return "end of line"
	case tokName:
		return "name"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokOp:
		return "operator"
	}
	return "token"
}

type token struct {
	kind tokenKind
	text string // name, operator or raw number text; decoded value for strings
	line int
	col  int
}

// SyntaxError reports a malformed settings file.
type SyntaxError struct {
	File string
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Msg)
}

type lexer struct {
	file  string
	src   string
	pos   int
	line  int
	col   int
	depth int // open brackets; newlines inside brackets are not significant
}

func newLexer(file string, src []byte) *lexer {
	return &lexer{file: file, src: string(src), line: 1, col: 1}
}

func (l *lexer) errorf(line, col int, format string, args ...any) error {
	return &SyntaxError{File: l.file, Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func (l *lexer) nextRune() rune {
	if l.pos >= len(l.src) {
		return -1
	}
	r, n := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += n
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// all tokenizes the whole input. Blank and comment-only lines produce no
// newline tokens.
func (l *lexer) all() ([]token, error) {
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokNewline && (len(toks) == 0 || toks[len(toks)-1].kind == tokNewline) {
			continue
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	for {
		r := l.peekRune()
		switch {
		case r == -1:
			if l.depth > 0 {
				return token{}, l.errorf(l.line, l.col, "unexpected end of file inside brackets")
			}
			return token{kind: tokEOF, line: l.line, col: l.col}, nil
		case r == '#':
			for r := l.peekRune(); r != '\n' && r != -1; r = l.peekRune() {
				l.nextRune()
			}
		case r == '\\':
			line, col := l.line, l.col
			l.nextRune()
			if l.peekRune() == '\r' {
				l.nextRune()
			}
			if l.nextRune() != '\n' {
				return token{}, l.errorf(line, col, "unexpected character after line continuation")
			}
		case r == '\n':
			line, col := l.line, l.col
			l.nextRune()
			if l.depth == 0 {
				return token{kind: tokNewline, line: line, col: col}, nil
			}
		case r == ';':
			line, col := l.line, l.col
			l.nextRune()
			return token{kind: tokNewline, line: line, col: col}, nil
		case unicode.IsSpace(r):
			l.nextRune()
		default:
			return l.scan()
		}
	}
}

func (l *lexer) scan() (token, error) {
	line, col := l.line, l.col
	r := l.peekRune()

	if r == '_' || unicode.IsLetter(r) {
		start := l.pos
		for r := l.peekRune(); r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r); r = l.peekRune() {
			l.nextRune()
		}
		name := l.src[start:l.pos]
		if q := l.peekRune(); (q == '\'' || q == '"') && isStringPrefix(name) {
			return l.scanString(strings.ContainsAny(name, "rR"), line, col)
		}
		return token{kind: tokName, text: name, line: line, col: col}, nil
	}

	if r == '\'' || r == '"' {
		return l.scanString(false, line, col)
	}

	if unicode.IsDigit(r) || (r == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])) {
		return l.scanNumber(line, col)
	}

	l.nextRune()
	switch r {
	case '(', '[', '{':
		l.depth++
	case ')', ']', '}':
		if l.depth == 0 {
			return token{}, l.errorf(line, col, "unmatched %q", r)
		}
		l.depth--
	case '=', ',', ':', '.', '*', '-', '+':
	default:
		return token{}, l.errorf(line, col, "unexpected character %q", r)
	}
	return token{kind: tokOp, text: string(r), line: line, col: col}, nil
}

func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "u", "r", "ur", "b", "br", "rb":
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func (l *lexer) scanNumber(line, col int) (token, error) {
	start := l.pos
	accept := func(pred func(rune) bool) {
		for r := l.peekRune(); r != -1 && pred(r); r = l.peekRune() {
			l.nextRune()
		}
	}
	digits := func(r rune) bool { return unicode.IsDigit(r) || r == '_' }

	if strings.HasPrefix(l.src[l.pos:], "0x") || strings.HasPrefix(l.src[l.pos:], "0X") {
		l.nextRune()
		l.nextRune()
		accept(func(r rune) bool { return strings.ContainsRune("0123456789abcdefABCDEF_", r) })
	} else {
		accept(digits)
		if l.peekRune() == '.' {
			l.nextRune()
			accept(digits)
		}
		if r := l.peekRune(); r == 'e' || r == 'E' {
			l.nextRune()
			if r := l.peekRune(); r == '+' || r == '-' {
				l.nextRune()
			}
			accept(digits)
		}
	}
	text := l.src[start:l.pos]
	if r := l.peekRune(); r == '_' || unicode.IsLetter(r) {
		return token{}, l.errorf(line, col, "invalid number literal %q", text+string(r))
	}
	return token{kind: tokNumber, text: text, line: line, col: col}, nil
}

func (l *lexer) scanString(raw bool, line, col int) (token, error) {
	quote := l.nextRune()
	triple := false
	q3 := strings.Repeat(string(quote), 2)
	if strings.HasPrefix(l.src[l.pos:], q3) {
		l.nextRune()
		l.nextRune()
		triple = true
	}

	var sb strings.Builder
	for {
		r := l.nextRune()
		switch {
		case r == -1:
			return token{}, l.errorf(line, col, "unterminated string literal")
		case r == '\n' && !triple:
			return token{}, l.errorf(line, col, "unterminated string literal")
		case r == quote && !triple:
			return token{kind: tokString, text: sb.String(), line: line, col: col}, nil
		case r == quote && triple && strings.HasPrefix(l.src[l.pos:], q3):
			l.nextRune()
			l.nextRune()
			return token{kind: tokString, text: sb.String(), line: line, col: col}, nil
		case r == '\\' && raw:
			sb.WriteRune(r)
			if n := l.peekRune(); n == quote || n == '\\' {
				sb.WriteRune(l.nextRune())
			}
		case r == '\\':
			if err := l.scanEscape(&sb); err != nil {
				return token{}, err
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func (l *lexer) scanEscape(sb *strings.Builder) error {
	line, col := l.line, l.col
	r := l.nextRune()
	switch r {
	case '\n':
	case '\\', '\'', '"':
		sb.WriteRune(r)
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case '0':
		sb.WriteByte(0)
	case 'a':
		sb.WriteByte('\a')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'v':
		sb.WriteByte('\v')
	case 'x', 'u', 'U':
		n := map[rune]int{'x': 2, 'u': 4, 'U': 8}[r]
		if l.pos+n > len(l.src) {
			return l.errorf(line, col, "truncated \\%c escape", r)
		}
		v, err := strconv.ParseUint(l.src[l.pos:l.pos+n], 16, 32)
		if err != nil {
			return l.errorf(line, col, "invalid \\%c escape", r)
		}
		for i := 0; i < n; i++ {
			l.nextRune()
		}
		sb.WriteRune(rune(v))
	default:
		// unknown escapes are kept verbatim
		sb.WriteByte('\\')
		sb.WriteRune(r)
	}
	return nil
}
