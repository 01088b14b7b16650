package settings

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// Map is the flat setting-name to value mapping read from a settings file.
// Values are string, bool, int, float64, nil, []any or map[string]any.
type Map map[string]any

// ErrNoIncludes is returned when a settings source uses
// "from <module> import *" but was not read from a file.
var ErrNoIncludes = errors.New("settings: module includes need a file path")

// includeFunc resolves "from <module> import *" to the names exported by
// that module.
type includeFunc func(module string) (map[string]any, error)

// Parse reads settings assignments from src. name is only used in error
// messages. Includes are rejected, use ReadFile for those.
func Parse(name string, src []byte) (Map, error) {
	scope, err := parse(name, src, nil)
	if err != nil {
		return nil, err
	}
	return settingsOf(scope), nil
}

// IsSettingName reports whether name is treated as a setting: it has at
// least one letter and no lower-case letters.
func IsSettingName(name string) bool {
	if name == "" || strings.HasPrefix(name, "_") {
		return false
	}
	cased := false
	for _, r := range name {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func settingsOf(scope map[string]any) Map {
	out := Map{}
	for k, v := range scope {
		if IsSettingName(k) {
			out[k] = v
		}
	}
	return out
}

type parser struct {
	file    string
	toks    []token
	pos     int
	scope   map[string]any
	include includeFunc
}

func parse(file string, src []byte, include includeFunc) (map[string]any, error) {
	toks, err := newLexer(file, src).all()
	if err != nil {
		return nil, err
	}
	p := &parser{file: file, toks: toks, scope: map[string]any{}, include: include}
	for p.peek().kind != tokEOF {
		if err := p.statement(); err != nil {
			return nil, err
		}
	}
	return p.scope, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{File: p.file, Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) isOp(op string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == op
}

func (p *parser) expectOp(op string) error {
	t := p.advance()
	if t.kind != tokOp || t.text != op {
		return p.errorf(t, "expected %q, found %s", op, describe(t))
	}
	return nil
}

func (p *parser) expectName(name string) error {
	t := p.advance()
	if t.kind != tokName || t.text != name {
		return p.errorf(t, "expected %q, found %s", name, describe(t))
	}
	return nil
}

func (p *parser) endOfStatement() error {
	t := p.advance()
	if t.kind != tokNewline && t.kind != tokEOF {
		return p.errorf(t, "unexpected %s at end of statement", describe(t))
	}
	return nil
}

func (p *parser) skipStatement() {
	for t := p.peek(); t.kind != tokNewline && t.kind != tokEOF; t = p.peek() {
		p.advance()
	}
	p.advance()
}

func describe(t token) string {
	switch t.kind {
	case tokName, tokOp:
		return fmt.Sprintf("%q", t.text)
	case tokNumber:
		return "number " + t.text
	}
	return t.kind.String()
}

func (p *parser) statement() error {
	t := p.peek()
	if t.kind != tokName {
		return p.errorf(t, "expected assignment, found %s", describe(t))
	}

	switch t.text {
	case "import":
		log.Logger.Debug().Str("file", p.file).Int("line", t.line).Msg("settings import statement skipped")
		p.skipStatement()
		return nil
	case "from":
		return p.fromImport()
	}

	dotted, err := p.dottedName()
	if err != nil {
		return err
	}

	if p.isOp("(") {
		if strings.HasPrefix(dotted, "sys.path.") {
			log.Logger.Debug().Str("file", p.file).Int("line", t.line).Str("call", dotted).Msg("settings path call skipped")
			p.skipStatement()
			return nil
		}
		return p.errorf(t, "unsupported call to %s", dotted)
	}
	if strings.Contains(dotted, ".") {
		return p.errorf(t, "cannot assign to attribute %s", dotted)
	}

	if err := p.expectOp("="); err != nil {
		return err
	}
	value, err := p.expression()
	if err != nil {
		return err
	}
	if p.isOp(",") {
		// NAME = a, b builds a tuple
		items := []any{value}
		for p.isOp(",") {
			p.advance()
			if p.peek().kind == tokNewline || p.peek().kind == tokEOF {
				break
			}
			v, err := p.expression()
			if err != nil {
				return err
			}
			items = append(items, v)
		}
		value = items
	}
	if err := p.endOfStatement(); err != nil {
		return err
	}
	p.scope[dotted] = value
	return nil
}

func (p *parser) dottedName() (string, error) {
	t := p.advance()
	if t.kind != tokName {
		return "", p.errorf(t, "expected name, found %s", describe(t))
	}
	name := t.text
	for p.isOp(".") {
		p.advance()
		n := p.advance()
		if n.kind != tokName {
			return "", p.errorf(n, "expected name after '.', found %s", describe(n))
		}
		name += "." + n.text
	}
	return name, nil
}

func (p *parser) fromImport() error {
	start := p.advance()
	module, err := p.dottedName()
	if err != nil {
		return err
	}
	if err := p.expectName("import"); err != nil {
		return err
	}
	if module == "__future__" {
		p.skipStatement()
		return nil
	}
	if !p.isOp("*") {
		return p.errorf(p.peek(), "only 'from %s import *' is supported", module)
	}
	p.advance()
	if err := p.endOfStatement(); err != nil {
		return err
	}
	if p.include == nil {
		return fmt.Errorf("%s:%d: %w", p.file, start.line, ErrNoIncludes)
	}
	names, err := p.include(module)
	if err != nil {
		return fmt.Errorf("%s:%d: include %s: %w", p.file, start.line, module, err)
	}
	for k, v := range names {
		if !strings.HasPrefix(k, "_") {
			p.scope[k] = v
		}
	}
	return nil
}

// expression := term ('+' term)*
func (p *parser) expression() (any, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") {
		opTok := p.advance()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left, err = add(left, right)
		if err != nil {
			return nil, p.errorf(opTok, "%v", err)
		}
	}
	return left, nil
}

func add(a, b any) (any, error) {
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return x + y, nil
		}
	case int:
		switch y := b.(type) {
		case int:
			return x + y, nil
		case float64:
			return float64(x) + y, nil
		}
	case float64:
		switch y := b.(type) {
		case int:
			return x + float64(y), nil
		case float64:
			return x + y, nil
		}
	case []any:
		if y, ok := b.([]any); ok {
			out := make([]any, 0, len(x)+len(y))
			return append(append(out, x...), y...), nil
		}
	}
	return nil, fmt.Errorf("unsupported operand types for +: %s and %s", typeName(a), typeName(b))
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "None"
	case string:
		return "str"
	case bool:
		return "bool"
	case int:
		return "int"
	case float64:
		return "float"
	case []any:
		return "sequence"
	case map[string]any:
		return "dict"
	}
	return fmt.Sprintf("%T", v)
}

func (p *parser) term() (any, error) {
	t := p.advance()
	switch t.kind {
	case tokString:
		s := t.text
		// adjacent literals concatenate
		for p.peek().kind == tokString {
			s += p.advance().text
		}
		return s, nil

	case tokNumber:
		return p.number(t, false)

	case tokName:
		switch t.text {
		case "True":
			return true, nil
		case "False":
			return false, nil
		case "None":
			return nil, nil
		}
		v, ok := p.scope[t.text]
		if !ok {
			return nil, p.errorf(t, "name %q is not defined", t.text)
		}
		return v, nil

	case tokOp:
		switch t.text {
		case "-":
			n := p.advance()
			if n.kind != tokNumber {
				return nil, p.errorf(n, "expected number after '-', found %s", describe(n))
			}
			return p.number(n, true)
		case "+":
			n := p.advance()
			if n.kind != tokNumber {
				return nil, p.errorf(n, "expected number after '+', found %s", describe(n))
			}
			return p.number(n, false)
		case "(":
			return p.tuple()
		case "[":
			return p.sequence("]")
		case "{":
			return p.dict()
		}
	}
	return nil, p.errorf(t, "unexpected %s in expression", describe(t))
}

func (p *parser) number(t token, negative bool) (any, error) {
	text := strings.ReplaceAll(t.text, "_", "")
	if strings.ContainsAny(text, ".eE") && !strings.HasPrefix(text, "0x") && !strings.HasPrefix(text, "0X") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf(t, "invalid float %s", t.text)
		}
		if negative {
			f = -f
		}
		return f, nil
	}
	if negative {
		text = "-" + text
	}
	i, err := strconv.ParseInt(text, 0, 64)
	if err != nil || i > math.MaxInt || i < math.MinInt {
		return nil, p.errorf(t, "invalid integer %s", t.text)
	}
	return int(i), nil
}

// tuple handles "()", "(x)", "(x,)" and "(x, y, ...)".
func (p *parser) tuple() (any, error) {
	if p.isOp(")") {
		p.advance()
		return []any{}, nil
	}
	first, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.isOp(")") {
		p.advance()
		return first, nil
	}
	if err := p.expectOp(","); err != nil {
		return nil, err
	}
	rest, err := p.sequence(")")
	if err != nil {
		return nil, err
	}
	return append([]any{first}, rest.([]any)...), nil
}

func (p *parser) sequence(closer string) (any, error) {
	items := []any{}
	for !p.isOp(closer) {
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if p.isOp(",") {
			p.advance()
			continue
		}
		if !p.isOp(closer) {
			return nil, p.errorf(p.peek(), "expected ',' or %q, found %s", closer, describe(p.peek()))
		}
	}
	p.advance()
	return items, nil
}

func (p *parser) dict() (any, error) {
	out := map[string]any{}
	for !p.isOp("}") {
		kt := p.peek()
		k, err := p.expression()
		if err != nil {
			return nil, err
		}
		key, ok := k.(string)
		if !ok {
			return nil, p.errorf(kt, "dict keys must be strings, found %s", typeName(k))
		}
		if err := p.expectOp(":"); err != nil {
			return nil, err
		}
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		out[key] = v
		if p.isOp(",") {
			p.advance()
			continue
		}
		if !p.isOp("}") {
			return nil, p.errorf(p.peek(), "expected ',' or '}', found %s", describe(p.peek()))
		}
	}
	p.advance()
	return out, nil
}
