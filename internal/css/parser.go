package css

import (
	"strings"
)

// Parser holds the state of the recursive-descent CSS parser.
//
// The parser is deliberately forgiving: constructs it does not understand
// (at-rules, malformed selectors, junk declarations) are skipped, never
// surfaced as errors. A stylesheet always parses.
type Parser struct {
	input string
	pos   int
}

func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// Parse consumes the whole input and returns the assembled Stylesheet.
func (p *Parser) Parse() Stylesheet {
	var rules []Rule
	for {
		p.consumeWhitespace()
		if p.eof() {
			break
		}
		if p.startsWith("/*") {
			p.skipComment()
			continue
		}
		if p.currentChar() == '@' {
			p.skipAtRule()
			continue
		}

		selectors := p.parseSelectors()
		if len(selectors) == 0 {
			p.skipTo('{')
			if !p.eof() {
				p.skipBlock('{', '}')
			}
			continue
		}

		declarations := p.parseDeclarations()
		if len(declarations) > 0 {
			rules = append(rules, Rule{Selectors: selectors, Declarations: declarations})
		}
	}
	return Stylesheet{Rules: rules}
}

// parseSelectors reads the comma-separated selector list preceding a block.
// Selectors are kept as raw trimmed strings; interpreting them is the style
// engine's job.
func (p *Parser) parseSelectors() []string {
	start := p.pos
	p.skipTo('{')
	raw := p.input[start:p.pos]

	var selectors []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses the content within { ... }.
func (p *Parser) parseDeclarations() []Declaration {
	p.consumeWhitespace()
	if p.eof() || p.currentChar() != '{' {
		return nil
	}
	p.consumeChar()

	var declarations []Declaration
	for {
		p.consumeWhitespace()
		if p.eof() || p.currentChar() == '}' {
			break
		}
		if p.startsWith("/*") {
			p.skipComment()
			continue
		}

		property, value := p.parseDeclaration()
		if property != "" && value != "" {
			declarations = append(declarations, Declaration{
				Property: PropertyID(strings.ToLower(property)),
				Value:    value,
			})
		}
	}

	if !p.eof() && p.currentChar() == '}' {
		p.consumeChar()
	}
	return declarations
}

// parseDeclaration parses a single 'property: value;' pair. An !important
// suffix is stripped; this engine has no origin model, so importance carries
// no extra weight.
func (p *Parser) parseDeclaration() (prop, val string) {
	if !isIdentStart(p.currentChar()) {
		p.skipPastDeclaration()
		return
	}
	prop = p.parseIdentifier()
	p.consumeWhitespace()

	if p.eof() || p.currentChar() != ':' {
		p.skipPastDeclaration()
		return "", ""
	}
	p.consumeChar()
	p.consumeWhitespace()

	val = p.parseValue()
	if strings.HasSuffix(strings.ToLower(val), "!important") {
		val = strings.TrimSpace(val[:len(val)-len("!important")])
	}

	p.consumeWhitespace()
	if !p.eof() && p.currentChar() == ';' {
		p.consumeChar()
	}
	return prop, val
}

// parseValue reads a CSS value until an unnested delimiter.
func (p *Parser) parseValue() string {
	start := p.pos
	for !p.eof() {
		switch ch := p.currentChar(); {
		case ch == ';' || ch == '}':
			return strings.TrimSpace(p.input[start:p.pos])
		case ch == '"' || ch == '\'':
			p.skipQuotedString(ch)
		case ch == '(':
			p.skipBlock('(', ')')
		default:
			p.pos++
		}
	}
	return strings.TrimSpace(p.input[start:p.pos])
}

func (p *Parser) skipPastDeclaration() {
	p.skipTo(';', '}')
	if !p.eof() && p.currentChar() == ';' {
		p.consumeChar()
	}
}

// -- Lexer helpers --

func (p *Parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *Parser) currentChar() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) consumeChar() byte {
	ch := p.currentChar()
	if !p.eof() {
		p.pos++
	}
	return ch
}

func (p *Parser) consumeWhitespace() {
	for !p.eof() && isSpace(p.currentChar()) {
		p.pos++
	}
}

func (p *Parser) startsWith(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

func (p *Parser) skipComment() {
	p.pos += 2
	if end := strings.Index(p.input[p.pos:], "*/"); end == -1 {
		p.pos = len(p.input)
	} else {
		p.pos += end + 2
	}
}

func (p *Parser) skipTo(targets ...byte) {
	for !p.eof() {
		ch := p.currentChar()
		for _, target := range targets {
			if ch == target {
				return
			}
		}
		p.pos++
	}
}

// skipBlock consumes from an opening delimiter through its matching close,
// honoring nesting. The caller must be positioned at or before the opener.
func (p *Parser) skipBlock(open, close byte) {
	depth := 0
	for !p.eof() {
		c := p.consumeChar()
		if c == open {
			depth++
		} else if c == close {
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

func (p *Parser) skipQuotedString(quote byte) {
	p.consumeChar()
	for !p.eof() {
		ch := p.consumeChar()
		if ch == '\\' {
			p.consumeChar()
		} else if ch == quote {
			return
		}
	}
}

// skipAtRule discards @media, @keyframes and friends, either to the end of
// their block or past a terminating semicolon.
func (p *Parser) skipAtRule() {
	p.consumeChar()
	_ = p.parseIdentifier()
	for !p.eof() {
		switch p.currentChar() {
		case '{':
			p.skipBlock('{', '}')
			return
		case ';':
			p.consumeChar()
			return
		default:
			p.pos++
		}
	}
}

func (p *Parser) parseIdentifier() string {
	start := p.pos
	for !p.eof() && isIdentChar(p.currentChar()) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '-'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}
