// Package calculator evaluates the arithmetic accepted by the calc command.
// Supported: decimal literals, + - * / %, unary sign and parentheses.
package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidExpression = errors.New("invalid expression")
	ErrDivisionByZero    = errors.New("division by zero")
)

const maxExpressionLength = 256

// Evaluate parses and evaluates expr with exact decimal arithmetic
func Evaluate(expr string) (decimal.Decimal, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || len(expr) > maxExpressionLength {
		return decimal.Zero, ErrInvalidExpression
	}

	p := &parser{input: expr}
	value, err := p.parseExpression()
	if err != nil {
		return decimal.Zero, err
	}

	p.skipSpaces()
	if p.pos != len(p.input) {
		return decimal.Zero, fmt.Errorf("%w: unexpected %q", ErrInvalidExpression, p.input[p.pos])
	}
	return value, nil
}

type parser struct {
	input string
	pos   int
	depth int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) parseExpression() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}

	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++

		right, err := p.parseTerm()
		if err != nil {
			return decimal.Zero, err
		}
		if op == '+' {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}
}

func (p *parser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}

	for {
		op := p.peek()
		if op != '*' && op != '/' && op != '%' {
			return left, nil
		}
		p.pos++

		right, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}

		switch op {
		case '*':
			left = left.Mul(right)
		case '/':
			if right.IsZero() {
				return decimal.Zero, ErrDivisionByZero
			}
			left = left.Div(right)
		case '%':
			if right.IsZero() {
				return decimal.Zero, ErrDivisionByZero
			}
			left = left.Mod(right)
		}
	}
}

func (p *parser) parseFactor() (decimal.Decimal, error) {
	switch c := p.peek(); {
	case c == '+' || c == '-':
		p.pos++
		value, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		if c == '-' {
			return value.Neg(), nil
		}
		return value, nil
	case c == '(':
		p.depth++
		if p.depth > 32 {
			return decimal.Zero, fmt.Errorf("%w: nesting too deep", ErrInvalidExpression)
		}
		p.pos++
		value, err := p.parseExpression()
		if err != nil {
			return decimal.Zero, err
		}
		if p.peek() != ')' {
			return decimal.Zero, fmt.Errorf("%w: missing closing parenthesis", ErrInvalidExpression)
		}
		p.pos++
		p.depth--
		return value, nil
	case (c >= '0' && c <= '9') || c == '.':
		return p.parseNumber()
	default:
		return decimal.Zero, ErrInvalidExpression
	}
}

func (p *parser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) && ((p.input[p.pos] >= '0' && p.input[p.pos] <= '9') || p.input[p.pos] == '.') {
		p.pos++
	}
	value, err := decimal.NewFromString(p.input[start:p.pos])
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad number %q", ErrInvalidExpression, p.input[start:p.pos])
	}
	return value, nil
}
