// Copyright 2018-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"strconv"
)

var errExprParse = errors.New("expression syntax error")

// A resolver supplies the values of identifiers appearing in expressions.
type resolver interface {
	resolveIdentifier(s string) (int64, error)
}

type binaryOp struct {
	precedence int
	eval       func(a, b int64) (int64, error)
}

// Binary operators, keyed by symbol. Higher precedence binds tighter.
var binaryOps = map[string]binaryOp{
	"*":  {6, func(a, b int64) (int64, error) { return a * b, nil }},
	"/":  {6, divide},
	"%":  {6, modulo},
	"+":  {5, func(a, b int64) (int64, error) { return a + b, nil }},
	"-":  {5, func(a, b int64) (int64, error) { return a - b, nil }},
	"<<": {4, func(a, b int64) (int64, error) { return a << uint64(b&63), nil }},
	">>": {4, func(a, b int64) (int64, error) { return a >> uint64(b&63), nil }},
	"&":  {3, func(a, b int64) (int64, error) { return a & b, nil }},
	"^":  {2, func(a, b int64) (int64, error) { return a ^ b, nil }},
	"|":  {1, func(a, b int64) (int64, error) { return a | b, nil }},
}

func divide(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a / b, nil
}

func modulo(a, b int64) (int64, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a % b, nil
}

// An exprParser evaluates integer expressions such as "base+$10" or
// "(end-2)&$FFF0" by precedence climbing over a string.
type exprParser struct {
	s string
	r resolver
}

// evalExpr evaluates the expression s, resolving identifiers with r.
func evalExpr(s string, r resolver) (int64, error) {
	p := &exprParser{s: s, r: r}
	v, err := p.parseBinary(1)
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.s != "" {
		return 0, errExprParse
	}
	return v, nil
}

func (p *exprParser) skipSpace() {
	i := 0
	for i < len(p.s) && whitespace(p.s[i]) {
		i++
	}
	p.s = p.s[i:]
}

// Return the binary operator at the head of the string, if any.
func (p *exprParser) peekOp() (string, binaryOp, bool) {
	p.skipSpace()
	for _, n := range []int{2, 1} {
		if len(p.s) >= n {
			if op, ok := binaryOps[p.s[:n]]; ok {
				return p.s[:n], op, true
			}
		}
	}
	return "", binaryOp{}, false
}

func (p *exprParser) parseBinary(minPrec int) (int64, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return 0, err
	}

	for {
		sym, op, ok := p.peekOp()
		if !ok || op.precedence < minPrec {
			return lhs, nil
		}
		p.s = p.s[len(sym):]

		rhs, err := p.parseBinary(op.precedence + 1)
		if err != nil {
			return 0, err
		}
		if lhs, err = op.eval(lhs, rhs); err != nil {
			return 0, err
		}
	}
}

func (p *exprParser) parseUnary() (int64, error) {
	p.skipSpace()
	if p.s == "" {
		return 0, errExprParse
	}

	switch c := p.s[0]; c {
	case '-', '+', '~', '<', '>':
		// A lone '<' or '>' selects the low or high byte of its operand.
		if (c == '<' || c == '>') && len(p.s) > 1 && p.s[1] == c {
			return 0, errExprParse
		}
		p.s = p.s[1:]
		v, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		switch c {
		case '-':
			return -v, nil
		case '~':
			return ^v, nil
		case '<':
			return v & 0xff, nil
		case '>':
			return (v >> 8) & 0xff, nil
		}
		return v, nil

	case '(':
		p.s = p.s[1:]
		v, err := p.parseBinary(1)
		if err != nil {
			return 0, err
		}
		p.skipSpace()
		if p.s == "" || p.s[0] != ')' {
			return 0, errExprParse
		}
		p.s = p.s[1:]
		return v, nil

	case '\'':
		if len(p.s) < 3 || p.s[2] != '\'' {
			return 0, errExprParse
		}
		v := int64(p.s[1])
		p.s = p.s[3:]
		return v, nil

	case '$':
		return p.parseNumber(1, 16, hexadecimal)
	}

	switch {
	case len(p.s) > 2 && p.s[0] == '0' && (p.s[1] == 'x' || p.s[1] == 'X'):
		return p.parseNumber(2, 16, hexadecimal)
	case len(p.s) > 2 && p.s[0] == '0' && (p.s[1] == 'b' || p.s[1] == 'B'):
		return p.parseNumber(2, 2, binary)
	case decimal(p.s[0]):
		return p.parseNumber(0, 10, decimal)
	case identifier(p.s[0]):
		i := scanWhile(p.s, identifier)
		id := p.s[:i]
		p.s = p.s[i:]
		if p.r == nil {
			return 0, fmt.Errorf("unknown identifier '%s'", id)
		}
		return p.r.resolveIdentifier(id)
	default:
		return 0, errExprParse
	}
}

func (p *exprParser) parseNumber(prefix, base int, fn func(c byte) bool) (int64, error) {
	s := p.s[prefix:]
	i := scanWhile(s, fn)
	if i == 0 {
		return 0, errExprParse
	}
	v, err := strconv.ParseInt(s[:i], base, 64)
	if err != nil {
		return 0, errExprParse
	}
	p.s = s[i:]
	return v, nil
}

func scanWhile(s string, fn func(c byte) bool) int {
	i := 0
	for i < len(s) && fn(s[i]) {
		i++
	}
	return i
}

func whitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

func decimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexadecimal(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func binary(c byte) bool {
	return c == '0' || c == '1'
}

func identifier(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '.'
}
