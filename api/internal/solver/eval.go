package solver

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EvalNumeric evaluates a plain arithmetic expression to a number.
// Grammar: + - * / % ^ with the usual precedence, ^ right-associative,
// parentheses, postfix ! and %, named constants pi and e, and the common
// school functions. Trig takes and returns degrees, log is base 10, ln is
// natural.
func EvalNumeric(expr string) (float64, error) {
	p := &evalParser{s: strings.TrimSpace(expr)}
	v, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.s) {
		return 0, fmt.Errorf("eval: unexpected %q at offset %d", p.s[p.pos], p.pos)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("eval: result is not a finite number")
	}
	return v, nil
}

type evalParser struct {
	s   string
	pos int
}

func (p *evalParser) skipSpaces() {
	for p.pos < len(p.s) && p.s[p.pos] == ' ' {
		p.pos++
	}
}

func (p *evalParser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *evalParser) parseSum() (float64, error) {
	v, err := p.parseProduct()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			r, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			v += r
		case '-':
			p.pos++
			r, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			v -= r
		default:
			return v, nil
		}
	}
}

func (p *evalParser) parseProduct() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch c := p.peek(); {
		case c == '*':
			p.pos++
			r, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v *= r
		case c == '/':
			p.pos++
			r, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, fmt.Errorf("eval: division by zero")
			}
			v /= r
		case c == '%' && !p.atPercentSuffix():
			p.pos++
			r, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if r == 0 {
				return 0, fmt.Errorf("eval: modulo by zero")
			}
			v = math.Mod(v, r)
		case c == '(' || c == 0xE2 || isIdentByte(c) || isDigitByte(c):
			// Implicit multiplication: 2pi, 3(4+1), 2√9.
			r, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v *= r
		default:
			return v, nil
		}
	}
}

// atPercentSuffix reports whether the % at the current position closes a
// percentage (nothing multipliable follows) rather than acting as modulo.
func (p *evalParser) atPercentSuffix() bool {
	i := p.pos + 1
	for i < len(p.s) && p.s[i] == ' ' {
		i++
	}
	if i >= len(p.s) {
		return true
	}
	c := p.s[i]
	return !(c == '(' || isIdentByte(c) || isDigitByte(c) || c == '-' || c == '.')
}

func (p *evalParser) parseUnary() (float64, error) {
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *evalParser) parsePower() (float64, error) {
	v, err := p.parsePostfix()
	if err != nil {
		return 0, err
	}
	if p.peek() == '^' {
		p.pos++
		r, err := p.parseUnary()
		if err != nil {
			return 0, err
		}
		return math.Pow(v, r), nil
	}
	return v, nil
}

func (p *evalParser) parsePostfix() (float64, error) {
	v, err := p.parseAtom()
	if err != nil {
		return 0, err
	}
	for {
		switch {
		case p.peek() == '!':
			p.pos++
			v, err = factorial(v)
			if err != nil {
				return 0, err
			}
		case p.peek() == '%' && p.atPercentSuffix():
			p.pos++
			v /= 100
		default:
			return v, nil
		}
	}
}

func (p *evalParser) parseAtom() (float64, error) {
	c := p.peek()
	switch {
	case c == 0:
		return 0, fmt.Errorf("eval: unexpected end of expression")
	case c == '(':
		p.pos++
		v, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("eval: missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case isDigitByte(c) || c == '.':
		return p.parseNumber()
	case c == 0xE2: // first byte of √ in UTF-8
		if strings.HasPrefix(p.s[p.pos:], "√") {
			p.pos += len("√")
			v, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if v < 0 {
				return 0, fmt.Errorf("eval: square root of a negative number")
			}
			return math.Sqrt(v), nil
		}
		return 0, fmt.Errorf("eval: unexpected character at offset %d", p.pos)
	case isIdentByte(c):
		return p.parseIdent()
	}
	return 0, fmt.Errorf("eval: unexpected %q at offset %d", c, p.pos)
}

func (p *evalParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.s) && (isDigitByte(p.s[p.pos]) || p.s[p.pos] == '.') {
		p.pos++
	}
	v, err := strconv.ParseFloat(p.s[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("eval: bad number %q", p.s[start:p.pos])
	}
	return v, nil
}

func (p *evalParser) parseIdent() (float64, error) {
	start := p.pos
	for p.pos < len(p.s) && isIdentByte(p.s[p.pos]) {
		p.pos++
	}
	name := strings.ToLower(p.s[start:p.pos])

	switch name {
	case "pi":
		return math.Pi, nil
	case "e":
		return math.E, nil
	}

	if p.peek() != '(' {
		return 0, fmt.Errorf("eval: unknown symbol %q", name)
	}
	p.pos++
	arg, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	if p.peek() != ')' {
		return 0, fmt.Errorf("eval: missing closing parenthesis after %s", name)
	}
	p.pos++
	return applyFunc(name, arg)
}

// applyFunc evaluates a named function call. Trig works in degrees at this
// text level; only the calculus closures use radians.
func applyFunc(name string, arg float64) (float64, error) {
	switch name {
	case "sin":
		return math.Sin(arg * math.Pi / 180), nil
	case "cos":
		return math.Cos(arg * math.Pi / 180), nil
	case "tan":
		c := math.Cos(arg * math.Pi / 180)
		if math.Abs(c) < 1e-12 {
			return 0, fmt.Errorf("eval: tan undefined at %s degrees", fmtNum(arg))
		}
		return math.Sin(arg*math.Pi/180) / c, nil
	case "sec":
		c := math.Cos(arg * math.Pi / 180)
		if math.Abs(c) < 1e-12 {
			return 0, fmt.Errorf("eval: sec undefined at %s degrees", fmtNum(arg))
		}
		return 1 / c, nil
	case "csc":
		v := math.Sin(arg * math.Pi / 180)
		if math.Abs(v) < 1e-12 {
			return 0, fmt.Errorf("eval: csc undefined at %s degrees", fmtNum(arg))
		}
		return 1 / v, nil
	case "cot":
		v := math.Sin(arg * math.Pi / 180)
		if math.Abs(v) < 1e-12 {
			return 0, fmt.Errorf("eval: cot undefined at %s degrees", fmtNum(arg))
		}
		return math.Cos(arg*math.Pi/180) / v, nil
	case "asin", "arcsin":
		if arg < -1 || arg > 1 {
			return 0, fmt.Errorf("eval: arcsin argument out of range")
		}
		return math.Asin(arg) * 180 / math.Pi, nil
	case "acos", "arccos":
		if arg < -1 || arg > 1 {
			return 0, fmt.Errorf("eval: arccos argument out of range")
		}
		return math.Acos(arg) * 180 / math.Pi, nil
	case "atan", "arctan":
		return math.Atan(arg) * 180 / math.Pi, nil
	case "sqrt":
		if arg < 0 {
			return 0, fmt.Errorf("eval: square root of a negative number")
		}
		return math.Sqrt(arg), nil
	case "abs":
		return math.Abs(arg), nil
	case "ln":
		if arg <= 0 {
			return 0, fmt.Errorf("eval: ln of a non-positive number")
		}
		return math.Log(arg), nil
	case "log":
		if arg <= 0 {
			return 0, fmt.Errorf("eval: log of a non-positive number")
		}
		return math.Log10(arg), nil
	case "exp":
		return math.Exp(arg), nil
	}
	return 0, fmt.Errorf("eval: unknown function %q", name)
}

func factorial(v float64) (float64, error) {
	if v < 0 || v != math.Trunc(v) {
		return 0, fmt.Errorf("eval: factorial needs a non-negative integer")
	}
	if v > 170 {
		return 0, fmt.Errorf("eval: factorial overflow")
	}
	out := 1.0
	for i := 2.0; i <= v; i++ {
		out *= i
	}
	return out, nil
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}
