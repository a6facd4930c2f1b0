package expr

import (
	"fmt"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenNumber
	tokenString
	tokenIdent
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
	tokenComma
	tokenCompare
)

type token struct {
	typ  tokenType
	text string
	pos  int
}

// lex scans the expression into tokens. Quoted text (single or double
// quotes) becomes a single string token with the quotes stripped, which is
// what keeps string literals immune to variable substitution.
func lex(source string) ([]token, error) {
	var tokens []token
	i := 0
	n := len(source)

	for i < n {
		c := source[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c >= '0' && c <= '9':
			start := i
			for i < n && source[i] >= '0' && source[i] <= '9' {
				i++
			}
			if i < n && source[i] == '.' {
				i++
				if i >= n || source[i] < '0' || source[i] > '9' {
					return nil, newError(source[start:i], ErrMalformedNumber)
				}
				for i < n && source[i] >= '0' && source[i] <= '9' {
					i++
				}
			}
			tokens = append(tokens, token{typ: tokenNumber, text: source[start:i], pos: start})

		case c == '"' || c == '\'':
			quote := c
			start := i
			i++
			for i < n && source[i] != quote {
				i++
			}
			if i >= n {
				return nil, newError(source[start:], fmt.Errorf("%w: unterminated string literal", ErrSyntax))
			}
			tokens = append(tokens, token{typ: tokenString, text: source[start+1 : i], pos: start})
			i++

		case isIdentStart(c):
			start := i
			for i < n && isIdentPart(source[i]) {
				i++
			}
			tokens = append(tokens, token{typ: tokenIdent, text: source[start:i], pos: start})

		case c == '+':
			tokens = append(tokens, token{typ: tokenPlus, text: "+", pos: i})
			i++
		case c == '-':
			tokens = append(tokens, token{typ: tokenMinus, text: "-", pos: i})
			i++
		case c == '*':
			tokens = append(tokens, token{typ: tokenStar, text: "*", pos: i})
			i++
		case c == '/':
			tokens = append(tokens, token{typ: tokenSlash, text: "/", pos: i})
			i++
		case c == '(':
			tokens = append(tokens, token{typ: tokenLParen, text: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{typ: tokenRParen, text: ")", pos: i})
			i++
		case c == ',':
			tokens = append(tokens, token{typ: tokenComma, text: ",", pos: i})
			i++

		case c == '>' || c == '<':
			op := string(c)
			i++
			if i < n && source[i] == '=' {
				op += "="
				i++
			}
			tokens = append(tokens, token{typ: tokenCompare, text: op, pos: i - len(op)})

		case c == '=':
			if i+1 >= n || source[i+1] != '=' {
				return nil, newError("=", fmt.Errorf("%w: single '=' is not an operator, use '=='", ErrSyntax))
			}
			tokens = append(tokens, token{typ: tokenCompare, text: "==", pos: i})
			i += 2

		case c == '!':
			if i+1 >= n || source[i+1] != '=' {
				return nil, newError("!", fmt.Errorf("%w: single '!' is not an operator, use '!='", ErrSyntax))
			}
			tokens = append(tokens, token{typ: tokenCompare, text: "!=", pos: i})
			i += 2

		default:
			return nil, newError(string(c), fmt.Errorf("%w: unexpected character", ErrSyntax))
		}
	}

	tokens = append(tokens, token{typ: tokenEOF, pos: n})
	return tokens, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
