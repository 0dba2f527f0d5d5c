package token

// ParseError is the collaborator interface the parser reports a failed
// parse through (spec.md §6: "ParseError: { innerError,
// maybeTokenFrom(innerError) -> Option<Token> }"). Err is the underlying
// parser error; Trailing, when present, is the token the parser was
// looking at when it gave up — the seed for autocomplete's trailing-token
// edge cases.
type ParseError struct {
	Err      error
	Trailing *Token
}

// MaybeTrailingToken returns the parse error's trailing token, if any.
func (p *ParseError) MaybeTrailingToken() (Token, bool) {
	if p == nil || p.Trailing == nil {
		return Token{}, false
	}
	return *p.Trailing, true
}
