package scripts

type TokenKind uint8

const (
	TokenIllegal TokenKind = iota
	TokenIdentifier
	TokenNumber
	TokenFloat
	TokenString
	TokenColon
	TokenBang
	TokenNewline
	TokenComment
	TokenEOF
)

var tokenKindNames = [...]string{
	TokenIllegal:    "illegal",
	TokenIdentifier: "identifier",
	TokenNumber:     "number",
	TokenFloat:      "float",
	TokenString:     "string",
	TokenColon:      "colon",
	TokenBang:       "bang",
	TokenNewline:    "newline",
	TokenComment:    "comment",
	TokenEOF:        "end of stream",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "unknown"
}

// IsNumeric reports whether the kind is an integer or floating literal.
func (k TokenKind) IsNumeric() bool {
	return k == TokenNumber || k == TokenFloat
}

type Token struct {
	Kind TokenKind
	Text string
	// Message explains an illegal token
	Message string
	// Line is 1-based
	Line     int
	LineText string
}
