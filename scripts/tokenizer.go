package scripts

import (
	"bufio"
	"io"
	"iter"
	"strconv"
	"strings"
	"unicode"
)

// Tokenizer splits script text into tokens, one line at a time.
// Newlines are tokens. A final line without a trailing newline still gets one.
type Tokenizer struct {
	source  *bufio.Reader
	current *Token

	// KeepComments makes comments come out as TokenComment instead of being skipped
	KeepComments bool

	line     []rune
	pos      int
	lineNum  int
	lineText string
	eof      bool
}

func NewTokenizer(source io.Reader) *Tokenizer {
	return &Tokenizer{
		source: bufio.NewReader(source),
	}
}

func (t *Tokenizer) Current() (*Token, error) {
	if t.current == nil {
		var err error
		t.current, err = t.parseNext()
		if err != nil {
			return nil, err
		}
	}
	return t.current, nil
}

func (t *Tokenizer) Consume() {
	t.current = nil
}

// Tokens yields every remaining token, ending with TokenEOF.
func (t *Tokenizer) Tokens() iter.Seq2[*Token, error] {
	return func(yield func(*Token, error) bool) {
		for {
			token, err := t.Current()
			if err != nil {
				yield(nil, err)
				return
			}
			t.Consume()
			if !yield(token, nil) {
				return
			}
			if token.Kind == TokenEOF {
				return
			}
		}
	}
}

func (t *Tokenizer) readLine() (bool, error) {
	if t.eof {
		return false, nil
	}
	text, err := t.source.ReadString('\n')
	if err == io.EOF {
		t.eof = true
		if text == "" {
			return false, nil
		}
	} else if err != nil {
		return false, err
	}
	t.lineNum++
	t.lineText = strings.TrimRight(text, "\r\n")
	t.line = []rune(text)
	if !strings.HasSuffix(text, "\n") {
		t.line = append(t.line, '\n')
	}
	t.pos = 0
	return true, nil
}

func (t *Tokenizer) peek(offset int) rune {
	i := t.pos + offset
	if i < 0 || i >= len(t.line) {
		return 0
	}
	return t.line[i]
}

func (t *Tokenizer) token(kind TokenKind, text string) *Token {
	return &Token{
		Kind:     kind,
		Text:     text,
		Line:     t.lineNum,
		LineText: t.lineText,
	}
}

func (t *Tokenizer) illegal(text string, message string) *Token {
	token := t.token(TokenIllegal, text)
	token.Message = message
	return token
}

func (t *Tokenizer) parseNext() (*Token, error) {
	for {
		if t.pos >= len(t.line) {
			ok, err := t.readLine()
			if err != nil {
				return nil, err
			}
			if !ok {
				return t.token(TokenEOF, ""), nil
			}
		}

		r := t.line[t.pos]
		switch {

		case r == '\n':
			token := t.token(TokenNewline, "\n")
			t.pos++
			return token, nil

		case unicode.IsSpace(r):
			t.pos++
			continue

		case r == '/' && t.peek(1) == '/':
			// leave the newline in place, it still ends the line
			end := len(t.line) - 1
			token := t.token(TokenComment, string(t.line[t.pos+2:end]))
			t.pos = end
			if t.KeepComments {
				return token, nil
			}
			continue

		case r == '/' && t.peek(1) == '*':
			token, err := t.parseBlockComment()
			if err != nil {
				return nil, err
			}
			if token.Kind == TokenIllegal || t.KeepComments {
				return token, nil
			}
			continue

		case r == '*' && t.peek(1) == '/':
			token := t.illegal("*/", "end of block comment without a start")
			t.pos += 2
			return token, nil

		case r == ':':
			token := t.token(TokenColon, ":")
			t.pos++
			return token, nil

		case r == '!':
			token := t.token(TokenBang, "!")
			t.pos++
			return token, nil

		case r == '"' || r == '\'':
			return t.parseString(r), nil

		case !unicode.IsGraphic(r):
			token := t.illegal(string(r), "illegal character "+strconv.QuoteRune(r))
			t.pos++
			return token, nil

		}

		return t.parseWord(), nil
	}
}

func (t *Tokenizer) parseBlockComment() (*Token, error) {
	start := t.token(TokenComment, "")
	t.pos += 2
	var sb strings.Builder
	for {
		if t.pos >= len(t.line) {
			ok, err := t.readLine()
			if err != nil {
				return nil, err
			}
			if !ok {
				return t.illegal("/*", "unterminated block comment"), nil
			}
		}
		if t.line[t.pos] == '*' && t.peek(1) == '/' {
			t.pos += 2
			start.Text = sb.String()
			return start, nil
		}
		sb.WriteRune(t.line[t.pos])
		t.pos++
	}
}

func (t *Tokenizer) parseString(quote rune) *Token {
	token := t.token(TokenString, "")
	t.pos++
	var sb strings.Builder
	for {
		r := t.line[t.pos]
		if r == '\n' {
			return t.illegal(string(quote)+sb.String(), "unterminated string")
		}
		t.pos++
		if r == quote {
			break
		}
		if r != '\\' {
			sb.WriteRune(r)
			continue
		}
		next := t.line[t.pos]
		if next == '\n' {
			return t.illegal(string(quote)+sb.String(), "unterminated string")
		}
		t.pos++
		switch next {
		case 'n':
			sb.WriteRune('\n')
		case 'r':
			sb.WriteRune('\r')
		case 't':
			sb.WriteRune('\t')
		case '\\', '"', '\'':
			sb.WriteRune(next)
		default:
			sb.WriteRune('\\')
			sb.WriteRune(next)
		}
	}
	token.Text = sb.String()
	return token
}

func (t *Tokenizer) isWordBreak(r rune, next rune) bool {
	switch {
	case unicode.IsSpace(r), !unicode.IsGraphic(r):
		return true
	case r == ':', r == '!', r == '"', r == '\'':
		return true
	case r == '/' && (next == '/' || next == '*'):
		return true
	case r == '*' && next == '/':
		return true
	}
	return false
}

func (t *Tokenizer) parseWord() *Token {
	start := t.pos
	for t.pos < len(t.line) && !t.isWordBreak(t.line[t.pos], t.peek(1)) {
		t.pos++
	}
	word := string(t.line[start:t.pos])
	kind, message := classifyWord(word)
	token := t.token(kind, word)
	token.Message = message
	return token
}

func classifyWord(word string) (TokenKind, string) {
	if !looksNumeric(word) {
		return TokenIdentifier, ""
	}
	if isIntegerLiteral(word) {
		return TokenNumber, ""
	}
	if _, err := strconv.ParseFloat(word, 64); err == nil || isRangeError(err) {
		return TokenFloat, ""
	}
	return TokenIllegal, "malformed number " + strconv.Quote(word)
}

func looksNumeric(word string) bool {
	s := strings.TrimLeft(word, "+-")
	if len(word)-len(s) > 1 {
		return false
	}
	s = strings.TrimPrefix(s, ".")
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func isIntegerLiteral(word string) bool {
	s := strings.TrimLeft(word, "+-")
	digits := "0123456789"
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
		digits = "0123456789abcdefABCDEF"
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(digits, r) {
			return false
		}
	}
	return true
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}
