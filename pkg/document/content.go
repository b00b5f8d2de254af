package document

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// kerningSpace is the TJ adjustment (thousandths of an em) below which a
// gap between two strings is read as a word space.
const kerningSpace = -200

// ContentLines reads the text-showing operators of a PDF content stream and
// returns the shown text split into lines. A new line starts on T*, ' and ",
// on Td/TD with a vertical move, and on Tm with a different baseline.
// Fonts and glyph positions are not interpreted.
func ContentLines(data []byte) []string {
	lines, _ := scanContent(data)
	return lines
}

// scanContent is ContentLines that also reports how many text-showing
// operands carried non-blank text.
func scanContent(data []byte) ([]string, int) {
	w := &lineWriter{}
	s := &contentScanner{data: data}

	var operands []operand
	var arrays [][]operand

	push := func(op operand) {
		if n := len(arrays); n > 0 {
			arrays[n-1] = append(arrays[n-1], op)
			return
		}
		operands = append(operands, op)
	}

	for {
		tok, ok := s.next()
		if !ok {
			break
		}

		switch tok.kind {
		case tokString:
			push(operand{kind: tokString, str: tok.text})
		case tokNumber:
			push(operand{kind: tokNumber, num: tok.num})
		case tokName:
			push(operand{kind: tokName, str: tok.text})
		case tokArrayStart:
			arrays = append(arrays, nil)
		case tokArrayEnd:
			if n := len(arrays); n > 0 {
				arr := arrays[n-1]
				arrays = arrays[:n-1]
				push(operand{kind: tokArrayStart, arr: arr})
			}
		case tokOperator:
			if tok.text == "ID" {
				s.skipInlineImage()
			}
			w.apply(tok.text, operands)
			operands = operands[:0]
			arrays = nil
		}
	}

	return w.finish(), w.shown
}

// readable reports whether lines hold text a person could read: at least
// three quarters of the non-space runes are printable and one is a letter
// or digit. Strings shown through an unmapped font encoding fail this.
func readable(lines []string) bool {
	var total, printable, alnum int
	for _, line := range lines {
		for _, r := range line {
			if unicode.IsSpace(r) {
				continue
			}
			total++
			if r != unicode.ReplacementChar && unicode.IsPrint(r) {
				printable++
			}
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				alnum++
			}
		}
	}
	return alnum > 0 && printable*4 >= total*3
}

type operand struct {
	kind tokenKind
	str  string
	num  float64
	arr  []operand
}

// lineWriter accumulates shown text into lines.
type lineWriter struct {
	lines []string
	cur   strings.Builder
	y     float64
	hasY  bool
	shown int
}

func (w *lineWriter) apply(op string, args []operand) {
	switch op {
	case "Tj":
		w.show(lastString(args))
	case "'":
		w.newline()
		w.show(lastString(args))
	case "\"":
		w.newline()
		w.show(lastString(args))
	case "TJ":
		if len(args) == 0 {
			return
		}
		for _, el := range args[len(args)-1].arr {
			switch el.kind {
			case tokString:
				w.show(el.str)
			case tokNumber:
				if el.num <= kerningSpace {
					w.space()
				}
			}
		}
	case "T*":
		w.newline()
	case "Td", "TD":
		if len(args) < 2 {
			return
		}
		if args[len(args)-1].num != 0 {
			w.newline()
		} else if args[len(args)-2].num > 0 {
			w.space()
		}
	case "Tm":
		if len(args) < 6 {
			return
		}
		y := args[len(args)-1].num
		if w.hasY && y != w.y {
			w.newline()
		} else {
			w.space()
		}
		w.y, w.hasY = y, true
	case "ET":
		w.space()
	}
}

func (w *lineWriter) show(text string) {
	if strings.TrimSpace(text) != "" {
		w.shown++
	}
	w.cur.WriteString(text)
}

func (w *lineWriter) space() {
	if w.cur.Len() > 0 && !strings.HasSuffix(w.cur.String(), " ") {
		w.cur.WriteByte(' ')
	}
}

func (w *lineWriter) newline() {
	if line := collapseSpaces(w.cur.String()); line != "" {
		w.lines = append(w.lines, line)
	}
	w.cur.Reset()
}

func (w *lineWriter) finish() []string {
	w.newline()
	return w.lines
}

func lastString(args []operand) string {
	for i := len(args) - 1; i >= 0; i-- {
		if args[i].kind == tokString {
			return args[i].str
		}
	}
	return ""
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type tokenKind int

const (
	tokOperator tokenKind = iota
	tokNumber
	tokString
	tokName
	tokArrayStart
	tokArrayEnd
	tokDictStart
	tokDictEnd
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

// contentScanner splits a content stream into PostScript-like tokens.
type contentScanner struct {
	data []byte
	pos  int
}

func isWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (s *contentScanner) next() (token, bool) {
	for s.pos < len(s.data) {
		c := s.data[s.pos]

		switch {
		case isWhitespace(c):
			s.pos++
		case c == '%':
			for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != '\r' {
				s.pos++
			}
		case c == '(':
			s.pos++
			return token{kind: tokString, text: decodeText(s.literal())}, true
		case c == '<':
			if s.peek(1) == '<' {
				s.pos += 2
				return token{kind: tokDictStart}, true
			}
			s.pos++
			return token{kind: tokString, text: decodeText(s.hex())}, true
		case c == '>':
			s.pos++
			if s.peek(0) == '>' {
				s.pos++
			}
			return token{kind: tokDictEnd}, true
		case c == '[':
			s.pos++
			return token{kind: tokArrayStart}, true
		case c == ']':
			s.pos++
			return token{kind: tokArrayEnd}, true
		case c == '/':
			s.pos++
			return token{kind: tokName, text: s.regular()}, true
		case c == '{' || c == '}' || c == ')':
			s.pos++
		default:
			word := s.regular()
			if num, err := strconv.ParseFloat(word, 64); err == nil {
				return token{kind: tokNumber, num: num}, true
			}
			return token{kind: tokOperator, text: word}, true
		}
	}
	return token{}, false
}

func (s *contentScanner) peek(offset int) byte {
	if s.pos+offset < len(s.data) {
		return s.data[s.pos+offset]
	}
	return 0
}

func (s *contentScanner) regular() string {
	start := s.pos
	for s.pos < len(s.data) && !isWhitespace(s.data[s.pos]) && !isDelimiter(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

// literal reads a (string) body after the opening parenthesis.
func (s *contentScanner) literal() []byte {
	var out []byte
	depth := 1
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++

		switch c {
		case '\\':
			if s.pos >= len(s.data) {
				return out
			}
			e := s.data[s.pos]
			s.pos++
			switch e {
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case 'b':
				out = append(out, '\b')
			case 'f':
				out = append(out, '\f')
			case '\r':
				if s.peek(0) == '\n' {
					s.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for i := 0; i < 2 && s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '7'; i++ {
						val = val*8 + int(s.data[s.pos]-'0')
						s.pos++
					}
					out = append(out, byte(val))
				} else {
					out = append(out, e)
				}
			}
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return out
			}
			out = append(out, c)
		default:
			out = append(out, c)
		}
	}
	return out
}

// hex reads a <hex string> body after the opening bracket.
func (s *contentScanner) hex() []byte {
	var digits []byte
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		if c == '>' {
			break
		}
		if isWhitespace(c) {
			continue
		}
		digits = append(digits, c)
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	out := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return out
}

// skipInlineImage moves past inline image data up to the EI operator.
func (s *contentScanner) skipInlineImage() {
	idx := bytes.Index(s.data[s.pos:], []byte("EI"))
	for idx >= 0 {
		end := s.pos + idx
		before := end == 0 || isWhitespace(s.data[end-1])
		after := end+2 >= len(s.data) || isWhitespace(s.data[end+2])
		if before && after {
			s.pos = end + 2
			return
		}
		next := bytes.Index(s.data[end+2:], []byte("EI"))
		if next < 0 {
			break
		}
		idx = end + 2 + next - s.pos
	}
	s.pos = len(s.data)
}

// decodeText maps string bytes to runes: UTF-16BE when the string starts
// with a byte order mark, Latin-1 otherwise.
func decodeText(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		units := make([]uint16, 0, (len(b)-2)/2)
		for i := 2; i+1 < len(b); i += 2 {
			units = append(units, uint16(b[i])<<8|uint16(b[i+1]))
		}
		return string(utf16.Decode(units))
	}

	var sb strings.Builder
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}
