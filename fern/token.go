package fern

// Kind identifies the lexical category of a token.
type Kind uint8

const (
	// Structural tokens reflecting changes in leading-whitespace depth.
	KindIndent Kind = iota
	KindDedent

	// Brackets and comparison angles.
	KindOpenCurlyBrace
	KindCloseCurlyBrace
	KindOpenParenthesis
	KindCloseParenthesis
	KindOpenSquareBracket
	KindCloseSquareBracket
	KindLessThan
	KindGreaterThan

	// Operators and punctuation.
	KindBackslash // path separator, as in some\modules\containing::MyType
	KindPlusSign
	KindMinusSign
	KindAsterisk
	KindForwardSlash
	KindPeriod
	KindEquals
	KindAmpersand
	KindVerticalBar
	KindComma
	KindColon       // type annotation, as in let x: u32
	KindDoubleColon // names an item within a path
	KindSemicolon   // line separator
	KindAssign      // <- writes a value to a memory location
	KindArrow       // -> gives the return value of an anonymous function

	// Keywords.
	KindDefine // def starts a function definition
	KindLambda // fun starts an anonymous function
	KindUse    // use brings items within a path into scope
	KindType   // type starts a type definition

	// Literals.
	KindChar
	KindString
	KindBool
	KindIdent
)

var kindNames = [...]string{
	KindIndent:             "indent",
	KindDedent:             "dedent",
	KindOpenCurlyBrace:     "{",
	KindCloseCurlyBrace:    "}",
	KindOpenParenthesis:    "(",
	KindCloseParenthesis:   ")",
	KindOpenSquareBracket:  "[",
	KindCloseSquareBracket: "]",
	KindLessThan:           "<",
	KindGreaterThan:        ">",
	KindBackslash:          `\`,
	KindPlusSign:           "+",
	KindMinusSign:          "-",
	KindAsterisk:           "*",
	KindForwardSlash:       "/",
	KindPeriod:             ".",
	KindEquals:             "=",
	KindAmpersand:          "&",
	KindVerticalBar:        "|",
	KindComma:              ",",
	KindColon:              ":",
	KindDoubleColon:        "::",
	KindSemicolon:          ";",
	KindAssign:             "<-",
	KindArrow:              "->",
	KindDefine:             "def",
	KindLambda:             "fun",
	KindUse:                "use",
	KindType:               "type",
	KindChar:               "character",
	KindString:             "string",
	KindBool:               "boolean",
	KindIdent:              "identifier",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is one lexical unit. Variable-length payloads (identifier text,
// string literal contents) live in the Output that produced the token and
// are referenced by handle, so every Token stays the same small size no
// matter how long its lexeme was.
type Token struct {
	Kind Kind

	payload uint32
}

// StringHandle references one string literal stored in an Output.
type StringHandle uint32

func charToken(r rune) Token {
	return Token{Kind: KindChar, payload: uint32(r)}
}

func boolToken(b bool) Token {
	var p uint32
	if b {
		p = 1
	}
	return Token{Kind: KindBool, payload: p}
}

func identToken(sym Symbol) Token {
	return Token{Kind: KindIdent, payload: uint32(sym)}
}

func stringToken(h StringHandle) Token {
	return Token{Kind: KindString, payload: uint32(h)}
}

// Char returns the code point of a character literal token.
func (t Token) Char() rune {
	return rune(t.payload)
}

// Bool returns the value of a boolean literal token.
func (t Token) Bool() bool {
	return t.payload != 0
}

// Ident returns the interner handle of an identifier token.
func (t Token) Ident() Symbol {
	return Symbol(t.payload)
}

// StringLit returns the storage handle of a string literal token.
func (t Token) StringLit() StringHandle {
	return StringHandle(t.payload)
}

func lookupKeyword(ident string) (Token, bool) {
	switch ident {
	case "def":
		return Token{Kind: KindDefine}, true
	case "fun":
		return Token{Kind: KindLambda}, true
	case "use":
		return Token{Kind: KindUse}, true
	case "type":
		return Token{Kind: KindType}, true
	case "true":
		return boolToken(true), true
	case "false":
		return boolToken(false), true
	}
	return Token{}, false
}
