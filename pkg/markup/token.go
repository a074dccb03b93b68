// Package markup turns rendered form markup into a flat token sequence. The
// expensive work of lexing and text buffering happens exactly once per
// document here; the resulting TokenBuffer is immutable and is re-walked by
// the tree builder once per target language.
package markup

import "encoding/xml"

// TokenKind identifies what a token contributes to the document tree.
type TokenKind string

const (
	// Text-bearing tokens. Text carries the buffered element content and
	// Lang the effective language restriction (empty means unrestricted).
	TokenCategory        TokenKind = "category"
	TokenDescription     TokenKind = "description"
	TokenDirDescription  TokenKind = "dir-description"
	TokenMetaDescription TokenKind = "meta-description"
	TokenInstructions    TokenKind = "instructions"
	TokenTitle           TokenKind = "title"
	TokenLabel           TokenKind = "label"
	TokenKeywords        TokenKind = "keywords"
	TokenLink            TokenKind = "link"
	TokenScript          TokenKind = "script"
	TokenStyle           TokenKind = "style"
	TokenIndex           TokenKind = "index"

	// TokenImplicitLabel carries plain trailing text found directly inside a
	// container; the tree builder resolves it into a label or title on close.
	TokenImplicitLabel TokenKind = "implicit-label"

	// TokenUnlisted flags the document as excluded from listings.
	TokenUnlisted TokenKind = "unlisted"

	// Container start tokens carry the raw attribute list; validation is
	// deferred to the tree builder.
	TokenSectionStart TokenKind = "section"
	TokenGroupStart   TokenKind = "group"
	TokenFieldStart   TokenKind = "field"
	TokenOptionStart  TokenKind = "option"

	// Container end tokens carry no payload.
	TokenSectionEnd TokenKind = "section-end"
	TokenGroupEnd   TokenKind = "group-end"
	TokenFieldEnd   TokenKind = "field-end"
	TokenOptionEnd  TokenKind = "option-end"
)

// Token is one domain-level event in the flattened document.
type Token struct {
	Kind TokenKind

	// Text is set on text-bearing tokens.
	Text string

	// Lang restricts a text-bearing token to one target language. Empty
	// means the token applies under every target language.
	Lang string

	// Attributes is set on container start tokens only.
	Attributes []xml.Attr
}

// TokenBuffer is the tokenized form of one document: the ordered token
// sequence plus the two language side channels. A TokenBuffer must be
// treated as read-only once Tokenize returns; builder passes for different
// languages alias it concurrently without synchronization.
type TokenBuffer struct {
	Tokens []Token

	// Language is the document's declared default language, empty when the
	// document does not declare one. The last declaration wins.
	Language string

	// Alternates lists additional language tags to produce variants for, in
	// declaration order and without deduplication.
	Alternates []string
}
