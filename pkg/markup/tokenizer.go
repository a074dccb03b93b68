package markup

import (
	"encoding/xml"
	"io"
	"strings"
)

// Tokenize consumes markup events from r and flattens them into a
// TokenBuffer. It raises no semantic errors of its own; the only failure
// mode is a malformed-markup error propagated unchanged from the underlying
// xml.Decoder, which also guarantees well-formed tag nesting so the token
// sequence never contains an unbalanced container pair.
func Tokenize(r io.Reader) (*TokenBuffer, error) {
	t := &tokenizer{buffer: &TokenBuffer{Tokens: []Token{}}}
	decoder := xml.NewDecoder(r)

	for {
		event, err := decoder.Token()
		if err == io.EOF {
			return t.buffer, nil
		}
		if err != nil {
			return nil, err
		}
		t.dispatch(event)
	}
}

type tokenizer struct {
	buffer *TokenBuffer

	// text accumulates character data for the innermost leaf element.
	// Multiple character events for one element concatenate.
	text strings.Builder

	// lang is the side slot holding the lang attribute of the language-bearing
	// leaf currently open; cleared on each such start event.
	lang string

	// Verbatim-capture state. While capturing, every event is serialized
	// back to literal markup until the matching instructions end event.
	capturing    bool
	captureDepth int
	captureBuf   strings.Builder
	captureLang  string
}

func (t *tokenizer) dispatch(event xml.Token) {
	if t.capturing {
		t.captureEvent(event)
		return
	}

	switch ev := event.(type) {
	case xml.StartElement:
		t.onStart(ev)
	case xml.EndElement:
		t.onEnd(ev)
	case xml.CharData:
		t.text.WriteString(string(ev))
	}
}

func (t *tokenizer) onStart(start xml.StartElement) {
	switch start.Name.Local {
	case "category", "description", "dir-description", "meta-description",
		"title", "label", "keywords":
		t.lang = attrValue(start.Attr, "lang")
		t.text.Reset()
	case "instructions":
		t.capturing = true
		t.captureDepth = 0
		t.captureBuf.Reset()
		t.captureLang = attrValue(start.Attr, "lang")
		t.text.Reset()
	case "link", "script", "style", "index", "language", "alternates", "unlisted":
		t.text.Reset()
	case "option":
		t.startContainer(TokenOptionStart, start)
	case "field":
		t.startContainer(TokenFieldStart, start)
	case "group":
		t.startContainer(TokenGroupStart, start)
	case "section":
		t.startContainer(TokenSectionStart, start)
	}
	// Anything else is outside the recognized vocabulary and ignored for
	// forward compatibility.
}

func (t *tokenizer) onEnd(end xml.EndElement) {
	switch end.Name.Local {
	case "category":
		t.emitText(TokenCategory, true)
	case "description":
		t.emitText(TokenDescription, true)
	case "dir-description":
		t.emitText(TokenDirDescription, true)
	case "meta-description":
		t.emitText(TokenMetaDescription, true)
	case "title":
		t.emitText(TokenTitle, true)
	case "label":
		t.emitText(TokenLabel, true)
	case "keywords":
		t.emitText(TokenKeywords, true)
	case "link":
		t.emitText(TokenLink, false)
	case "script":
		t.emitText(TokenScript, false)
	case "style":
		t.emitText(TokenStyle, false)
	case "index":
		t.emitText(TokenIndex, false)
	case "language":
		// Last declaration wins; redefinition is not an error.
		t.buffer.Language = strings.TrimSpace(t.takeText())
	case "alternates":
		t.buffer.Alternates = append(t.buffer.Alternates, strings.Fields(t.takeText())...)
	case "unlisted":
		t.takeText()
		t.emit(Token{Kind: TokenUnlisted})
	case "option":
		t.endContainer(TokenOptionEnd)
	case "field":
		t.endContainer(TokenFieldEnd)
	case "group":
		t.endContainer(TokenGroupEnd)
	case "section":
		t.endContainer(TokenSectionEnd)
	default:
		t.takeText()
	}
}

// captureEvent serializes one event back to literal markup while an
// instructions block is open, tracking nested instructions elements by name
// so only the matching end event terminates the capture.
func (t *tokenizer) captureEvent(event xml.Token) {
	switch ev := event.(type) {
	case xml.StartElement:
		if ev.Name.Local == "instructions" {
			t.captureDepth++
		}
		t.captureBuf.WriteByte('<')
		t.captureBuf.WriteString(ev.Name.Local)
		for _, attr := range ev.Attr {
			t.captureBuf.WriteByte(' ')
			t.captureBuf.WriteString(attr.Name.Local)
			t.captureBuf.WriteString(`="`)
			t.captureBuf.WriteString(attr.Value)
			t.captureBuf.WriteByte('"')
		}
		t.captureBuf.WriteByte('>')
	case xml.EndElement:
		if ev.Name.Local == "instructions" {
			if t.captureDepth == 0 {
				t.capturing = false
				t.emit(Token{
					Kind: TokenInstructions,
					Text: t.captureBuf.String(),
					Lang: normalizeLang(t.captureLang),
				})
				return
			}
			t.captureDepth--
		}
		t.captureBuf.WriteString("</")
		t.captureBuf.WriteString(ev.Name.Local)
		t.captureBuf.WriteByte('>')
	case xml.CharData:
		t.captureBuf.WriteString(string(ev))
	}
}

func (t *tokenizer) startContainer(kind TokenKind, start xml.StartElement) {
	t.text.Reset()
	t.emit(Token{Kind: kind, Attributes: append([]xml.Attr(nil), start.Attr...)})
}

// endContainer flushes trailing plain text as an implicit label before the
// end token, so the tree builder can resolve it into a label or title while
// the container is still open.
func (t *tokenizer) endContainer(kind TokenKind) {
	if text := strings.TrimSpace(t.takeText()); text != "" {
		t.emit(Token{Kind: TokenImplicitLabel, Text: text})
	}
	t.emit(Token{Kind: kind})
}

func (t *tokenizer) emitText(kind TokenKind, languageBearing bool) {
	token := Token{Kind: kind, Text: t.takeText()}
	if languageBearing {
		token.Lang = normalizeLang(t.lang)
		t.lang = ""
	}
	t.emit(token)
}

func (t *tokenizer) emit(token Token) {
	t.buffer.Tokens = append(t.buffer.Tokens, token)
}

func (t *tokenizer) takeText() string {
	text := t.text.String()
	t.text.Reset()
	return text
}

// normalizeLang maps the wildcard language tag onto "no restriction" so a
// token tagged lang="*" applies under every target language. Untagged text
// likewise stays unrestricted; a single authoring applies to every variant
// unless it opts into a specific language.
func normalizeLang(lang string) string {
	if lang == "*" {
		return ""
	}
	return lang
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}
