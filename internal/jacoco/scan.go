// Package jacoco scans JaCoCo XML coverage reports for counter elements.
package jacoco

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/net/html/charset"

	"github.com/farcloser/linecov/internal/types"
)

const (
	counterElement = "counter"
	xmlNamespace   = "http://www.w3.org/XML/1998/namespace"
)

var (
	// ErrSyntax is returned for input that is not well-formed XML.
	ErrSyntax = errors.New("malformed xml")
	// ErrNoRoot is returned for input without any element.
	ErrNoRoot = errors.New("no root element")
)

// Scan walks the whole document in order and returns the last counter of the given kind.
// The document is always read to the end, so a malformed tail fails even after a match.
// A nil Match with a nil error means the document holds no counter of that kind.
func Scan(reader io.Reader, kind types.Kind) (*types.Match, error) {
	decoder := xml.NewDecoder(reader)
	decoder.Strict = true
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		match    types.Match
		sawRoot  bool
		rootDone bool
		scopes   namespaces
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, fmt.Errorf("%w: line %d: %s", ErrSyntax, syntaxErr.Line, syntaxErr.Msg)
			}

			return nil, err
		}

		switch tok := token.(type) {
		case xml.CharData:
			if len(scopes) == 0 && len(bytes.TrimSpace(tok)) > 0 {
				return nil, syntaxError(decoder, "text outside the root element")
			}
		case xml.Directive:
			if sawRoot {
				return nil, syntaxError(decoder, "directive after the root element")
			}
		case xml.EndElement:
			scopes = scopes[:len(scopes)-1]
			rootDone = len(scopes) == 0
		case xml.StartElement:
			if rootDone {
				return nil, syntaxError(decoder, "element after the root element")
			}

			sawRoot = true

			scopes = scopes.push(tok)
			if name, ok := scopes.unbound(tok); !ok {
				return nil, syntaxError(decoder, fmt.Sprintf("unbound namespace prefix %q", name))
			}

			if tok.Name.Local != counterElement || attr(tok, "type") != string(kind) {
				continue
			}

			match.Count++
			match.Offset = decoder.InputOffset()
			match.Missed, match.HasMissed = lookup(tok, "missed")
			match.Covered, match.HasCovered = lookup(tok, "covered")
		}
	}

	if !sawRoot {
		return nil, ErrNoRoot
	}

	slog.Debug("jacoco.Scan", "kind", kind, "matches", match.Count)

	if match.Count == 0 {
		return nil, nil //nolint:nilnil // absence is a valid outcome
	}

	return &match, nil
}

func syntaxError(decoder *xml.Decoder, msg string) error {
	line, _ := decoder.InputPos()

	return fmt.Errorf("%w: line %d: %s", ErrSyntax, line, msg)
}

// namespaces holds the namespace URIs declared by each open element.
// The decoder resolves bound prefixes to their URI and leaves unbound ones as the bare prefix.
type namespaces [][]string

func (n namespaces) push(start xml.StartElement) namespaces {
	var declared []string

	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			declared = append(declared, a.Value)
		}
	}

	return append(n, declared)
}

// unbound returns the first prefix of start (element or attribute) that resolves to no declared namespace.
func (n namespaces) unbound(start xml.StartElement) (string, bool) {
	if !n.bound(start.Name.Space) {
		return start.Name.Space, false
	}

	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" {
			continue
		}

		if !n.bound(a.Name.Space) {
			return a.Name.Space, false
		}
	}

	return "", true
}

func (n namespaces) bound(space string) bool {
	if space == "" || space == xmlNamespace {
		return true
	}

	for _, scope := range n {
		for _, uri := range scope {
			if uri == space {
				return true
			}
		}
	}

	return false
}

func attr(start xml.StartElement, name string) string {
	value, _ := lookup(start, name)

	return value
}

func lookup(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}

	return "", false
}
