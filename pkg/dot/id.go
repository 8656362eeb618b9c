package dot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Markup marks a string as HTML-like markup. Used as an identifier or
// attribute value, Markup("<table>...</table>") serializes as
// <<table>...</table>> rather than as a quoted string.
type Markup string

// Identifier values accepted throughout the package: string, bool, any
// integer or float type, Markup, or *Nonce. Anything else is rejected
// with ErrInvalidID.

// normID is the normalized form of an identifier: either literal DOT
// text, bare or quoted as needed, or an unresolved nonce. The zero value
// means absent. normID is comparable and serves as the node, subgraph,
// and role key type.
type normID struct {
	text  string
	nonce *Nonce
}

func (id normID) isZero() bool {
	return id.text == "" && id.nonce == nil
}

// compareIDs orders normalized identifiers: text before nonces, text
// lexicographically, nonces by creation order.
func compareIDs(a, b normID) int {
	switch {
	case a.nonce == nil && b.nonce == nil:
		return strings.Compare(a.text, b.text)
	case a.nonce == nil:
		return -1
	case b.nonce == nil:
		return 1
	case a.nonce.seq < b.nonce.seq:
		return -1
	case a.nonce.seq > b.nonce.seq:
		return 1
	default:
		return 0
	}
}

// debugID renders an identifier for error messages only. Nonces have no
// resolved text outside a serialization pass.
func debugID(id normID) string {
	if id.nonce != nil {
		return fmt.Sprintf("nonce(%s#%d)", id.nonce.prefix, id.nonce.seq)
	}
	return id.text
}

var simpleIDRe = regexp.MustCompile(
	`^(?:[a-zA-Z_][a-zA-Z0-9_]*|-?(?:\.[0-9]+|[0-9]+(?:\.[0-9]*)?))$`)

var reservedIDs = map[string]bool{
	"strict": true, "graph": true, "digraph": true,
	"node": true, "edge": true, "subgraph": true,
}

// Attribute values that are general text. They serialize quoted even
// when bare text would be legal, so edits to the generated DOT stay
// safe.
var textAttrs = map[string]bool{
	"label": true, "headlabel": true, "taillabel": true,
	"xlabel": true, "comment": true,
}

// normalizeID validates an identifier value and produces its normalized
// form. The what argument names the identifier's position for error
// messages.
func normalizeID(v any, what string) (normID, error) {
	switch x := v.(type) {
	case *Nonce:
		if x == nil {
			break
		}
		return normID{nonce: x}, nil
	case bool:
		if x {
			return normID{text: "true"}, nil
		}
		return normID{text: "false"}, nil
	case Markup:
		return normID{text: "<" + string(x) + ">"}, nil
	case string:
		return normID{text: normText(x)}, nil
	case int:
		return normID{text: normText(strconv.Itoa(x))}, nil
	case int8:
		return normID{text: normText(strconv.FormatInt(int64(x), 10))}, nil
	case int16:
		return normID{text: normText(strconv.FormatInt(int64(x), 10))}, nil
	case int32:
		return normID{text: normText(strconv.FormatInt(int64(x), 10))}, nil
	case int64:
		return normID{text: normText(strconv.FormatInt(x, 10))}, nil
	case uint:
		return normID{text: normText(strconv.FormatUint(uint64(x), 10))}, nil
	case uint8:
		return normID{text: normText(strconv.FormatUint(uint64(x), 10))}, nil
	case uint16:
		return normID{text: normText(strconv.FormatUint(uint64(x), 10))}, nil
	case uint32:
		return normID{text: normText(strconv.FormatUint(uint64(x), 10))}, nil
	case uint64:
		return normID{text: normText(strconv.FormatUint(x, 10))}, nil
	case float32:
		return normID{text: normText(strconv.FormatFloat(float64(x), 'g', -1, 32))}, nil
	case float64:
		return normID{text: normText(strconv.FormatFloat(x, 'g', -1, 64))}, nil
	}
	return normID{}, fmt.Errorf("%s %v: %w", what, v, ErrInvalidID)
}

// normText converts arbitrary text to its DOT form: bare when the text
// is a non-reserved simple identifier, otherwise quoted with backslash,
// double quote, and newline sequences escaped. A lone CR survives inside
// quotes; Graphviz accepts it there.
func normText(s string) string {
	if simpleIDRe.MatchString(s) && !reservedIDs[s] {
		return s
	}
	if strings.ContainsAny(s, "\"\n\r\\") {
		s = strings.ReplaceAll(s, `\`, `\\`)
		s = strings.ReplaceAll(s, `"`, `\"`)
		s = strings.ReplaceAll(s, "\r\n", `\n`)
		s = strings.ReplaceAll(s, "\n", `\n`)
	}
	return `"` + s + `"`
}

// preferQuoted returns the quoted form of a normalized identifier unless
// it is markup or already quoted. Normalized text never needs escaping
// when quoted.
func preferQuoted(id string) string {
	if id != "" && id[0] != '"' && id[0] != '<' {
		return `"` + id + `"`
	}
	return id
}
