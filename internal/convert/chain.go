package convert

import (
	"bytes"
	"strconv"
	"strings"
	"sync"

	"patc/internal/format"
)

type LinkKind uint8

const (
	LinkLiteral   LinkKind = iota // константный текст, спецификация не применяется
	LinkSimple                    // конвертер + format.Spec
	LinkComposite                 // вложенная цепочка + format.Spec
	LinkEmpty                     // заглушка для неизвестного слова
)

func (k LinkKind) String() string {
	switch k {
	case LinkLiteral:
		return "literal"
	case LinkSimple:
		return "simple"
	case LinkComposite:
		return "composite"
	case LinkEmpty:
		return "empty"
	default:
		return "LinkKind(?)"
	}
}

// Link is one element of a Chain. Fields are set at construction and never
// modified afterwards.
type Link[E any] struct {
	next  *Link[E]
	kind  LinkKind
	text  string // literal text, or the conversion word for simple/empty
	conv  Converter[E]
	spec  format.Spec
	inner *Chain[E]
}

func NewLiteral[E any](text string) *Link[E] {
	return &Link[E]{kind: LinkLiteral, text: text}
}

func NewSimple[E any](word string, conv Converter[E], spec format.Spec) *Link[E] {
	return &Link[E]{kind: LinkSimple, text: word, conv: conv, spec: spec}
}

func NewComposite[E any](inner *Chain[E], spec format.Spec) *Link[E] {
	if inner == nil {
		inner = &Chain[E]{}
	}
	return &Link[E]{kind: LinkComposite, inner: inner, spec: spec}
}

// NewEmpty is the stand-in for a conversion word that could not be resolved.
// It always renders the empty string.
func NewEmpty[E any](word string) *Link[E] {
	return &Link[E]{kind: LinkEmpty, text: word}
}

func (l *Link[E]) Next() *Link[E]          { return l.next }
func (l *Link[E]) Kind() LinkKind          { return l.kind }
func (l *Link[E]) Spec() format.Spec       { return l.spec }
func (l *Link[E]) Inner() *Chain[E]        { return l.inner }
func (l *Link[E]) Converter() Converter[E] { return l.conv }

// Text returns the literal text, or the conversion word of simple and empty links.
func (l *Link[E]) Text() string { return l.text }

var scratchPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// буферы больше этого не возвращаем в пул
const maxPooledScratch = 64 << 10

// WriteTo appends the output of this single link to buf.
func (l *Link[E]) WriteTo(buf *bytes.Buffer, event E) {
	switch l.kind {
	case LinkLiteral:
		buf.WriteString(l.text)
	case LinkSimple:
		s := l.conv.Convert(event)
		if l.spec.IsZero() {
			buf.WriteString(s)
			return
		}
		format.Write(buf, l.spec, s)
	case LinkComposite:
		scratch, _ := scratchPool.Get().(*bytes.Buffer)
		scratch.Reset()
		l.inner.WriteTo(scratch, event)
		if l.spec.IsZero() {
			buf.Write(scratch.Bytes())
		} else {
			format.Write(buf, l.spec, scratch.String())
		}
		if scratch.Cap() <= maxPooledScratch {
			scratchPool.Put(scratch)
		}
	case LinkEmpty:
	}
}

// Chain is a compiled pattern: an append-only singly linked list of links.
type Chain[E any] struct {
	head *Link[E]
	tail *Link[E]
	n    int
}

// Append links l at the end of the chain. Only the compiler appends;
// a chain handed out to callers is never modified.
func (c *Chain[E]) Append(l *Link[E]) {
	if l == nil {
		return
	}
	if c.tail == nil {
		c.head = l
	} else {
		c.tail.next = l
	}
	c.tail = l
	c.n++
}

func (c *Chain[E]) Head() *Link[E] {
	if c == nil {
		return nil
	}
	return c.head
}

// Len returns the number of top-level links.
func (c *Chain[E]) Len() int {
	if c == nil {
		return 0
	}
	return c.n
}

// WriteTo renders every link in order into buf. buf must not be shared with
// another in-flight render.
func (c *Chain[E]) WriteTo(buf *bytes.Buffer, event E) {
	if c == nil {
		return
	}
	for l := c.head; l != nil; l = l.next {
		l.WriteTo(buf, event)
	}
}

// Render returns the rendered text for event.
func (c *Chain[E]) Render(event E) string {
	var buf bytes.Buffer
	c.WriteTo(&buf, event)
	return buf.String()
}

// String describes the chain structure, e.g.
// `literal("abc ") -> composite[-4.10](literal("ABC ") -> simple[hello])`.
func (c *Chain[E]) String() string {
	var sb strings.Builder
	c.describe(&sb)
	return sb.String()
}

func (c *Chain[E]) describe(sb *strings.Builder) {
	for l := c.Head(); l != nil; l = l.next {
		if l != c.head {
			sb.WriteString(" -> ")
		}
		sb.WriteString(l.kind.String())
		switch l.kind {
		case LinkLiteral:
			sb.WriteString("(" + strconv.Quote(l.text) + ")")
		case LinkSimple, LinkEmpty:
			sb.WriteString("[" + l.text)
			if !l.spec.IsZero() {
				sb.WriteString(" " + l.spec.String())
			}
			sb.WriteString("]")
		case LinkComposite:
			if !l.spec.IsZero() {
				sb.WriteString("[" + l.spec.String() + "]")
			}
			sb.WriteString("(")
			l.inner.describe(sb)
			sb.WriteString(")")
		}
	}
}
