package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"patc/internal/source"
)

// Cursor представляет собой позицию в шаблоне
type Cursor struct {
	Pattern *source.Pattern
	Off     uint32
	// Limit is the exclusive upper bound for Off; defaults to len(Pattern.Text).
	Limit uint32
}

// NewCursor creates a new cursor for the provided pattern.
func NewCursor(p *source.Pattern) Cursor {
	limit, err := safecast.Conv[uint32](len(p.Text))
	if err != nil {
		panic(fmt.Errorf("len pattern text overflow: %w", err))
	}
	return Cursor{
		Pattern: p,
		Off:     0,
		Limit:   limit,
	}
}

// EOF проверяет, достигнут ли конец шаблона
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Pattern.Text[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.Pattern.Text[c.Off], c.Pattern.Text[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Pattern.Text[c.Off]
	c.Off++
	return b
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		Pattern: c.Pattern.ID,
		Start:   uint32(m),
		End:     c.Off,
	}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Pattern.Text[c.Off] == b {
		c.Off++
		return true
	}
	return false
}
