// Package itch decodes TotalView-ITCH 5.0 session files into the
// order-flow messages the parquet converter captures. Only the message
// types that mutate a book are surfaced; everything else is consumed and
// counted.
package itch

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Sides as captured in the log: 0 = bid, 1 = ask, 255 = not carried by
// the message type.
const (
	SideBid uint8 = 0
	SideAsk uint8 = 1
	SideNA  uint8 = 255
)

// Message is one decoded order-flow message. Fields outside a type's
// layout are zero.
type Message struct {
	Type        byte
	Timestamp   uint64 // nanoseconds since midnight
	OrderRef    uint64
	NewOrderRef uint64 // 'U' only
	Side        uint8
	Price       uint32
	Qty         uint32
	Stock       string // 'A'/'F' only
}

// Parser streams an ITCH session: each message is framed by a two-byte
// big-endian length prefix.
type Parser struct {
	r      io.Reader
	buf    []byte
	total  uint64
	counts map[byte]uint64
}

func NewParser(r io.Reader) *Parser {
	return &Parser{
		r:      r,
		buf:    make([]byte, 64),
		counts: make(map[byte]uint64),
	}
}

// Next returns the next order-flow message. Messages of other types are
// skipped. The stream ends with io.EOF; a truncated frame is an error.
func (p *Parser) Next() (Message, error) {
	var hdr [2]byte
	for {
		if _, err := io.ReadFull(p.r, hdr[:]); err != nil {
			if err == io.ErrUnexpectedEOF {
				return Message{}, fmt.Errorf("truncated frame header: %w", err)
			}
			return Message{}, err
		}
		n := int(binary.BigEndian.Uint16(hdr[:]))
		if n == 0 {
			return Message{}, fmt.Errorf("zero-length message frame")
		}
		if n > len(p.buf) {
			p.buf = make([]byte, n)
		}
		body := p.buf[:n]
		if _, err := io.ReadFull(p.r, body); err != nil {
			return Message{}, fmt.Errorf("truncated %q message: %w", body[0], err)
		}

		p.total++
		p.counts[body[0]]++

		msg, ok, err := decode(body)
		if err != nil {
			return Message{}, err
		}
		if ok {
			return msg, nil
		}
	}
}

// Total returns the number of messages consumed so far, order-flow or not.
func (p *Parser) Total() uint64 {
	return p.total
}

// Counts returns per-type message counts for the converter's summary.
func (p *Parser) Counts() map[byte]uint64 {
	return p.counts
}

// decode unpacks one message body. ok is false for message types the
// converter does not capture.
func decode(b []byte) (Message, bool, error) {
	typ := b[0]

	need, order := messageLen(typ)
	if !order {
		return Message{}, false, nil
	}
	if len(b) != need {
		return Message{}, false, fmt.Errorf("%q message: got %d bytes, want %d", typ, len(b), need)
	}

	m := Message{
		Type:      typ,
		Timestamp: timestamp48(b[5:11]),
		OrderRef:  binary.BigEndian.Uint64(b[11:19]),
		Side:      SideNA,
	}

	switch typ {
	case 'A', 'F':
		m.Side = SideAsk
		if b[19] == 'B' {
			m.Side = SideBid
		}
		m.Qty = binary.BigEndian.Uint32(b[20:24])
		m.Stock = trimStock(b[24:32])
		m.Price = binary.BigEndian.Uint32(b[32:36])
	case 'E':
		m.Qty = binary.BigEndian.Uint32(b[19:23])
	case 'C':
		m.Qty = binary.BigEndian.Uint32(b[19:23])
		m.Price = binary.BigEndian.Uint32(b[32:36])
	case 'X':
		m.Qty = binary.BigEndian.Uint32(b[19:23])
	case 'D':
		// order ref only
	case 'U':
		m.NewOrderRef = binary.BigEndian.Uint64(b[19:27])
		m.Qty = binary.BigEndian.Uint32(b[27:31])
		m.Price = binary.BigEndian.Uint32(b[31:35])
	}
	return m, true, nil
}

// messageLen returns the fixed body length for a type and whether it is
// an order-flow message.
func messageLen(typ byte) (int, bool) {
	switch typ {
	case 'A':
		return 36, true
	case 'F':
		return 40, true
	case 'E':
		return 31, true
	case 'C':
		return 36, true
	case 'X':
		return 23, true
	case 'D':
		return 19, true
	case 'U':
		return 35, true
	default:
		return 0, false
	}
}

func timestamp48(b []byte) uint64 {
	return uint64(b[0])<<40 | uint64(b[1])<<32 | uint64(b[2])<<24 |
		uint64(b[3])<<16 | uint64(b[4])<<8 | uint64(b[5])
}

func trimStock(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == ' ' {
		end--
	}
	return string(b[:end])
}
