// Package net implements the TCP wire protocol between fenrir-cli and
// fenrir-gatewayd: fixed-width, big-endian framed messages carrying
// order submissions, cancels, and engine reports. Adapted from the
// UUID/float64 wire format down to the spec's caller-supplied uint64
// order IDs and integer tick prices.
package net

import (
	"encoding/binary"
	"errors"

	"github.com/fenrir-lob/fenrir/internal/domain"
	"github.com/fenrir-lob/fenrir/internal/sink"
)

var (
	ErrInvalidMessageType = errors.New("invalid message type")
	ErrMessageTooShort    = errors.New("message too short for its type")
)

// MessageType identifies a client-to-gateway message.
type MessageType uint16

const (
	Heartbeat MessageType = iota
	NewOrder
	CancelOrder
)

// Message format lengths, header included.
const (
	BaseMessageHeaderLen  = 2
	NewOrderMessageLen    = 2 + 8 + 4 + 4 + 1
	CancelOrderMessageLen = 2 + 8
)

// Message is any parsed client-to-gateway message.
type Message interface {
	GetType() MessageType
}

type BaseMessage struct {
	TypeOf MessageType
}

func (m BaseMessage) GetType() MessageType { return m.TypeOf }

// NewOrderMessage is the wire form of domain.Order.
type NewOrderMessage struct {
	BaseMessage
	ID       uint64
	Price    int32
	Quantity uint32
	Side     domain.Side
}

func (m *NewOrderMessage) Order() domain.Order {
	return domain.Order{ID: m.ID, Price: m.Price, Quantity: m.Quantity, Side: m.Side}
}

// Serialize encodes a NewOrderMessage for the wire.
func (m *NewOrderMessage) Serialize() []byte {
	buf := make([]byte, NewOrderMessageLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(NewOrder))
	binary.BigEndian.PutUint64(buf[2:10], m.ID)
	binary.BigEndian.PutUint32(buf[10:14], uint32(m.Price))
	binary.BigEndian.PutUint32(buf[14:18], m.Quantity)
	buf[18] = byte(m.Side)
	return buf
}

func parseNewOrder(body []byte) (NewOrderMessage, error) {
	if len(body) < NewOrderMessageLen-BaseMessageHeaderLen {
		return NewOrderMessage{}, ErrMessageTooShort
	}
	return NewOrderMessage{
		BaseMessage: BaseMessage{TypeOf: NewOrder},
		ID:          binary.BigEndian.Uint64(body[0:8]),
		Price:       int32(binary.BigEndian.Uint32(body[8:12])),
		Quantity:    binary.BigEndian.Uint32(body[12:16]),
		Side:        domain.Side(body[16]),
	}, nil
}

// CancelOrderMessage requests cancellation of a resting order by ID.
type CancelOrderMessage struct {
	BaseMessage
	ID uint64
}

func (m *CancelOrderMessage) Serialize() []byte {
	buf := make([]byte, CancelOrderMessageLen)
	binary.BigEndian.PutUint16(buf[0:2], uint16(CancelOrder))
	binary.BigEndian.PutUint64(buf[2:10], m.ID)
	return buf
}

func parseCancelOrder(body []byte) (CancelOrderMessage, error) {
	if len(body) < CancelOrderMessageLen-BaseMessageHeaderLen {
		return CancelOrderMessage{}, ErrMessageTooShort
	}
	return CancelOrderMessage{
		BaseMessage: BaseMessage{TypeOf: CancelOrder},
		ID:          binary.BigEndian.Uint64(body[0:8]),
	}, nil
}

// ParseMessage dispatches on the leading type tag and parses the body.
func ParseMessage(msg []byte) (Message, error) {
	if len(msg) < BaseMessageHeaderLen {
		return nil, ErrMessageTooShort
	}
	typeOf := MessageType(binary.BigEndian.Uint16(msg[0:2]))
	body := msg[2:]
	switch typeOf {
	case NewOrder:
		return parseNewOrder(body)
	case CancelOrder:
		return parseCancelOrder(body)
	default:
		return nil, ErrInvalidMessageType
	}
}

// ReportKind identifies which sink.Event a Report carries.
type ReportKind uint8

const (
	ReportOrderAdded ReportKind = iota
	ReportOrderCancelled
	ReportOrderRejected
	ReportTrade
	ReportOrderBookUpdate
)

// Report is the fixed-width wire form of a sink.Event. Every field is
// present on every Report; unused fields for a given Kind are zero.
type Report struct {
	Kind        ReportKind
	ID          uint64
	AggressorID uint64
	PassiveID   uint64
	Price       int32
	Qty         uint32
	Volume      uint32
	Side        domain.Side
	Reason      domain.RejectReason
}

// ReportLen is the fixed wire size of a Report.
const ReportLen = 1 + 8 + 8 + 8 + 4 + 4 + 4 + 1 + 1

func kindForEvent(kind sink.EventKind) ReportKind {
	switch kind {
	case sink.KindOrderAdded:
		return ReportOrderAdded
	case sink.KindOrderCancelled:
		return ReportOrderCancelled
	case sink.KindOrderRejected:
		return ReportOrderRejected
	case sink.KindTrade:
		return ReportTrade
	default:
		return ReportOrderBookUpdate
	}
}

// ReportFromEvent converts a collected sink.Event into its wire Report.
func ReportFromEvent(e sink.Event) Report {
	return Report{
		Kind:        kindForEvent(e.Kind),
		ID:          e.ID,
		AggressorID: e.AggressorID,
		PassiveID:   e.PassiveID,
		Price:       e.Price,
		Qty:         e.Qty,
		Volume:      e.Volume,
		Side:        e.Side,
		Reason:      e.Reason,
	}
}

// Serialize encodes the report for the wire.
func (r *Report) Serialize() []byte {
	buf := make([]byte, ReportLen)
	buf[0] = byte(r.Kind)
	binary.BigEndian.PutUint64(buf[1:9], r.ID)
	binary.BigEndian.PutUint64(buf[9:17], r.AggressorID)
	binary.BigEndian.PutUint64(buf[17:25], r.PassiveID)
	binary.BigEndian.PutUint32(buf[25:29], uint32(r.Price))
	binary.BigEndian.PutUint32(buf[29:33], r.Qty)
	binary.BigEndian.PutUint32(buf[33:37], r.Volume)
	buf[37] = byte(r.Side)
	buf[38] = byte(r.Reason)
	return buf
}

// ParseReport decodes a fixed-width Report frame.
func ParseReport(buf []byte) (Report, error) {
	if len(buf) < ReportLen {
		return Report{}, ErrMessageTooShort
	}
	return Report{
		Kind:        ReportKind(buf[0]),
		ID:          binary.BigEndian.Uint64(buf[1:9]),
		AggressorID: binary.BigEndian.Uint64(buf[9:17]),
		PassiveID:   binary.BigEndian.Uint64(buf[17:25]),
		Price:       int32(binary.BigEndian.Uint32(buf[25:29])),
		Qty:         binary.BigEndian.Uint32(buf[29:33]),
		Volume:      binary.BigEndian.Uint32(buf[33:37]),
		Side:        domain.Side(buf[37]),
		Reason:      domain.RejectReason(buf[38]),
	}, nil
}
