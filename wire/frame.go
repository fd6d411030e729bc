// Package wire implements the length-prefixed binary framing and payload
// serializers used to carry actor messages across a TCP connection.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Request is one outbound call: an actor id, a wire-level message type id
// (the sending side's Go type name for the message), and its serialized
// payload. RequestID lets a peer match a Response to the call that
// produced it, even if a future revision multiplexes several requests
// over one connection.
type Request struct {
	RequestID     uuid.UUID
	ActorID       uint64
	MessageTypeID string
	Payload       []byte
}

// ErrKind discriminates the reason a Response carries a non-empty Err, so
// a caller can recover a sentinel error instead of only a human-readable
// string.
type ErrKind uint8

const (
	// ErrKindNone means Err is empty and Payload is the real response.
	ErrKindNone ErrKind = iota
	// ErrKindNotRegistered means the peer has no invoker for the
	// requested (actor id, message type id) pair.
	ErrKindNotRegistered
	// ErrKindHandler means the invoker ran and itself returned an error.
	ErrKindHandler
)

// Response answers exactly one Request, echoing its RequestID. Err is the
// empty string on success; a non-empty Err means the peer could not
// produce a Payload (no such actor, no such registration, handler error),
// and ErrKind says which.
type Response struct {
	RequestID uuid.UUID
	ErrKind   ErrKind
	Err       string
	Payload   []byte
}

// WriteRequest writes req to w using the frame:
//
//	TotalLen int32 | RequestID [16]byte | ActorID uint64 | MsgTypeIDLen int32 | MsgTypeID []byte | PayloadLen int32 | Payload []byte
func WriteRequest(w io.Writer, req Request) error {
	var body bytes.Buffer
	body.Write(req.RequestID[:])
	if err := binary.Write(&body, binary.BigEndian, req.ActorID); err != nil {
		return fmt.Errorf("wire: write actor id: %w", err)
	}
	if err := writeLenPrefixed(&body, []byte(req.MessageTypeID)); err != nil {
		return fmt.Errorf("wire: write message type id: %w", err)
	}
	if err := writeLenPrefixed(&body, req.Payload); err != nil {
		return fmt.Errorf("wire: write request payload: %w", err)
	}
	return writeFrame(w, body.Bytes())
}

// ReadRequest reads one Request frame from r.
func ReadRequest(r io.Reader) (Request, error) {
	var req Request

	body, err := readFrame(r)
	if err != nil {
		return req, err
	}
	br := bytes.NewReader(body)

	if _, err := io.ReadFull(br, req.RequestID[:]); err != nil {
		return req, fmt.Errorf("wire: read request id: %w", err)
	}
	if err := binary.Read(br, binary.BigEndian, &req.ActorID); err != nil {
		return req, fmt.Errorf("wire: read actor id: %w", err)
	}
	msgType, err := readLenPrefixed(br)
	if err != nil {
		return req, fmt.Errorf("wire: read message type id: %w", err)
	}
	req.MessageTypeID = string(msgType)
	payload, err := readLenPrefixed(br)
	if err != nil {
		return req, fmt.Errorf("wire: read request payload: %w", err)
	}
	req.Payload = payload

	return req, nil
}

// WriteResponse writes resp to w using the frame:
//
//	TotalLen int32 | RequestID [16]byte | ErrKind byte | ErrLen int32 | Err []byte | PayloadLen int32 | Payload []byte
func WriteResponse(w io.Writer, resp Response) error {
	var body bytes.Buffer
	body.Write(resp.RequestID[:])
	if err := body.WriteByte(byte(resp.ErrKind)); err != nil {
		return fmt.Errorf("wire: write response error kind: %w", err)
	}
	if err := writeLenPrefixed(&body, []byte(resp.Err)); err != nil {
		return fmt.Errorf("wire: write response error: %w", err)
	}
	if err := writeLenPrefixed(&body, resp.Payload); err != nil {
		return fmt.Errorf("wire: write response payload: %w", err)
	}
	return writeFrame(w, body.Bytes())
}

// ReadResponse reads one Response frame from r.
func ReadResponse(r io.Reader) (Response, error) {
	var resp Response

	body, err := readFrame(r)
	if err != nil {
		return resp, err
	}
	br := bytes.NewReader(body)

	if _, err := io.ReadFull(br, resp.RequestID[:]); err != nil {
		return resp, fmt.Errorf("wire: read response id: %w", err)
	}
	kind, err := br.ReadByte()
	if err != nil {
		return resp, fmt.Errorf("wire: read response error kind: %w", err)
	}
	resp.ErrKind = ErrKind(kind)
	errBytes, err := readLenPrefixed(br)
	if err != nil {
		return resp, fmt.Errorf("wire: read response error: %w", err)
	}
	resp.Err = string(errBytes)
	payload, err := readLenPrefixed(br)
	if err != nil {
		return resp, fmt.Errorf("wire: read response payload: %w", err)
	}
	resp.Payload = payload

	return resp, nil
}

func writeFrame(w io.Writer, body []byte) error {
	if err := binary.Write(w, binary.BigEndian, int32(len(body))); err != nil {
		return fmt.Errorf("wire: write frame length: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("wire: write frame body: %w", err)
	}
	return nil
}

func readFrame(r io.Reader) ([]byte, error) {
	var totalLen int32
	if err := binary.Read(r, binary.BigEndian, &totalLen); err != nil {
		return nil, fmt.Errorf("wire: read frame length: %w", err)
	}
	if totalLen < 0 {
		return nil, fmt.Errorf("wire: invalid frame length %d", totalLen)
	}
	body := make([]byte, totalLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("wire: read frame body: %w", err)
	}
	return body, nil
}

func writeLenPrefixed(w io.Writer, data []byte) error {
	if err := binary.Write(w, binary.BigEndian, int32(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func readLenPrefixed(r io.Reader) ([]byte, error) {
	var n int32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("wire: invalid length-prefixed field length %d", n)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}
