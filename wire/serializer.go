package wire

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Serializer satisfies actor.Serializer without importing package actor,
// so either shipped implementation can be handed to a Delegate built in
// package delegate.
type Serializer interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// ProtoSerializer marshals values implementing proto.Message. It is the
// right choice for messages generated from a .proto schema shared across
// peers built from different source trees.
type ProtoSerializer struct{}

func (ProtoSerializer) Marshal(v any) ([]byte, error) {
	m, ok := v.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("wire: %T does not implement proto.Message", v)
	}
	return proto.Marshal(m)
}

func (ProtoSerializer) Unmarshal(data []byte, v any) error {
	m, ok := v.(proto.Message)
	if !ok {
		return fmt.Errorf("wire: %T does not implement proto.Message", v)
	}
	return proto.Unmarshal(data, m)
}

// GobSerializer marshals any concrete Go value via encoding/gob. It is the
// default for messages that have no generated protobuf type: gob needs no
// schema compiler and reflects over arbitrary exported struct fields,
// which protobuf and every other serialization library in the retrieval
// pack cannot do without one.
type GobSerializer struct{}

func (GobSerializer) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("wire: gob encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (GobSerializer) Unmarshal(data []byte, v any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("wire: gob decode: %w", err)
	}
	return nil
}
