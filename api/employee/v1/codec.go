package v1

import (
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype of the JSON codec
// (content-type application/grpc+json).
const CodecName = "json"

// jsonCodec carries the plain Go messages of this package over gRPC.
type jsonCodec struct {
	marshaler runtime.JSONBuiltin
}

func (c jsonCodec) Marshal(v any) ([]byte, error) {
	return c.marshaler.Marshal(v)
}

func (c jsonCodec) Unmarshal(data []byte, v any) error {
	return c.marshaler.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
