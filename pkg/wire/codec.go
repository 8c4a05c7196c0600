// Package wire carries diagram state between the graph store and the
// rendering collaborator: change batches and connect events come in,
// snapshot frames go out.
package wire

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// MaxPayload bounds a decompressed payload.
const MaxPayload = 16 << 20

var errPayloadTooLarge = fmt.Errorf("payload exceeds %d bytes", MaxPayload)

// Format is a payload encoding the renderer understands
type Format interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonFormat struct{}

func (jsonFormat) Name() string                       { return "json" }
func (jsonFormat) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonFormat) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type msgpackFormat struct{}

func (msgpackFormat) Name() string                       { return "msgpack" }
func (msgpackFormat) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackFormat) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

// Formats a webview renderer (JSON) or a native one (MessagePack) speaks.
var (
	JSON    Format = jsonFormat{}
	MsgPack Format = msgpackFormat{}
)

// FormatByName resolves "json" or "msgpack"; empty means JSON.
func FormatByName(name string) (Format, error) {
	switch name {
	case "", "json":
		return JSON, nil
	case "msgpack":
		return MsgPack, nil
	default:
		return nil, fmt.Errorf("unknown wire format %q", name)
	}
}

// Compression is applied to encoded payloads
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// ParseCompression resolves a compression name; empty means none.
func ParseCompression(name string) (Compression, error) {
	switch c := Compression(name); c {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionGzip, CompressionZstd:
		return c, nil
	default:
		return "", fmt.Errorf("unknown wire compression %q", name)
	}
}

// Pipeline encodes a value with its Format and compresses the result.
// It is safe for concurrent use.
type Pipeline struct {
	format      Format
	compression Compression

	zenc *zstd.Encoder
	zdec *zstd.Decoder
}

// NewPipeline builds a pipeline. A nil format means JSON.
func NewPipeline(format Format, compression Compression) (*Pipeline, error) {
	if format == nil {
		format = JSON
	}
	p := &Pipeline{format: format, compression: compression}

	switch compression {
	case "", CompressionNone:
		p.compression = CompressionNone
	case CompressionGzip:
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd encoder: %w", err)
		}
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxPayload))
		if err != nil {
			enc.Close()
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		p.zenc, p.zdec = enc, dec
	default:
		return nil, fmt.Errorf("unknown wire compression %q", compression)
	}
	return p, nil
}

// Plain is the uncompressed JSON pipeline.
func Plain() *Pipeline {
	return &Pipeline{format: JSON, compression: CompressionNone}
}

// Name reports the pipeline as format or format+compression.
func (p *Pipeline) Name() string {
	if p.compression == CompressionNone {
		return p.format.Name()
	}
	return p.format.Name() + "+" + string(p.compression)
}

// Encode marshals v and compresses the bytes.
func (p *Pipeline) Encode(v any) ([]byte, error) {
	data, err := p.format.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s encode: %w", p.format.Name(), err)
	}

	switch p.compression {
	case CompressionGzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		return p.zenc.EncodeAll(data, nil), nil
	default:
		return data, nil
	}
}

// Decode reverses Encode into v.
func (p *Pipeline) Decode(data []byte, v any) error {
	raw, err := p.inflate(data)
	if err != nil {
		return fmt.Errorf("%s decompress: %w", p.compression, err)
	}
	if err := p.format.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s decode: %w", p.format.Name(), err)
	}
	return nil
}

// Close releases the zstd coders.
func (p *Pipeline) Close() {
	if p.zenc != nil {
		p.zenc.Close()
	}
	if p.zdec != nil {
		p.zdec.Close()
	}
}

func (p *Pipeline) inflate(data []byte) ([]byte, error) {
	switch p.compression {
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		raw, err := io.ReadAll(io.LimitReader(zr, MaxPayload+1))
		if err != nil {
			return nil, err
		}
		if len(raw) > MaxPayload {
			return nil, errPayloadTooLarge
		}
		return raw, nil
	case CompressionZstd:
		raw, err := p.zdec.DecodeAll(data, nil)
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) {
			return nil, errPayloadTooLarge
		}
		return raw, err
	default:
		return data, nil
	}
}
