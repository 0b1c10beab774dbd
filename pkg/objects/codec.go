package objects

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/utkarsh5026/gitproject/pkg/common/err"
)

// Codec is the transparent compression applied to payloads on disk.
type Codec string

const (
	CodecNone Codec = "none"
	CodecGzip Codec = "gzip"
	CodecZstd Codec = "zstd"

	DefaultCodec = CodecGzip
)

// ParseCodec maps a configuration value to a Codec. Empty selects the default.
func ParseCodec(name string) (Codec, error) {
	switch c := Codec(strings.ToLower(strings.TrimSpace(name))); c {
	case "":
		return DefaultCodec, nil
	case CodecNone, CodecGzip, CodecZstd:
		return c, nil
	default:
		return "", err.New(pkgName, err.CodeInvalidInput, "ParseCodec", "unknown compression codec: "+name, nil)
	}
}

func (c Codec) String() string {
	return string(c)
}

// Encode compresses data.
func (c Codec) Encode(data []byte) ([]byte, error) {
	switch c {
	case CodecNone:
		return append([]byte(nil), data...), nil
	case CodecGzip:
		return gzipEncode(data)
	case CodecZstd:
		enc, e := zstd.NewWriter(nil)
		if e != nil {
			return nil, e
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("unsupported codec %q", string(c))
	}
}

// Decode reverses Encode.
func (c Codec) Decode(data []byte) ([]byte, error) {
	switch c {
	case CodecNone:
		return append([]byte(nil), data...), nil
	case CodecGzip:
		r, e := gzip.NewReader(bytes.NewReader(data))
		if e != nil {
			return nil, fmt.Errorf("gzip header: %w", e)
		}
		defer r.Close()
		return io.ReadAll(r)
	case CodecZstd:
		dec, e := zstd.NewReader(nil)
		if e != nil {
			return nil, e
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return nil, fmt.Errorf("unsupported codec %q", string(c))
	}
}

func gzipEncode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, e := w.Write(data); e != nil {
		w.Close()
		return nil, fmt.Errorf("compress: %w", e)
	}
	if e := w.Close(); e != nil {
		return nil, fmt.Errorf("finalize compression: %w", e)
	}
	return buf.Bytes(), nil
}
