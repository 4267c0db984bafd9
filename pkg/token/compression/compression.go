package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

var (
	ErrUnknownCodec = errors.New("unknown compression codec")
	ErrCorruptData  = errors.New("corrupt compressed payload")
)

// Header values written to the "zip" token header
const (
	DeflateName = "DEF"
	GZIPName    = "GZIP"
)

// Codec compresses and decompresses token payloads
type Codec interface {
	// Name returns the value written to the "zip" header
	Name() string

	Compress(data []byte) ([]byte, error)

	// Decompress inflates data. Streams that end without their trailer
	// are accepted as long as they produced output.
	Decompress(data []byte) ([]byte, error)
}

var (
	Deflate Codec = deflateCodec{}
	GZIP    Codec = gzipCodec{}
)

var codecs = map[string]Codec{
	"def":     Deflate,
	"deflate": Deflate,
	"gzip":    GZIP,
}

// Lookup returns the codec for a header value or option name.
// Names are matched case-insensitively.
func Lookup(name string) (Codec, error) {
	codec, ok := codecs[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, name)
	}
	return codec, nil
}

type deflateCodec struct{}

func (deflateCodec) Name() string { return DeflateName }

func (deflateCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("failed to create deflate writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to deflate payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to deflate payload: %w", err)
	}
	return buf.Bytes(), nil
}

func (deflateCodec) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	defer r.Close()
	return readAll(r)
}

type gzipCodec struct{}

func (gzipCodec) Name() string { return GZIPName }

func (gzipCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("failed to gzip payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to gzip payload: %w", err)
	}
	return buf.Bytes(), nil
}

func (gzipCodec) Decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	defer r.Close()
	return readAll(r)
}

func readAll(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(r)
	if err != nil {
		// sync-flushed streams stop before the checksum trailer
		if errors.Is(err, io.ErrUnexpectedEOF) && len(out) > 0 {
			return out, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return out, nil
}
