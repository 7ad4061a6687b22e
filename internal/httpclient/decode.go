package httpclient

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/aleister1102/seatwatch/internal/common"
	"golang.org/x/net/html/charset"
)

// decompressBody wraps body according to the Content-Encoding header.
// Unknown encodings are passed through untouched.
func decompressBody(body io.Reader, contentEncoding string) (io.Reader, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "gzip", "x-gzip":
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, noop, common.WrapError(err, "failed to open gzip body")
		}
		return gz, gz.Close, nil
	case "br":
		return brotli.NewReader(body), noop, nil
	default:
		return body, noop, nil
	}
}

// toUTF8 transcodes raw bytes to UTF-8 using the charset announced by the
// Content-Type header or sniffed from the document. UTF-8 is the fallback.
func toUTF8(raw []byte, contentType string) (string, error) {
	reader, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return string(raw), nil
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", common.WrapError(err, "failed to decode response charset")
	}
	return string(decoded), nil
}
