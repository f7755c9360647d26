package service

import (
	"encoding/json"
	"net/http"

	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"
)

// format is a negotiated response encoding.
type format int

const (
	formatJSON format = iota
	formatYAML
)

const (
	mimeJSON = "application/json"
	mimeYAML = "application/x-yaml"
)

// negotiate picks a response format from the request's Accept header.
// An absent header defaults to JSON. Anything other than the two
// supported media types is reported as an error so the handler can
// reply 400 with a plain-text explanation.
func negotiate(r *http.Request) (format, error) {
	accept := r.Header.Get("Accept")
	switch accept {
	case "", mimeJSON:
		return formatJSON, nil
	case mimeYAML:
		return formatYAML, nil
	default:
		return 0, errUnsupportedAccept(accept)
	}
}

type errUnsupportedAccept string

func (e errUnsupportedAccept) Error() string {
	return "unsupported Accept header: " + string(e)
}

// writeBody serializes payload per f, sets Content-Type, X-Operation
// and an ETag derived from the serialized body, and writes status.
func writeBody(w http.ResponseWriter, status int, f format, op operation, payload any) {
	body, contentType := encode(f, payload)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Operation", string(op))
	w.Header().Set("ETag", etag(body))
	w.WriteHeader(status)
	w.Write(body)
}

func encode(f format, payload any) (body []byte, contentType string) {
	switch f {
	case formatYAML:
		out, err := yaml.Marshal(payload)
		if err != nil {
			return []byte(err.Error()), "text/plain; charset=utf-8"
		}
		return append([]byte("---\n"), out...), mimeYAML
	default:
		out, err := json.Marshal(payload)
		if err != nil {
			return []byte(err.Error()), "text/plain; charset=utf-8"
		}
		return out, mimeJSON
	}
}

// etag is a cheap, non-cryptographic cache-validation hash of the
// response body. The on-disk format has no checksum by design (see
// the store package); this is an unrelated, purely HTTP-layer aid.
func etag(body []byte) string {
	const hexDigits = "0123456789abcdef"
	sum := xxh3.Hash(body)
	out := make([]byte, 0, 18)
	out = append(out, '"')
	for i := 7; i >= 0; i-- {
		b := byte(sum >> (uint(i) * 8))
		out = append(out, hexDigits[b>>4], hexDigits[b&0xf])
	}
	out = append(out, '"')
	return string(out)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	http.Error(w, msg, status)
}
