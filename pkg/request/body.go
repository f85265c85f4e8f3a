package request

import (
	"encoding/json"

	"github.com/s3kit/s3kit/pkg/errors"
)

// Body is a request payload tagged with its mimetype. The zero value is
// the absent body. Construction is pure: JSONBody serializes immediately
// and records any marshal failure in the body itself, which the dispatcher
// surfaces as a decode error before any I/O happens.
type Body struct {
	Mime    string
	Content []byte

	present bool
	err     *errors.Error
}

// NoBody is the absent payload.
var NoBody = Body{}

// StringBody builds a payload with a caller-chosen mimetype.
func StringBody(mime, text string) Body {
	return Body{Mime: mime, Content: []byte(text), present: true}
}

// HTMLBody builds a UTF-8 HTML payload.
func HTMLBody(text string) Body {
	return StringBody("text/html;charset=utf-8", text)
}

// JSONBody serializes v to its JSON string form with an application/json
// mimetype.
func JSONBody(v interface{}) Body {
	data, err := json.Marshal(v)
	if err != nil {
		return Body{err: errors.Decodef("JSONBody", "marshal body: %v", err)}
	}
	return Body{Mime: "application/json", Content: data, present: true}
}

// Present reports whether a payload exists.
func (b Body) Present() bool { return b.present }

// Err returns the construction failure recorded in the body, if any.
func (b Body) Err() *errors.Error { return b.err }
