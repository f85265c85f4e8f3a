package request

import (
	"net/http"

	"github.com/s3kit/s3kit/pkg/listing"
)

// ObjectPath joins a bucket and key into a request path. The segments are
// concatenated verbatim: keys containing '/' or reserved characters pass
// through unescaped, matching the service's path-style addressing. This is
// a documented limitation, not an escaping bug.
func ObjectPath(bucket, key string) string {
	return "/" + bucket + "/" + key
}

// ListKeys lists the keys in a bucket. Chain WithQuery(Prefix/Marker/
// MaxKeys/Delimiter) calls to page and filter the listing.
func ListKeys(bucket string) Request[listing.KeyList] {
	return Parser("ListKeys", http.MethodGet, "/"+bucket+"/", NoBody, listing.Parse)
}

// GetObject fetches an object's body as a string.
func GetObject(bucket, key string) Request[string] {
	return String("GetObject", http.MethodGet, ObjectPath(bucket, key), NoBody)
}

// GetFullObject fetches an object and hands both the response metadata and
// body to the caller-supplied decoder. It is the escape hatch for
// operations needing headers or status alongside the body.
func GetFullObject[T any](bucket, key string, decode DecodeFunc[T]) Request[T] {
	return New("GetFullObject", http.MethodGet, ObjectPath(bucket, key), NoBody, decode)
}

// ObjectWithHeaders pairs an object body with its response headers.
type ObjectWithHeaders struct {
	Body    string
	Headers map[string]string
}

// GetObjectWithHeaders fetches an object's body together with its response
// headers.
func GetObjectWithHeaders(bucket, key string) Request[ObjectWithHeaders] {
	return GetFullObject(bucket, key, func(meta Metadata, raw []byte) (ObjectWithHeaders, error) {
		return ObjectWithHeaders{Body: string(raw), Headers: flattenHeaders(meta.Headers)}, nil
	})
}

// GetHeaders fetches only an object's response headers. The underlying
// method is GET, so the full body is transferred and discarded; this is
// deliberately not a HEAD request.
func GetHeaders(bucket, key string) Request[map[string]string] {
	return GetFullObject(bucket, key, func(meta Metadata, _ []byte) (map[string]string, error) {
		return flattenHeaders(meta.Headers), nil
	})
}

// PutObject writes an object with default (private) permissions; no ACL
// header is added.
func PutObject(bucket, key string, body Body) Request[string] {
	return String("PutObject", http.MethodPut, ObjectPath(bucket, key), body)
}

// PutPublicObject writes an object readable by anyone: PutObject plus a
// single public-read ACL header.
func PutPublicObject(bucket, key string, body Body) Request[string] {
	return PutObject(bucket, key, body).WithHeaders(Query{CannedACL(ACLPublicRead)})
}

// PutHTMLObject publishes an HTML document publicly.
func PutHTMLObject(bucket, key, html string) Request[string] {
	return PutPublicObject(bucket, key, HTMLBody(html))
}

// DeleteObject removes an object.
func DeleteObject(bucket, key string) Request[string] {
	return String("DeleteObject", http.MethodDelete, ObjectPath(bucket, key), NoBody)
}

// flattenHeaders reduces a multi-valued header set to its first values.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}
