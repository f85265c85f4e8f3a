package request

import "strconv"

// ACL is a canned access-control directive attached to write requests.
// The set is closed; constructors in this package only accept these values.
type ACL string

const (
	ACLPrivate           ACL = "private"
	ACLPublicRead        ACL = "public-read"
	ACLPublicReadWrite   ACL = "public-read-write"
	ACLAuthenticatedRead ACL = "authenticated-read"
)

// KV is one wire-format key/value pair produced by encoding a Query.
type KV struct {
	Key   string
	Value string
}

type elementKind int

const (
	kindPair elementKind = iota
	kindDelimiter
	kindMarker
	kindMaxKeys
	kindPrefix
	kindACL
)

// Element is one semantic query element. The variant set is closed: an
// arbitrary pair, the listing controls (delimiter, marker, max-keys,
// prefix), and the ACL directive. Construct elements with the functions
// below; the zero Element encodes as an empty pair.
type Element struct {
	kind  elementKind
	key   string
	value string
	count int
	acl   ACL
}

// Query is an ordered sequence of elements. Order is preserved through
// encoding because some operations rely on a specific header being present
// exactly once and applied last.
type Query []Element

// Pair passes an arbitrary key/value through unchanged.
func Pair(key, value string) Element { return Element{kind: kindPair, key: key, value: value} }

// Delimiter groups listed keys by the given delimiter string.
func Delimiter(v string) Element { return Element{kind: kindDelimiter, value: v} }

// Marker sets the pagination cursor for a listing.
func Marker(v string) Element { return Element{kind: kindMarker, value: v} }

// MaxKeys bounds the number of keys returned by a listing.
func MaxKeys(n int) Element { return Element{kind: kindMaxKeys, count: n} }

// Prefix filters listed keys to those starting with v.
func Prefix(v string) Element { return Element{kind: kindPrefix, value: v} }

// CannedACL sets the x-amz-acl directive on a write request.
func CannedACL(acl ACL) Element { return Element{kind: kindACL, acl: acl} }

// Encode renders the query as wire pairs: exactly one pair per element,
// in input order.
func (q Query) Encode() []KV {
	pairs := make([]KV, 0, len(q))
	for _, el := range q {
		switch el.kind {
		case kindPair:
			pairs = append(pairs, KV{el.key, el.value})
		case kindDelimiter:
			pairs = append(pairs, KV{"delimiter", el.value})
		case kindMarker:
			pairs = append(pairs, KV{"marker", el.value})
		case kindMaxKeys:
			pairs = append(pairs, KV{"max-keys", strconv.Itoa(el.count)})
		case kindPrefix:
			pairs = append(pairs, KV{"prefix", el.value})
		case kindACL:
			pairs = append(pairs, KV{"x-amz-acl", string(el.acl)})
		}
	}
	return pairs
}
