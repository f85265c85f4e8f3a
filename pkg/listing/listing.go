// Package listing decodes S3 bucket-listing XML bodies into KeyList
// values. Parse is a pure function and carries no pagination state of its
// own; callers thread NextMarker back into the next request.
package listing

import (
	"encoding/xml"
	"time"

	"github.com/s3kit/s3kit/pkg/errors"
)

// Entry describes one listed object.
type Entry struct {
	Key          string
	ETag         string
	Size         int64
	LastModified time.Time
}

// KeyList is the decoded result of a bucket listing: the object keys in
// listing order plus the pagination state needed to continue a truncated
// scan.
type KeyList struct {
	Keys        []string
	Entries     []Entry
	Prefixes    []string
	IsTruncated bool
	NextMarker  string
}

// Wire shapes for the ListBucketResult document (reduced to the fields the
// client consumes).

type listedObject struct {
	Key          string `xml:"Key"`
	ETag         string `xml:"ETag"`
	Size         int64  `xml:"Size"`
	LastModified string `xml:"LastModified"`
}

type listBucketResult struct {
	XMLName        xml.Name       `xml:"ListBucketResult"`
	IsTruncated    bool           `xml:"IsTruncated"`
	NextMarker     string         `xml:"NextMarker"`
	Contents       []listedObject `xml:"Contents"`
	CommonPrefixes []string       `xml:"CommonPrefixes>Prefix"`
}

// Parse decodes a ListBucketResult body. When a truncated listing omits
// NextMarker (S3 only includes it when a delimiter was supplied), the last
// listed key is used as the continuation marker.
func Parse(body []byte) (KeyList, error) {
	var raw listBucketResult
	if err := xml.Unmarshal(body, &raw); err != nil {
		return KeyList{}, errors.Decodef("ListKeys", "malformed listing body: %v", err)
	}

	list := KeyList{
		Keys:        make([]string, 0, len(raw.Contents)),
		Entries:     make([]Entry, 0, len(raw.Contents)),
		Prefixes:    raw.CommonPrefixes,
		IsTruncated: raw.IsTruncated,
		NextMarker:  raw.NextMarker,
	}

	for _, obj := range raw.Contents {
		entry := Entry{Key: obj.Key, ETag: obj.ETag, Size: obj.Size}
		if obj.LastModified != "" {
			if ts, err := time.Parse(time.RFC3339, obj.LastModified); err == nil {
				entry.LastModified = ts
			}
		}
		list.Keys = append(list.Keys, obj.Key)
		list.Entries = append(list.Entries, entry)
	}

	if list.IsTruncated && list.NextMarker == "" && len(list.Keys) > 0 {
		list.NextMarker = list.Keys[len(list.Keys)-1]
	}
	return list, nil
}
