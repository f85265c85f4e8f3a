package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s3kit/s3kit/pkg/errors"
)

const truncatedListing = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>bucket1</Name>
  <Prefix></Prefix>
  <Marker></Marker>
  <MaxKeys>2</MaxKeys>
  <IsTruncated>true</IsTruncated>
  <Contents>
    <Key>photos/2024/a.jpg</Key>
    <LastModified>2024-03-01T12:00:00.000Z</LastModified>
    <ETag>&quot;abc123&quot;</ETag>
    <Size>1024</Size>
  </Contents>
  <Contents>
    <Key>photos/2024/b.jpg</Key>
    <LastModified>2024-03-02T12:00:00.000Z</LastModified>
    <ETag>&quot;def456&quot;</ETag>
    <Size>2048</Size>
  </Contents>
</ListBucketResult>`

const finalListing = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>bucket1</Name>
  <IsTruncated>false</IsTruncated>
  <Contents>
    <Key>readme.txt</Key>
    <Size>12</Size>
  </Contents>
  <CommonPrefixes><Prefix>logs/</Prefix></CommonPrefixes>
  <CommonPrefixes><Prefix>tmp/</Prefix></CommonPrefixes>
</ListBucketResult>`

func TestParseTruncated(t *testing.T) {
	list, err := Parse([]byte(truncatedListing))
	require.NoError(t, err)

	assert.Equal(t, []string{"photos/2024/a.jpg", "photos/2024/b.jpg"}, list.Keys)
	assert.True(t, list.IsTruncated)
	// NextMarker inferred from the last key when the server omits it.
	assert.Equal(t, "photos/2024/b.jpg", list.NextMarker)

	require.Len(t, list.Entries, 2)
	assert.Equal(t, int64(1024), list.Entries[0].Size)
	assert.Equal(t, `"abc123"`, list.Entries[0].ETag)
	assert.Equal(t, 2024, list.Entries[0].LastModified.Year())
}

func TestParseFinalPage(t *testing.T) {
	list, err := Parse([]byte(finalListing))
	require.NoError(t, err)

	assert.False(t, list.IsTruncated)
	assert.Empty(t, list.NextMarker)
	assert.Equal(t, []string{"readme.txt"}, list.Keys)
	assert.Equal(t, []string{"logs/", "tmp/"}, list.Prefixes)
}

func TestParseExplicitNextMarker(t *testing.T) {
	body := `<ListBucketResult>
	  <IsTruncated>true</IsTruncated>
	  <NextMarker>cursor-from-server</NextMarker>
	  <Contents><Key>k1</Key></Contents>
	</ListBucketResult>`

	list, err := Parse([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "cursor-from-server", list.NextMarker)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("<ListBucketResult><Contents>"))
	require.Error(t, err)
	assert.True(t, errors.IsDecode(err))
}
