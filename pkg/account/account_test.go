package account

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s3kit/s3kit/pkg/errors"
)

const sampleDoc = `[
  {
    "name": "primary",
    "region": "us-west-2",
    "access-key": "AKIAEXAMPLE",
    "secret-key": "secret1",
    "buckets": ["b1", "b2"]
  },
  {
    "name": "legacy",
    "region": null,
    "access-key": "AKIALEGACY",
    "secret-key": "secret2",
    "buckets": []
  },
  {
    "name": "spaces",
    "region": "nyc3",
    "isDigitalOcean": true,
    "access-key": "DOKEY",
    "secret-key": "secret3",
    "buckets": ["assets"]
  }
]`

func TestDecodeAccounts(t *testing.T) {
	accounts, err := DecodeAccounts([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	assert.Equal(t, "primary", accounts[0].Name)
	require.NotNil(t, accounts[0].Region)
	assert.Equal(t, "us-west-2", *accounts[0].Region)
	assert.False(t, accounts[0].Alternate)
	assert.Equal(t, []string{"b1", "b2"}, accounts[0].Buckets)

	// region: null and region absent are the same thing.
	assert.Nil(t, accounts[1].Region)

	assert.True(t, accounts[2].Alternate)
}

func TestDecodeAccountsRegionAbsentEqualsNull(t *testing.T) {
	absent := `[{"name":"a","access-key":"k","secret-key":"s","buckets":[]}]`
	explicit := `[{"name":"a","region":null,"access-key":"k","secret-key":"s","buckets":[]}]`

	a1, err := DecodeAccounts([]byte(absent))
	require.NoError(t, err)
	a2, err := DecodeAccounts([]byte(explicit))
	require.NoError(t, err)

	assert.Nil(t, a1[0].Region)
	assert.Nil(t, a2[0].Region)
}

func TestDecodeAccountsMissingField(t *testing.T) {
	cases := map[string]string{
		"name":       `[{"access-key":"k","secret-key":"s","buckets":[]}]`,
		"access-key": `[{"name":"a","secret-key":"s","buckets":[]}]`,
		"secret-key": `[{"name":"a","access-key":"k","buckets":[]}]`,
		"buckets":    `[{"name":"a","access-key":"k","secret-key":"s"}]`,
	}

	for field, doc := range cases {
		t.Run(field, func(t *testing.T) {
			accounts, err := DecodeAccounts([]byte(doc))
			assert.Nil(t, accounts, "no partial results on failure")
			require.Error(t, err)
			assert.True(t, errors.IsDecode(err))
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestDecodeAccountsMalformedJSON(t *testing.T) {
	_, err := DecodeAccounts([]byte(`{"not": "an array"}`))
	require.Error(t, err)
	assert.True(t, errors.IsDecode(err))
}

func TestDecodeAccountsFailsWholeDocument(t *testing.T) {
	// Second element is broken; the first must not leak out.
	doc := `[
	  {"name":"ok","access-key":"k","secret-key":"s","buckets":[]},
	  {"name":"broken","secret-key":"s","buckets":[]}
	]`
	accounts, err := DecodeAccounts([]byte(doc))
	assert.Nil(t, accounts)
	assert.True(t, errors.IsDecode(err))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleDoc))
	}))
	defer srv.Close()

	accounts, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}

func TestFetchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	_, err := Fetch(context.Background(), nil, srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsAPI(err))
}

func TestCredentialsProvider(t *testing.T) {
	acct := Account{AccessKey: "AKIA", SecretKey: "shh"}
	creds, err := acct.CredentialsProvider().Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIA", creds.AccessKeyID)
	assert.Equal(t, "shh", creds.SecretAccessKey)
}
