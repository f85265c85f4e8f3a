// Package account models the per-account connection information used to
// sign and route requests: credentials, an optional region, and the set of
// buckets the account owns.
//
// Accounts are decoded from a JSON document (conventionally
// "accounts.json") and are immutable after decode.
package account

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/s3kit/s3kit/pkg/errors"
)

// DefaultSource is the accounts document location used when none is given.
const DefaultSource = "accounts.json"

// Account holds one account's connection info. Region nil selects the
// global endpoint and signing mode; non-nil selects the regional mode bound
// to that region. Alternate marks accounts hosted on an S3-compatible
// alternate provider rather than AWS proper.
type Account struct {
	Name      string
	Region    *string
	Alternate bool
	AccessKey string
	SecretKey string
	Buckets   []string
}

// RegionOrDefault returns the account's region, or fallback when the
// account is in global mode.
func (a Account) RegionOrDefault(fallback string) string {
	if a.Region != nil {
		return *a.Region
	}
	return fallback
}

// CredentialsProvider bridges the account's static keys to the signer.
func (a Account) CredentialsProvider() aws.CredentialsProvider {
	return credentials.NewStaticCredentialsProvider(a.AccessKey, a.SecretKey, "")
}

// accountWire is the JSON shape of one element of the accounts document.
// Required fields are pointers so absence is distinguishable from the zero
// value.
type accountWire struct {
	Name      *string   `json:"name"`
	Region    *string   `json:"region"`
	Alternate bool      `json:"isDigitalOcean"`
	AccessKey *string   `json:"access-key"`
	SecretKey *string   `json:"secret-key"`
	Buckets   *[]string `json:"buckets"`
}

func (w accountWire) validate(index int) *errors.Error {
	missing := func(field string) *errors.Error {
		return errors.Decodef("DecodeAccounts", "account %d: missing required field %q", index, field)
	}
	switch {
	case w.Name == nil:
		return missing("name")
	case w.AccessKey == nil:
		return missing("access-key")
	case w.SecretKey == nil:
		return missing("secret-key")
	case w.Buckets == nil:
		return missing("buckets")
	}
	return nil
}

// DecodeAccounts decodes a JSON array of account objects. Decoding is
// all-or-nothing: any malformed element yields a decode error for the whole
// document and no partial results. A "region" that is absent and one that
// is explicitly null both produce a nil Region.
func DecodeAccounts(data []byte) ([]Account, error) {
	var wires []accountWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return nil, errors.Decodef("DecodeAccounts", "malformed accounts document: %v", err)
	}

	accounts := make([]Account, 0, len(wires))
	for i, w := range wires {
		if err := w.validate(i); err != nil {
			return nil, err
		}
		accounts = append(accounts, Account{
			Name:      *w.Name,
			Region:    w.Region,
			Alternate: w.Alternate,
			AccessKey: *w.AccessKey,
			SecretKey: *w.SecretKey,
			Buckets:   *w.Buckets,
		})
	}
	return accounts, nil
}
