package account

import (
	"context"
	"io"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/s3kit/s3kit/pkg/errors"
)

// Fetch retrieves the accounts document from url and decodes it. An empty
// url falls back to DefaultSource. Transport failures surface as
// network-kind errors, malformed documents as decode-kind errors. No
// timeout is applied here; the client's own policy governs.
func Fetch(ctx context.Context, client *http.Client, url string) ([]Account, error) {
	if url == "" {
		url = DefaultSource
	}
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Network("FetchAccounts", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Network("FetchAccounts", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, errors.API("FetchAccounts", resp.StatusCode, "", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Network("FetchAccounts", err)
	}
	return DecodeAccounts(body)
}

// Ambient builds an Account named "ambient" from the default AWS
// credential and region chain (environment, shared config, IMDS). It is a
// convenience for callers operating without an accounts document; the
// returned account has no bucket list.
func Ambient(ctx context.Context) (Account, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return Account{}, errors.Decodef("AmbientAccount", "load default config: %v", err)
	}

	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return Account{}, errors.Network("AmbientAccount", err)
	}

	acct := Account{
		Name:      "ambient",
		AccessKey: creds.AccessKeyID,
		SecretKey: creds.SecretAccessKey,
	}
	if cfg.Region != "" {
		region := cfg.Region
		acct.Region = &region
	}
	return acct, nil
}
