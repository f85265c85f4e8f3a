package request

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/s3kit/s3kit/pkg/errors"
)

// serviceError is the XML error document S3-compatible services return
// with non-2xx responses.
type serviceError struct {
	XMLName   xml.Name `xml:"Error"`
	Code      string   `xml:"Code"`
	Message   string   `xml:"Message"`
	Resource  string   `xml:"Resource"`
	RequestID string   `xml:"RequestId"`
}

// DecodeAPIError is the shared error-body decoder: it parses the service's
// XML error payload into an API-kind error. A body that is not a parseable
// error document still produces an API-kind error carrying the HTTP status
// text, so a failed response never surfaces as a decode failure.
func DecodeAPIError(meta Metadata, body []byte) *errors.Error {
	var wire serviceError
	if err := xml.Unmarshal(body, &wire); err != nil || wire.Code == "" {
		msg := strings.TrimSpace(string(body))
		if msg == "" || err != nil {
			msg = http.StatusText(meta.StatusCode)
		}
		return errors.API("", meta.StatusCode, "", msg)
	}

	apiErr := errors.API("", meta.StatusCode, wire.Code, wire.Message)
	apiErr.RequestID = wire.RequestID
	return apiErr
}
