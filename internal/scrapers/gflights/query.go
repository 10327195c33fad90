package gflights

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"
	"time"

	"flightscout/internal/chrono"
)

// the search url carries its query as a url-safe base64 protobuf in the
// `tfs` parameter, the departure date sits inside it as a plain string
var embeddedDateRegex = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

func decodeTfs(base string) (*url.URL, []byte, bool) {
	link, err := url.Parse(base)
	if err != nil {
		return nil, nil, false
	}
	tfs := link.Query().Get("tfs")
	if tfs == "" {
		return nil, nil, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(tfs, "="))
	if err != nil {
		return nil, nil, false
	}
	return link, decoded, true
}

// DateURL returns base with the departure date inside its `tfs` parameter
// replaced by date. A url without a decodable `tfs` or without an embedded
// date is returned as is.
func DateURL(base string, date time.Time) string {
	link, decoded, ok := decodeTfs(base)
	if !ok {
		return base
	}
	loc := embeddedDateRegex.FindIndex(decoded)
	if loc == nil {
		return base
	}

	updated := make([]byte, 0, len(decoded))
	updated = append(updated, decoded[:loc[0]]...)
	updated = append(updated, date.Format(chrono.ISODate)...)
	updated = append(updated, decoded[loc[1]:]...)

	query := link.Query()
	query.Set("tfs", base64.RawURLEncoding.EncodeToString(updated))
	link.RawQuery = query.Encode()
	return link.String()
}

// EmbeddedDate returns the departure date the search url was made for.
func EmbeddedDate(base string) (time.Time, bool) {
	_, decoded, ok := decodeTfs(base)
	if !ok {
		return time.Time{}, false
	}
	match := embeddedDateRegex.Find(decoded)
	if match == nil {
		return time.Time{}, false
	}
	parsed, err := time.Parse(chrono.ISODate, string(match))
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
