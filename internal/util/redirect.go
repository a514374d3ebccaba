package util

import (
	"net/url"
	"strings"
)

// redirectParams maps affiliate redirect hosts to the query parameter that
// carries the destination URL.
var redirectParams = map[string]string{
	"click.linksynergy.com": "murl",
	"go.redirectingat.com":  "url",
	"bestbuyca.o93x.net":    "u",
	"goto.target.com":       "u",
	"l.instagram.com":       "u",
}

// UnwrapRedirect returns the product URL hidden behind an affiliate redirect
// and strips Amazon affiliate tags. The bool reports whether anything changed.
func UnwrapRedirect(rawURL string) (string, bool) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, false
	}
	host := strings.ToLower(parsedURL.Hostname())

	if param, ok := redirectParams[host]; ok {
		dest := parsedURL.Query().Get(param)
		if strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://") {
			return dest, true
		}
		return rawURL, false
	}

	if strings.Contains(host, "amazon.") {
		queryParams := parsedURL.Query()
		if !queryParams.Has("tag") {
			return rawURL, false
		}
		queryParams.Del("tag")
		parsedURL.RawQuery = queryParams.Encode()
		return parsedURL.String(), true
	}

	return rawURL, false
}
