package e2etest

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/myrjola/checkpoint/internal/errors"
)

// unsafeCookieJar keeps Secure cookies usable over plain HTTP so that the test server can run without TLS. The
// session and CSRF cookies of the server are both Secure.
type unsafeCookieJar struct {
	*cookiejar.Jar
}

func newUnsafeCookieJar() (*unsafeCookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "new cookie jar")
	}
	return &unsafeCookieJar{Jar: jar}, nil
}

func (u *unsafeCookieJar) SetCookies(target *url.URL, cookies []*http.Cookie) {
	insecure := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		copied := *c
		copied.Secure = false
		insecure = append(insecure, &copied)
	}
	u.Jar.SetCookies(target, insecure)
}
