/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package client

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/nscaledev/booker/pkg/booking"
)

const tokenCookie = "token"

// Session holds the connection defaults and authentication state shared by
// every call a client makes.  It is owned by exactly one client and is not
// safe for concurrent mutation.
type Session struct {
	// baseURL is prepended to every endpoint path.
	baseURL string

	// base is the parsed base URL, used to scope cookies.
	base *url.URL

	// headers are sent with every request.
	headers http.Header

	// jar holds the token cookie and anything else the service sets.
	jar http.CookieJar

	// token is the last token obtained.
	token string

	// basic, when set, authorizes mutating calls instead of the token.
	basic *booking.Credentials
}

func newSession(baseURL string) (*Session, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q is not absolute", ErrInvalidOptions, baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")

	return &Session{
		baseURL: baseURL,
		base:    base,
		headers: headers,
		jar:     jar,
	}, nil
}

// setToken stores the token as a cookie, an empty token clears it.
func (s *Session) setToken(token string) {
	cookie := &http.Cookie{
		Name:  tokenCookie,
		Value: token,
		Path:  "/",
	}

	if token == "" {
		cookie.MaxAge = -1
	}

	s.token = token
	s.jar.SetCookies(s.base, []*http.Cookie{cookie})
}

// authorized reports whether a mutating call can be attempted.
func (s *Session) authorized() bool {
	return s.token != "" || s.basic != nil
}

// apply adds the session state to an outgoing request.
func (s *Session) apply(req *http.Request, authorize bool) {
	for key, values := range s.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	for _, cookie := range s.jar.Cookies(req.URL) {
		req.AddCookie(cookie)
	}

	if authorize && s.basic != nil {
		req.SetBasicAuth(s.basic.Username, s.basic.Password)
	}
}

// store records any cookies the service set.
func (s *Session) store(u *url.URL, resp *http.Response) {
	if cookies := resp.Cookies(); len(cookies) > 0 {
		s.jar.SetCookies(u, cookies)
	}
}
