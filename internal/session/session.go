// Package session holds the controller address, credentials, and the token
// issued by the last successful login.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/fivetwenty-io/aci-client/internal/constants"
	"golang.org/x/net/publicsuffix"
)

// Static errors for err113 compliance.
var (
	ErrEmptyToken = errors.New("refusing to store an empty token")
)

// Session is created with the client and lives as long as it does. The token
// is written only by SetToken, which the login operation calls; every other
// request reads it concurrently.
type Session struct {
	server   string
	username string
	password string

	mutex sync.RWMutex
	token string
	jar   http.CookieJar
}

// New creates an unauthenticated session with its own cookie jar.
func New(server, username, password string) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	return &Session{
		server:   server,
		username: username,
		password: password,
		jar:      jar,
	}, nil
}

// Server returns the controller address.
func (s *Session) Server() string {
	return s.server
}

// Username returns the login name.
func (s *Session) Username() string {
	return s.username
}

// Password returns the login password.
func (s *Session) Password() string {
	return s.password
}

// Jar returns the credential store that carries the session cookie.
func (s *Session) Jar() http.CookieJar {
	return s.jar
}

// Token returns the current token, empty before the first login.
func (s *Session) Token() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

// Authenticated reports whether a login has succeeded.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores token and seeds the cookie jar so the transport attaches it
// to every request under baseURL.
func (s *Session) SetToken(baseURL *url.URL, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
	s.jar.SetCookies(baseURL, []*http.Cookie{{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		Secure:   baseURL.Scheme == "https",
		HttpOnly: true,
	}})

	return nil
}
