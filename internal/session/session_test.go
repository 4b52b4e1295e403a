package session_test

import (
	"net/url"
	"sync"
	"testing"

	"github.com/fivetwenty-io/aci-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_SetToken(t *testing.T) {
	t.Parallel()

	sess, err := session.New("apic.example.com", "admin", "secret")
	require.NoError(t, err)

	assert.Equal(t, "apic.example.com", sess.Server())
	assert.Equal(t, "admin", sess.Username())
	assert.Equal(t, "secret", sess.Password())
	assert.Empty(t, sess.Token())
	assert.False(t, sess.Authenticated())

	base := &url.URL{Scheme: "https", Host: "apic.example.com", Path: "/"}

	require.NoError(t, sess.SetToken(base, "TOKEN"))
	assert.Equal(t, "TOKEN", sess.Token())
	assert.True(t, sess.Authenticated())

	cookies := sess.Jar().Cookies(&url.URL{Scheme: "https", Host: "apic.example.com", Path: "/api/class/fvTenant.json"})
	require.Len(t, cookies, 1)
	assert.Equal(t, "APIC-cookie", cookies[0].Name)
	assert.Equal(t, "TOKEN", cookies[0].Value)

	other := sess.Jar().Cookies(&url.URL{Scheme: "https", Host: "other.example.com", Path: "/"})
	assert.Empty(t, other)
}

func TestSession_SetTokenRejectsEmpty(t *testing.T) {
	t.Parallel()

	sess, err := session.New("apic.example.com", "admin", "secret")
	require.NoError(t, err)

	base := &url.URL{Scheme: "https", Host: "apic.example.com", Path: "/"}

	require.NoError(t, sess.SetToken(base, "first"))
	require.ErrorIs(t, sess.SetToken(base, ""), session.ErrEmptyToken)
	assert.Equal(t, "first", sess.Token())
}

func TestSession_ReplaceToken(t *testing.T) {
	t.Parallel()

	sess, err := session.New("10.0.0.1:8443", "admin", "secret")
	require.NoError(t, err)

	base := &url.URL{Scheme: "https", Host: "10.0.0.1:8443", Path: "/"}

	require.NoError(t, sess.SetToken(base, "first"))
	require.NoError(t, sess.SetToken(base, "second"))

	cookies := sess.Jar().Cookies(base)
	require.Len(t, cookies, 1)
	assert.Equal(t, "second", cookies[0].Value)
}

func TestSession_ConcurrentReads(t *testing.T) {
	t.Parallel()

	sess, err := session.New("apic.example.com", "admin", "secret")
	require.NoError(t, err)
	require.NoError(t, sess.SetToken(&url.URL{Scheme: "https", Host: "apic.example.com", Path: "/"}, "TOKEN"))

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			assert.Equal(t, "TOKEN", sess.Token())
		}()
	}

	wg.Wait()
}
