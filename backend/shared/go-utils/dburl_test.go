package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithIsolatedRole(t *testing.T) {
	out, err := WithIsolatedRole("postgres://owner:secret@db:5432/society?sslmode=disable", "Runner", "42")
	require.NoError(t, err)

	u, err := url.Parse(out)
	require.NoError(t, err)
	require.Equal(t, "runner-42", u.User.Username())
	pw, ok := u.User.Password()
	require.True(t, ok)
	require.Equal(t, "secret", pw)
	require.Equal(t, "disable", u.Query().Get("sslmode"))
	require.Equal(t, "runner-42", u.Query().Get("application_name"))
}

func TestWithIsolatedRoleRejectsBadInput(t *testing.T) {
	_, err := WithIsolatedRole("postgres://u@h/db", "", "1")
	require.Error(t, err)

	_, err = WithIsolatedRole("mysql://u@h/db", "r", "1")
	require.Error(t, err)
}

func TestNewLocalIDIsPrefixedAndRandom(t *testing.T) {
	a, b := NewLocalID(), NewLocalID()
	require.Len(t, a, len(LocalIDPrefix)+12)
	require.Equal(t, LocalIDPrefix, a[:len(LocalIDPrefix)])
	require.NotEqual(t, a, b)
}
