package contract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load(context.Background())
	require.NoError(t, err)

	assert.Contains(t, c.Title(), "back-office API")
	assert.NotEmpty(t, c.Endpoints())
}

func TestAllows(t *testing.T) {
	c, err := Load(context.Background())
	require.NoError(t, err)

	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{"POST", "/auth/login", true},
		{"get", "/user/me", true},
		{"GET", "/user/user_details?user_request_id=3", true},
		{"DELETE", "/roles/remove_role_from_user", true},
		{"GET", "/auth/login", false},
		{"GET", "/user/unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Allows(tt.method, tt.path))
		})
	}
}

func TestEndpointsSortedAndTagged(t *testing.T) {
	c, err := Load(context.Background())
	require.NoError(t, err)

	endpoints := c.Endpoints()
	for i := 1; i < len(endpoints); i++ {
		prev, cur := endpoints[i-1], endpoints[i]
		assert.True(t, prev.Path < cur.Path || (prev.Path == cur.Path && prev.Method < cur.Method))
	}

	var login Endpoint
	for _, e := range endpoints {
		assert.NotEmpty(t, e.Tag, e.String())
		if e.Path == "/auth/login" {
			login = e
		}
	}
	assert.Equal(t, "POST", login.Method)
	assert.False(t, login.Auth)
}

func TestCheck(t *testing.T) {
	c, err := Load(context.Background())
	require.NoError(t, err)

	missing := c.Check([]Endpoint{
		{Method: "GET", Path: "/home/notifications"},
		{Method: "GET", Path: "/home/dashboard"},
	})
	require.Len(t, missing, 1)
	assert.Equal(t, "GET /home/dashboard", missing[0].String())
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(context.Background(), []byte("openapi: 3.0.3\ninfo: {}\npaths: {}\n"))
	assert.Error(t, err)
}
