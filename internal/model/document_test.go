package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "1.0 MB", FormatSize(1048576))
	assert.Equal(t, "2.5 MB", FormatSize(2621440))
	assert.Equal(t, "0.0 MB", FormatSize(0))
	assert.Equal(t, "50.0 MB", FormatSize(50*1024*1024))
}

func TestUser_Public(t *testing.T) {
	u := User{ID: "1", Name: "Jane", Role: RoleUser, PasswordHash: "secret"}
	p := u.Public()
	assert.Empty(t, p.PasswordHash)
	assert.Equal(t, "secret", u.PasswordHash)
	assert.False(t, p.IsAdmin())
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
}
