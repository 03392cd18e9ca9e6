package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("dana@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.co"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("missing@tld"))
	assert.False(t, ValidateEmail(""))
}

func TestCheckPassword(t *testing.T) {
	assert.Equal(t, "password", CheckPassword("short"))
	assert.Equal(t, "", CheckPassword("longenough"))
}

func TestEncryptTextSHA512IsDeterministic(t *testing.T) {
	a := EncryptTextSHA512("hunter22")
	b := EncryptTextSHA512("hunter22")
	assert.Equal(t, a, b)
	assert.Len(t, a, 128)
	assert.NotEqual(t, a, EncryptTextSHA512("hunter23"))
}
