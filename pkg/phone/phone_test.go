package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/monicajeon28/gmcruise-api/pkg/phone"
)

func TestNormalize_SameKeyRegardlessOfFormat(t *testing.T) {
	const want = "01012345678"

	inputs := []string{
		"010-1234-5678",
		"01012345678",
		"+82 10 1234 5678",
		"+82-10-1234-5678",
		"0082 10 1234 5678",
		"010 1234 5678",
		"(010) 1234.5678",
	}
	for _, in := range inputs {
		assert.Equal(t, want, phone.Normalize(in), "input %q", in)
	}
}

func TestNormalize_FullWidthDigits(t *testing.T) {
	assert.Equal(t, "01012345678", phone.Normalize("０１０-１２３４-５６７８"))
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", phone.Normalize(""))
	assert.Equal(t, "", phone.Normalize("no digits here"))
}

func TestNormalize_LandlineKeepsAreaCode(t *testing.T) {
	assert.Equal(t, "0212345678", phone.Normalize("02-1234-5678"))
	assert.Equal(t, "0212345678", phone.Normalize("+82 2 1234 5678"))
}

func TestValid(t *testing.T) {
	assert.True(t, phone.Valid("01012345678"))
	assert.True(t, phone.Valid("0212345678"))
	assert.False(t, phone.Valid(""))
	assert.False(t, phone.Valid("12345678901"))
	assert.False(t, phone.Valid("010123"))
}
