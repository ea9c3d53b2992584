package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsE164(t *testing.T) {
	valid := []string{"+15555550100", "+447911123456", "+12025550110"}
	for _, n := range valid {
		assert.True(t, IsE164(n), n)
	}

	invalid := []string{"", "5555550100", "+0123456789", "+1", "+1-555-555-0100", "+1234567890123456"}
	for _, n := range invalid {
		assert.False(t, IsE164(n), n)
	}
}

func TestValidatePhoneNumberWithoutTwilio(t *testing.T) {
	ctx := context.Background()

	ok, err := ValidatePhoneNumber(ctx, "+15555550100", true, nil)
	require.NoError(t, err)
	assert.True(t, ok, "nil client falls back to the syntax check")

	ok, err = ValidatePhoneNumber(ctx, "555-0100", false, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewTwilioClientNeedsBothCredentials(t *testing.T) {
	assert.Nil(t, NewTwilioClient("", "token"))
	assert.Nil(t, NewTwilioClient("AC123", ""))
	assert.NotNil(t, NewTwilioClient("AC123", "token"))
}

func TestNilIfEmpty(t *testing.T) {
	assert.Nil(t, NilIfEmpty(""))
	require.NotNil(t, NilIfEmpty("x"))
	assert.Equal(t, "x", *NilIfEmpty("x"))
	assert.Equal(t, "", Val[string](nil))
}
