package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompletionMethod(t *testing.T) {
	m, err := ParseCompletionMethod("verified")
	require.NoError(t, err)
	assert.Equal(t, MethodVerified, m)

	m, err = ParseCompletionMethod("estimated")
	require.NoError(t, err)
	assert.Equal(t, MethodEstimated, m)

	for _, bad := range []string{"", "manual", "Verified"} {
		_, err := ParseCompletionMethod(bad)
		assert.Error(t, err, "method %q", bad)
	}
}
