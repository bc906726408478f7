package testutil

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorCause verifies that err was produced by wrapping expected.
func AssertErrorCause(t *testing.T, err, expected error) {
	require.Error(t, err)
	assert.Equal(t, expected, errors.Cause(err), err.Error())
}
