package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageWrapsAndUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Storage("create attempt", cause)

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "create attempt", storageErr.Op)
	assert.ErrorIs(t, err, cause)

	assert.NoError(t, Storage("noop", nil))
}

func TestGatewayWrapsAndUnwraps(t *testing.T) {
	cause := errors.New("bad response")
	err := Gateway("grade essay", cause)

	var gatewayErr *GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.ErrorIs(t, err, cause)

	assert.NoError(t, Gateway("noop", nil))
}

func TestValidationErrorMessage(t *testing.T) {
	withField := &ValidationError{Field: "name", Reason: "must not be empty"}
	assert.Contains(t, withField.Error(), `"name"`)

	bare := &ValidationError{Reason: "no valid questions in batch"}
	assert.Contains(t, bare.Error(), "no valid questions")
}

func TestHydrationErrorUnwraps(t *testing.T) {
	cause := errors.New("corrupt blob")
	err := &HydrationError{Err: cause}
	assert.ErrorIs(t, err, cause)
}
