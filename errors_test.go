package authstate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreError_Error(t *testing.T) {
	err := &StoreError{Op: "Save", Kind: KindValidation, Err: ErrEmptyHandle}
	assert.Equal(t, "authstate: Save (validation): handle is empty", err.Error())

	bare := &StoreError{Op: "Load", Kind: KindFilesystem}
	assert.Equal(t, "authstate: Load: filesystem", bare.Error())
}

func TestStoreError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := &StoreError{Op: "Save", Kind: KindFilesystem, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestStoreError_Is(t *testing.T) {
	err := &StoreError{Op: "Save", Kind: KindValidation, Err: ErrEmptyHandle}

	assert.ErrorIs(t, err, ErrEmptyHandle)
	assert.ErrorIs(t, err, &StoreError{Kind: KindValidation})
	assert.ErrorIs(t, err, &StoreError{Op: "Save", Kind: KindValidation})
	assert.NotErrorIs(t, err, &StoreError{Kind: KindFilesystem})
	assert.NotErrorIs(t, err, &StoreError{Op: "Load", Kind: KindValidation})
	assert.NotErrorIs(t, err, errors.New("handle is empty"))
}
