package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeValidation).HTTPStatus)
	// duplicates deliberately surface as 400, not 409
	assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeConflict).HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, MetadataFor(CodeStateConflict).HTTPStatus)
	assert.Equal(t, http.StatusBadGateway, MetadataFor(CodeUpstream).HTTPStatus)
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("boom")
	err := Wrap(CodeInternal, cause, "saving order")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "INTERNAL_ERROR: saving order", err.Error())
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	typed := New(CodeNotFound, "Order not found")
	wrapped := fmt.Errorf("handler: %w", typed)

	got := As(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, CodeNotFound, got.Code())

	assert.Nil(t, As(stdErrors.New("plain")))
	assert.Nil(t, As(nil))
}

func TestWithDetails(t *testing.T) {
	err := New(CodeValidation, "invalid").WithDetails(map[string]string{"field": "bad"})
	details, ok := err.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "bad", details["field"])
}
