package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validationf("bad input"), http.StatusBadRequest},
		// Authentication maps to 400, not 401, so the response never
		// reveals which credential check failed.
		{Authenticationf("bad credentials"), http.StatusBadRequest},
		{Forbiddenf("not yours"), http.StatusForbidden},
		{NotFoundf("gone"), http.StatusNotFound},
		{Configf("folder", "missing id"), http.StatusInternalServerError},
		{Upstreamf("pdf_export", errors.New("boom"), "export failed"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err))
	}
}

func TestKindOfUnwrapsChains(t *testing.T) {
	inner := Upstreamf("template_copy", errors.New("quota"), "copy failed")
	wrapped := fmt.Errorf("sync: %w", inner)

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, Upstream, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorMessageCarriesStageAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Upstreamf("sheet_append", cause, "append failed")

	assert.Equal(t, "sheet_append: append failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}
