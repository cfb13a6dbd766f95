package dto

import (
	"net/http"
	"testing"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	cases := map[string]int{
		shared.CodeValidation:         http.StatusBadRequest,
		shared.CodeNotFound:           http.StatusNotFound,
		shared.CodeActingUserNotFound: http.StatusUnprocessableEntity,
		shared.CodeEntityInactive:     http.StatusConflict,
		shared.CodeDuplicateProduct:   http.StatusBadRequest,
		shared.CodeImageExists:        http.StatusConflict,
		shared.CodeInvalidCredentials: http.StatusUnauthorized,
		shared.CodeAccountLocked:      http.StatusForbidden,
		shared.CodeAccountDeactivated: http.StatusForbidden,
		shared.CodeAlreadyExists:      http.StatusConflict,
		shared.CodeInternal:           http.StatusInternalServerError,
		ErrCodeUnauthorized:           http.StatusUnauthorized,
		"SOMETHING_NEW":               http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, GetHTTPStatus(code), "code %s", code)
	}
}

func TestResponseConstructors(t *testing.T) {
	ok := NewSuccessResponse(map[string]int{"id": 1})
	assert.True(t, ok.Success)
	assert.Nil(t, ok.Error)

	fail := NewErrorResponse(shared.CodeNotFound, "missing")
	assert.False(t, fail.Success)
	assert.Equal(t, shared.CodeNotFound, fail.Error.Code)

	withMeta := NewSuccessResponseWithMeta(nil, 42, 2, 20, 3)
	assert.Equal(t, int64(42), withMeta.Meta.Total)
	assert.Equal(t, 3, withMeta.Meta.TotalPages)
}
