package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyumbahomes/nyumba/internal/errs"
	"github.com/nyumbahomes/nyumba/internal/validation"
)

func newListContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func requireBadRequest(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

// Sort fields are whitelisted per entity in the request payload, so a
// misspelled or unsupported field is a client error instead of surfacing
// from the storage layer.
func TestListSortFieldIsWhitelistedPerEntity(t *testing.T) {
	c := newListContext(t, "/api/properties?sortBy=banana")
	requireBadRequest(t, validation.BindAndValidate(c, &ListPropertiesRequest{}))

	c = newListContext(t, "/api/properties?sortBy=price&sortOrder=asc")
	require.NoError(t, validation.BindAndValidate(c, &ListPropertiesRequest{}))

	// email sorts admins but is not a sortable inquiry field.
	c = newListContext(t, "/api/inquiries?sortBy=email")
	requireBadRequest(t, validation.BindAndValidate(c, &ListInquiriesRequest{}))

	c = newListContext(t, "/api/inquiries?sortBy=status")
	require.NoError(t, validation.BindAndValidate(c, &ListInquiriesRequest{}))

	c = newListContext(t, "/api/admins?sortBy=email")
	require.NoError(t, validation.BindAndValidate(c, &ListAdminsRequest{}))

	c = newListContext(t, "/api/admins?sortBy=passwordHash")
	requireBadRequest(t, validation.BindAndValidate(c, &ListAdminsRequest{}))
}
