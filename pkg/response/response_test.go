package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/response"
)

func TestWriters(t *testing.T) {
	cases := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		body   string
	}{
		{"message", func(w http.ResponseWriter) { response.Message(w, http.StatusOK, "done") }, 200, `{"message":"done"}`},
		{"created", func(w http.ResponseWriter) { response.Created(w, "added", 7) }, 201, `{"message":"added","id":7}`},
		{"validation", func(w http.ResponseWriter) {
			response.ValidationError(w, map[string]string{"customer_name": "The customer_name field is required."})
		}, 400, `{"customer_name":"The customer_name field is required."}`},
		{"not found", func(w http.ResponseWriter) { response.NotFound(w, "Order not found") }, 404, `{"message":"Order not found"}`},
		{"conflict", func(w http.ResponseWriter) { response.Conflict(w, "busy") }, 409, `{"message":"busy"}`},
		{"internal", response.InternalError, 500, `{"message":"Internal server error"}`},
		{"list", func(w http.ResponseWriter) { response.JSON(w, http.StatusOK, []int{1, 2}) }, 200, `[1,2]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}
