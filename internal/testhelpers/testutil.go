package testhelpers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pageza/resep-nusantara/internal/fixtures"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewRecipeAPIServer serves api over HTTP for the duration of the test
func NewRecipeAPIServer(t *testing.T, api *fixtures.API) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(api.Router())
	t.Cleanup(srv.Close)
	return srv
}

// JSONMarshal is a helper function to marshal JSON for testing
func JSONMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}
	return data
}
