package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/crypt"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

func TestReceiptEndpointScenarios(t *testing.T) {
	handler := controllers.NewReceiptController().Show()
	testkit.RunDir(t, handler, "testdata/receipt")
}

func TestReceiptShowDecodesSealedToken(t *testing.T) {
	issued := time.Now().Truncate(time.Second)
	token, err := crypt.EncryptJSON(services.ReceiptClaims{
		Email:    "buyer@example.test",
		Orders:   2,
		Total:    750,
		IssuedAt: issued,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/receipt?token="+url.QueryEscape(token), nil)
	rec := httptest.NewRecorder()
	controllers.NewReceiptController().Show().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status int                    `json:"status"`
		Data   services.ReceiptClaims `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "buyer@example.test", body.Data.Email)
	require.Equal(t, 2, body.Data.Orders)
	require.Equal(t, 750, body.Data.Total)
	require.True(t, body.Data.IssuedAt.Equal(issued))
}
