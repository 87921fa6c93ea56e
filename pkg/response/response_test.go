package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/coaching-conflict-api/pkg/errors"
)

func perform(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestJSONWithMeta(t *testing.T) {
	w := perform(t, func(c *gin.Context) {
		JSON(c, http.StatusOK, map[string]string{"id": "c1"}, map[string]interface{}{"cache_hit": true})
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":{"id":"c1"},"meta":{"cache_hit":true}}`, w.Body.String())
}

func TestErrorNormalisesUnknownErrors(t *testing.T) {
	w := perform(t, func(c *gin.Context) { Error(c, errors.New("db down")) })

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, appErrors.ErrInternal.Code, env.Error.Code)
	assert.Nil(t, env.Data)
}

func TestErrorWithDataKeepsPayload(t *testing.T) {
	w := perform(t, func(c *gin.Context) {
		ErrorWithData(c, appErrors.Clone(appErrors.ErrConflict, "clash"), map[string]bool{"hasConflict": true})
	})

	require.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"data":{"hasConflict":true},"error":{"code":"CONFLICT","message":"clash","status":409}}`, w.Body.String())
}

func TestAttachment(t *testing.T) {
	w := perform(t, func(c *gin.Context) { Attachment(c, "report.csv", "text/csv", []byte("a,b\n")) })

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="report.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "a,b\n", w.Body.String())
}
