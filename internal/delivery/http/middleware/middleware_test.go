package middleware

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type codedError struct{}

func (codedError) Error() string   { return "gone: internal detail" }
func (codedError) StatusCode() int { return http.StatusGone }
func (codedError) Text() string    { return "It is gone" }

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	app := gin.New()
	app.SetHTMLTemplate(template.Must(template.New("error").Parse(`{{define "error"}}{{.Status}} {{.Message}}{{end}}`)))
	app.Use(RequestID(), Logger(zap.NewNop()), Recovery(zap.NewNop()), ErrorHandler())
	return app
}

func serve(app *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestErrorHandler(t *testing.T) {
	app := newEngine()
	app.GET("/coded", func(c *gin.Context) { _ = c.Error(codedError{}) })
	app.GET("/plain", func(c *gin.Context) { _ = c.Error(errors.New("secret dsn")) })
	app.GET("/ok", func(c *gin.Context) {
		_ = c.Error(errors.New("logged only"))
		c.String(http.StatusOK, "fine")
	})

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/coded", nil))
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, "410 It is gone", rec.Body.String())

	rec = serve(app, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret dsn")

	rec = serve(app, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())
}

func TestRecovery(t *testing.T) {
	app := newEngine()
	app.GET("/panic", func(*gin.Context) { panic("boom") })

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "500")
}

func TestRequestID(t *testing.T) {
	app := newEngine()
	app.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	rec := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), rec.Body.String())

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	assert.Equal(t, id, serve(app, req).Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", serve(app, req).Header().Get(RequestIDHeader))
}
