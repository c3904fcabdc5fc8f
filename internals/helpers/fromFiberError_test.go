package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getJSON(t *testing.T, app *fiber.App, path string) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp, body
}

// Error yang lolos sampai framework (pola middleware auth: return
// fiber.NewError) harus keluar dengan wire shape {"error": ...}, bukan
// text/plain bawaan Fiber.
func TestGlobalErrorHandler_FiberErrorAsJSON(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: GlobalErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	})
	app.Get("/protected", func(c *fiber.Ctx) error { return nil })

	resp, body := getJSON(t, app, "/protected")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	assert.Equal(t, "Unauthorized", body["error"])
}

// Error non-fiber tidak membocorkan pesan asli ke klien.
func TestGlobalErrorHandler_PlainErrorIsGeneric500(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: GlobalErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("dsn rahasia bocor")
	})

	resp, body := getJSON(t, app, "/boom")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Terjadi kesalahan pada server", body["error"])
	assert.NotContains(t, body["error"], "rahasia")
}
