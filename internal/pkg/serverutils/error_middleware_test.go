package serverutils

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"extensions-web/internal/pkg/apperrors"
	"extensions-web/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorPageRenderer struct{}

func (errorPageRenderer) Render(name string, _ interface{}) (string, error) {
	return "<" + name + ">", nil
}

func newErrorApp(handlerErr error) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(errorPageRenderer{}, logger.NewNopLogger()))
	app.Get("/page", func(ctx *fiber.Ctx) error {
		return handlerErr
	})
	return app
}

func TestErrorHandlerSessionDataErrorIsGeneric500(t *testing.T) {
	app := newErrorApp(apperrors.MissingSessionField("company in context"))

	resp, err := app.Test(httptest.NewRequest("GET", "/page", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<error>", string(body))
}

func TestErrorHandlerUnrecognizedDownstreamErrorIsGeneric500(t *testing.T) {
	app := newErrorApp(&apperrors.DownstreamError{Operation: "GET /company/1", Status: 502})

	resp, err := app.Test(httptest.NewRequest("GET", "/page", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestErrorHandlerUnhandledErrorIsGeneric500(t *testing.T) {
	app := newErrorApp(errors.New("boom"))

	resp, err := app.Test(httptest.NewRequest("GET", "/page", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestErrorHandlerFiberErrorKeepsItsStatus(t *testing.T) {
	app := newErrorApp(fiber.NewError(fiber.StatusBadRequest, "missing token"))

	resp, err := app.Test(httptest.NewRequest("GET", "/page", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
