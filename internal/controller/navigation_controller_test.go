package controller

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"extensions-web/internal/config"
	"extensions-web/internal/constant"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/pkg/serverutils"
	"extensions-web/internal/repository/contract"
	"extensions-web/internal/repository/memory"
	"extensions-web/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wizardClient struct {
	t      *testing.T
	app    *fiber.App
	repo   contract.ISessionRepository
	cookie string
	key    string
}

func newWizardClient(t *testing.T) *wizardClient {
	repo := memory.NewSessionRepository()
	sessions := service.NewSessionService(repo, config.SessionConfig{
		CookieName:   "__EXT",
		CookieSecret: "secret",
		TTL:          time.Hour,
	}, logger.NewNopLogger())

	app := fiber.New()
	app.Use(serverutils.SessionMiddleware(sessions))
	app.Use(serverutils.HistoryMiddleware(sessions, "", logger.NewNopLogger()))
	NewNavigationController(sessions, logger.NewNopLogger()).RegisterRoutes(app)
	app.All("/*", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})

	return &wizardClient{t: t, app: app, repo: repo}
}

func (c *wizardClient) get(path, referer string) string {
	c.t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if referer != "" {
		req.Header.Set("Referer", referer)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.app.Test(req)
	require.NoError(c.t, err)

	if setCookie := resp.Header.Get("Set-Cookie"); setCookie != "" {
		c.cookie = strings.Split(setCookie, ";")[0]
		c.key = strings.TrimPrefix(c.cookie, "__EXT=")[:32]
	}
	return resp.Header.Get("Location")
}

func (c *wizardClient) stack() []string {
	c.t.Helper()
	data, err := c.repo.Load(context.Background(), c.key)
	require.NoError(c.t, err)
	require.NotNil(c.t, data)
	return data.PageHistory.PageHistory
}

func (c *wizardClient) backFlag() bool {
	c.t.Helper()
	data, err := c.repo.Load(context.Background(), c.key)
	require.NoError(c.t, err)
	return data.NavigationBackFlag
}

// The worked journey: start → company-number → confirm-company →
// choose-reason → back lands on confirm-company with the breadcrumb
// shortened to the company-number page.
func TestBackNavigationJourney(t *testing.T) {
	c := newWizardClient(t)

	c.get("/company-number", "http://localhost/")
	require.Empty(t, c.stack())

	c.get("/confirm-company", "http://localhost/company-number")
	require.Equal(t, []string{"/company-number"}, c.stack())

	c.get("/choose-reason", "http://localhost/confirm-company")
	require.Equal(t, []string{"/company-number", "/confirm-company"}, c.stack())

	location := c.get(constant.PathBack, "http://localhost/choose-reason")
	assert.Equal(t, "/confirm-company", location)
	assert.Equal(t, []string{"/company-number"}, c.stack())
	assert.True(t, c.backFlag())
}

// When the browser's own history already advanced past the page being
// viewed, the top of stack equals the Referer and one pop would send the
// user to the page they are already on. The controller pops twice.
func TestBackNavigationDoublePop(t *testing.T) {
	c := newWizardClient(t)

	c.get("/confirm-company", "http://localhost/company-number")
	c.get("/choose-reason", "http://localhost/confirm-company")
	require.Equal(t, []string{"/company-number", "/confirm-company"}, c.stack())

	location := c.get(constant.PathBack, "http://localhost/confirm-company")
	assert.Equal(t, "/company-number", location)
	assert.Empty(t, c.stack())
}

func TestBackNavigationUnderflowRedirectsToStart(t *testing.T) {
	c := newWizardClient(t)

	location := c.get(constant.PathBack, "http://localhost/company-number")
	assert.Equal(t, constant.PathStart, location)
	assert.True(t, c.backFlag())
}

func TestBackNavigationWithoutRefererTrustsThePop(t *testing.T) {
	c := newWizardClient(t)

	c.get("/confirm-company", "http://localhost/company-number")
	require.Equal(t, []string{"/company-number"}, c.stack())

	location := c.get(constant.PathBack, "")
	assert.Equal(t, "/company-number", location)
	assert.Empty(t, c.stack())
}

func TestBackNavigationDoublePopExhaustionFallsBackToStart(t *testing.T) {
	c := newWizardClient(t)

	c.get("/confirm-company", "http://localhost/company-number")
	require.Equal(t, []string{"/company-number"}, c.stack())

	// Sole entry equals the Referer: the second pop exhausts the stack.
	location := c.get(constant.PathBack, "http://localhost/company-number")
	assert.Equal(t, constant.PathStart, location)
	assert.Empty(t, c.stack())
}
