package service

import (
	"context"
	"testing"

	"extensions-web/internal/config"
	"extensions-web/internal/model"
	"extensions-web/internal/pkg/apperrors"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWizardFixture() (IWizardService, *model.Session) {
	repo := memory.NewSessionRepository()
	sessions := NewSessionService(repo, config.SessionConfig{CookieName: "__EXT"}, logger.NewNopLogger())
	wizard := NewWizardService(sessions, logger.NewNopLogger())

	sess := &model.Session{
		CookieID:   "test-session",
		SessionKey: "test-session",
		Data:       model.NewSessionData(),
	}
	return wizard, sess
}

func TestCompanyInContextMissingIsSessionDataError(t *testing.T) {
	wizard, sess := newWizardFixture()

	_, err := wizard.CompanyInContext(sess)
	require.Error(t, err)

	var sde *apperrors.SessionDataError
	assert.ErrorAs(t, err, &sde)
}

func TestAddRequest(t *testing.T) {
	wizard, sess := newWizardFixture()
	ctx := context.Background()

	require.NoError(t, wizard.SetCompanyInContext(ctx, sess, "00006400"))
	require.NoError(t, wizard.AddRequest(ctx, sess, "req-1"))

	req, err := wizard.Request(sess)
	require.NoError(t, err)
	assert.Equal(t, "00006400", req.CompanyNumber)
	assert.Equal(t, "req-1", req.ExtensionRequestID)
}

func TestAddRequestDuplicateFailsAndListUnchanged(t *testing.T) {
	wizard, sess := newWizardFixture()
	ctx := context.Background()

	require.NoError(t, wizard.SetCompanyInContext(ctx, sess, "00006400"))
	require.NoError(t, wizard.AddRequest(ctx, sess, "req-1"))

	err := wizard.AddRequest(ctx, sess, "req-2")
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyExists)
	assert.Len(t, sess.Data.ExtensionSession.ExtensionRequests, 1)
	assert.Equal(t, "req-1", sess.Data.ExtensionSession.ExtensionRequests[0].ExtensionRequestID)
}

func TestAddRequestSecondCompanyCoexists(t *testing.T) {
	wizard, sess := newWizardFixture()
	ctx := context.Background()

	require.NoError(t, wizard.SetCompanyInContext(ctx, sess, "00006400"))
	require.NoError(t, wizard.AddRequest(ctx, sess, "req-1"))

	require.NoError(t, wizard.SetCompanyInContext(ctx, sess, "00011111"))
	require.NoError(t, wizard.AddRequest(ctx, sess, "req-2"))

	assert.Len(t, sess.Data.ExtensionSession.ExtensionRequests, 2)

	req, err := wizard.Request(sess)
	require.NoError(t, err)
	assert.Equal(t, "req-2", req.ExtensionRequestID)
}

func TestReasonInContextPointerLifecycle(t *testing.T) {
	wizard, sess := newWizardFixture()
	ctx := context.Background()

	require.NoError(t, wizard.SetCompanyInContext(ctx, sess, "00006400"))
	require.NoError(t, wizard.AddRequest(ctx, sess, "req-1"))

	_, err := wizard.ReasonInContext(sess)
	var sde *apperrors.SessionDataError
	assert.ErrorAs(t, err, &sde)

	require.NoError(t, wizard.SetReasonInContext(ctx, sess, "reason-1"))
	reasonID, err := wizard.ReasonInContext(sess)
	require.NoError(t, err)
	assert.Equal(t, "reason-1", reasonID)

	require.NoError(t, wizard.ClearReasonInContext(ctx, sess))
	_, err = wizard.ReasonInContext(sess)
	assert.Error(t, err)
}

func TestSetChangingDetailsPersists(t *testing.T) {
	repo := memory.NewSessionRepository()
	sessions := NewSessionService(repo, config.SessionConfig{CookieName: "__EXT"}, logger.NewNopLogger())
	wizard := NewWizardService(sessions, logger.NewNopLogger())
	ctx := context.Background()

	sess := &model.Session{CookieID: "k", SessionKey: "k", Data: model.NewSessionData()}
	require.NoError(t, wizard.SetChangingDetails(ctx, sess, true))

	stored, err := repo.Load(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.ChangingDetails)
}
