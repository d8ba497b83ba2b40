package service

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"strings"

	"extensions-web/internal/config"
	"extensions-web/internal/model"
	"extensions-web/internal/pkg/logger"
	"extensions-web/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	cookieIDLength  = 32 // uuid hex
	signatureLength = 27 // unpadded base64url of sha1
	cookieLength    = cookieIDLength + signatureLength
)

// ISessionService owns the cookie-id to store-key derivation and the
// whole-record load/save cycle. Every mutation round-trips the full data map;
// concurrent saves on one cookie are last-write-wins.
type ISessionService interface {
	// Resolve loads the record named by the request cookie, or creates a
	// fresh one (and sets the cookie) when the cookie is missing, malformed
	// or unknown to the store.
	Resolve(ctx *fiber.Ctx) (*model.Session, error)
	Save(ctx context.Context, sess *model.Session) error
}

type sessionService struct {
	repo   contract.ISessionRepository
	cfg    config.SessionConfig
	logger logger.ILogger
}

func NewSessionService(repo contract.ISessionRepository, cfg config.SessionConfig, log logger.ILogger) ISessionService {
	return &sessionService{repo: repo, cfg: cfg, logger: log}
}

func (s *sessionService) Resolve(ctx *fiber.Ctx) (*model.Session, error) {
	cookieValue := ctx.Cookies(s.cfg.CookieName)

	if id, ok := s.validateCookie(cookieValue); ok {
		data, err := s.repo.Load(ctx.Context(), id)
		if err != nil {
			return nil, err
		}
		if data != nil {
			return &model.Session{CookieID: id, SessionKey: id, Data: data}, nil
		}
		s.logger.Debug("SessionService", "Cookie references expired session, creating new", map[string]interface{}{"cookie_id": id})
	}

	return s.create(ctx), nil
}

func (s *sessionService) Save(ctx context.Context, sess *model.Session) error {
	return s.repo.Save(ctx, sess.SessionKey, sess.Data, s.cfg.TTL)
}

func (s *sessionService) create(ctx *fiber.Ctx) *model.Session {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx.Cookie(&fiber.Cookie{
		Name:     s.cfg.CookieName,
		Value:    id + s.sign(id),
		Path:     "/",
		Domain:   s.cfg.CookieDomain,
		Secure:   s.cfg.CookieSecure,
		HTTPOnly: true,
		MaxAge:   int(s.cfg.TTL.Seconds()),
	})

	return &model.Session{
		CookieID:   id,
		SessionKey: id,
		IsNew:      true,
		Data:       model.NewSessionData(),
	}
}

// validateCookie splits the wire value into id and signature and checks the
// signature. A bad value is treated the same as no cookie at all.
func (s *sessionService) validateCookie(value string) (string, bool) {
	if len(value) != cookieLength {
		return "", false
	}
	id := value[:cookieIDLength]
	if value[cookieIDLength:] != s.sign(id) {
		s.logger.Warn("SessionService", "Cookie signature mismatch", nil)
		return "", false
	}
	return id, true
}

func (s *sessionService) sign(id string) string {
	sum := sha1.Sum([]byte(id + s.cfg.CookieSecret))
	return base64.RawURLEncoding.EncodeToString(sum[:])[:signatureLength]
}
