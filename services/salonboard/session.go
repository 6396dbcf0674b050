package salonboard

import (
	"context"
	"log/slog"
	"salonsync-backend/lib/timezone"
	"salonsync-backend/services/keychain"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// sessions persisted to the keychain live this long before a fresh
// login is forced
const SessionTTL = time.Hour * 24

// SessionManager hands out authenticated portal clients. A persisted
// cookie jar is tried first; an invalid or expired one falls back to
// an interactive login whose resulting jar is re-persisted.
type SessionManager struct {
	keychain keychain.Service
	baseUrl  string
	captcha  CaptchaSolver
}

func NewSessionManager(kc keychain.Service, baseUrl string, captcha CaptchaSolver) SessionManager {
	return SessionManager{
		keychain: kc,
		baseUrl:  baseUrl,
		captcha:  captcha,
	}
}

// EnsureSession returns a logged-in client for the owner. The caller
// owns the client and must Close it on every exit path.
func (m SessionManager) EnsureSession(ctx context.Context, owner string, salonType SalonType) (*Client, error) {
	ctx, span := tracer.Start(ctx, "EnsureSession")
	defer span.End()
	span.SetAttributes(attribute.String("owner", owner))

	creds, err := m.keychain.GetCredentials(ctx, owner)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load credentials")
		return nil, err
	}

	client, err := NewClient(ctx, ClientOptions{
		BaseUrl:   m.baseUrl,
		Owner:     owner,
		SalonType: salonType,
		Captcha:   m.captcha,
	})
	if err != nil {
		return nil, err
	}

	jar, err := m.keychain.GetSession(ctx, owner)
	if err == nil {
		err = client.ImportCookies(jar)
		if err != nil {
			slog.WarnContext(ctx, "discarding unreadable persisted session", "owner", owner, "err", err)
		} else {
			valid, err := client.ValidateSession(ctx)
			if err != nil {
				client.Close()
				return nil, err
			}
			if valid {
				span.SetAttributes(attribute.Bool("session_reused", true))
				return client, nil
			}
			slog.InfoContext(ctx, "persisted session no longer valid, logging in again", "owner", owner)
		}
	} else if err != keychain.SessionNotFound {
		client.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load persisted session")
		return nil, err
	}

	err = client.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		client.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return nil, err
	}

	exported, err := client.ExportCookies()
	if err != nil {
		client.Close()
		return nil, err
	}
	err = m.keychain.SetSession(ctx, owner, exported, timezone.Now().Add(SessionTTL))
	if err != nil {
		// the login itself succeeded; a persistence failure only costs
		// a re-login next run
		slog.WarnContext(ctx, "failed to persist session", "owner", owner, "err", err)
	}

	span.SetAttributes(attribute.Bool("session_reused", false))
	return client, nil
}
