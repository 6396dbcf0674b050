package keychain

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"salonsync-backend/lib/cryptoutil"
	"salonsync-backend/lib/timezone"
	"salonsync-backend/services/keychain/db"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("services/keychain")

var CredentialsNotFound = fmt.Errorf("no portal credentials stored for owner")
var SessionNotFound = fmt.Errorf("no portal session stored for owner")

// Service holds portal credentials and serialized portal sessions,
// one of each per owner. Usernames, passwords and cookie jars are
// sealed with a symmetric cipher before they touch the database and
// never logged in plaintext.
type Service struct {
	db     *sql.DB
	qry    *db.Queries
	cipher cryptoutil.Cipher
}

func NewService(ctx context.Context, database *sql.DB, key []byte) (Service, error) {
	cipher, err := cryptoutil.NewCipher(key)
	if err != nil {
		return Service{}, err
	}
	s := Service{
		db:     database,
		qry:    db.New(database),
		cipher: cipher,
	}

	go s.purgeSessionsDaemon(ctx)

	return s, nil
}

func (s Service) purgeSessionsDaemon(ctx context.Context) {
	slog.InfoContext(ctx, "start daemon", "task", "purge expired portal sessions every 30 minutes")

	ticker := time.NewTicker(time.Minute * 30)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			err := s.qry.DeletePortalSessionsBefore(ctx, timezone.Now().Unix())
			if err != nil {
				slog.WarnContext(ctx, "failed to purge expired portal sessions", "err", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

type Credentials struct {
	Username string
	Password string
}

func (s Service) SetCredentials(ctx context.Context, owner string, creds Credentials) error {
	ctx, span := tracer.Start(ctx, "SetCredentials")
	defer span.End()

	sealedUser, err := s.cipher.Seal([]byte(creds.Username))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to seal username")
		return err
	}
	sealedPass, err := s.cipher.Seal([]byte(creds.Password))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to seal password")
		return err
	}
	return s.qry.SetCredentials(ctx, db.SetCredentialsParams{
		Owner:       owner,
		UsernameEnc: sealedUser,
		PasswordEnc: sealedPass,
	})
}

func (s Service) GetCredentials(ctx context.Context, owner string) (Credentials, error) {
	ctx, span := tracer.Start(ctx, "GetCredentials")
	defer span.End()

	row, err := s.qry.GetCredentials(ctx, owner)
	if err == sql.ErrNoRows {
		return Credentials{}, CredentialsNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Credentials{}, err
	}

	username, err := s.cipher.Open(row.UsernameEnc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open sealed username")
		return Credentials{}, err
	}
	password, err := s.cipher.Open(row.PasswordEnc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open sealed password")
		return Credentials{}, err
	}
	return Credentials{
		Username: string(username),
		Password: string(password),
	}, nil
}

func (s Service) DeleteCredentials(ctx context.Context, owner string) error {
	return s.qry.DeleteCredentials(ctx, owner)
}

// SetSession stores a serialized cookie jar for the owner, replacing
// any previous session. expiresAt is persisted alongside so a stale
// jar is never handed back.
func (s Service) SetSession(ctx context.Context, owner string, cookieJar []byte, expiresAt time.Time) error {
	ctx, span := tracer.Start(ctx, "SetSession")
	defer span.End()

	sealed, err := s.cipher.Seal(cookieJar)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to seal cookie jar")
		return err
	}
	return s.qry.SetPortalSession(ctx, db.SetPortalSessionParams{
		Owner:        owner,
		CookieJarEnc: sealed,
		ExpiresAt:    expiresAt.Unix(),
	})
}

// GetSession returns the decrypted cookie jar for the owner. An
// expired session is purged eagerly and reported as SessionNotFound.
func (s Service) GetSession(ctx context.Context, owner string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "GetSession")
	defer span.End()

	row, err := s.qry.GetPortalSession(ctx, owner)
	if err == sql.ErrNoRows {
		return nil, SessionNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if row.ExpiresAt < timezone.Now().Unix() {
		err := s.qry.DeletePortalSession(ctx, owner)
		if err != nil {
			slog.WarnContext(ctx, "failed to delete expired session", "owner", owner, "err", err)
		}
		return nil, SessionNotFound
	}

	jar, err := s.cipher.Open(row.CookieJarEnc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open sealed cookie jar")
		return nil, err
	}
	return jar, nil
}

func (s Service) DeleteSession(ctx context.Context, owner string) error {
	return s.qry.DeletePortalSession(ctx, owner)
}
