package setup

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/masthead/internal/config"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

const (
	hashKeyInfo  = "masthead cookie hash key"
	blockKeyInfo = "masthead cookie block key"
)

var NewSessionStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (sessions.Store, error) {
	secrets := make([][]byte, 0, len(conf.HTTP.Session.Keys))
	for _, k := range conf.HTTP.Session.Keys {
		secrets = append(secrets, []byte(k))
	}

	if len(secrets) == 0 {
		slog.WarnContext(ctx, "no session key configured, generating a random one")

		secret, err := getRandomBytes(32)
		if err != nil {
			return nil, errors.Wrap(err, "could not generate cookie secret")
		}

		secrets = append(secrets, secret)
	}

	keyPairs := make([][]byte, 0, len(secrets)*2)
	for _, secret := range secrets {
		hashKey, err := deriveKey(secret, hashKeyInfo, 64)
		if err != nil {
			return nil, errors.Wrap(err, "could not derive cookie hash key")
		}

		blockKey, err := deriveKey(secret, blockKeyInfo, 32)
		if err != nil {
			return nil, errors.Wrap(err, "could not derive cookie block key")
		}

		keyPairs = append(keyPairs, hashKey, blockKey)
	}

	sessionStore := sessions.NewCookieStore(keyPairs...)

	if conf.HTTP.Session.Cookie.MaxAge != nil {
		sessionStore.MaxAge(int(time.Duration(*conf.HTTP.Session.Cookie.MaxAge) / time.Second))
	}

	sessionStore.Options.Path = string(conf.HTTP.Session.Cookie.Path)
	sessionStore.Options.HttpOnly = bool(conf.HTTP.Session.Cookie.HTTPOnly)
	sessionStore.Options.Secure = bool(conf.HTTP.Session.Cookie.Secure)
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return sessionStore, nil
})

func deriveKey(secret []byte, info string, size int) ([]byte, error) {
	key := make([]byte, size)

	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(info)), key); err != nil {
		return nil, errors.WithStack(err)
	}

	return key, nil
}

func getRandomBytes(n int) ([]byte, error) {
	data := make([]byte, n)

	read, err := rand.Read(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if read != n {
		return nil, errors.Errorf("could not read %d bytes", n)
	}

	return data, nil
}
