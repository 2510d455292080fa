package supabase_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scribe/pkg/service/supabase"
)

const testAnonKey = "anon-key"

type testServer struct {
	*httptest.Server
	userCalls atomic.Int32
}

func newTestServer(t *testing.T, validToken string, publicKeys jwk.Set) *testServer {
	t.Helper()
	ts := &testServer{}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		ts.userCalls.Add(1)
		if r.Header.Get("apikey") != testAnonKey || r.Header.Get("Authorization") != "Bearer "+validToken {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-1","email":"alice@langchain.dev","aud":"authenticated"}`))
	})
	mux.HandleFunc("/auth/v1/.well-known/jwks.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		gt.NoError(t, json.NewEncoder(w).Encode(publicKeys))
	})

	ts.Server = httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newKeyPair(t *testing.T, kid string) (jwk.Key, jwk.Key) {
	t.Helper()

	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	gt.NoError(t, err).Required()

	priv, err := jwk.FromRaw(raw)
	gt.NoError(t, err).Required()
	gt.NoError(t, priv.Set(jwk.KeyIDKey, kid)).Required()
	gt.NoError(t, priv.Set(jwk.AlgorithmKey, jwa.RS256)).Required()

	pub, err := priv.PublicKey()
	gt.NoError(t, err).Required()

	return priv, pub
}

func signToken(t *testing.T, key jwk.Key, exp time.Time) string {
	t.Helper()

	tok, err := jwt.NewBuilder().
		Subject("user-1").
		IssuedAt(time.Now()).
		Expiration(exp).
		Build()
	gt.NoError(t, err).Required()

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.RS256, key))
	gt.NoError(t, err).Required()
	return string(signed)
}

func TestNew(t *testing.T) {
	_, err := supabase.New("", testAnonKey)
	gt.Error(t, err)

	_, err = supabase.New("https://example.supabase.co", "")
	gt.Error(t, err)

	client, err := supabase.New("https://example.supabase.co/", testAnonKey)
	gt.NoError(t, err)
	gt.Value(t, client).NotNil()
}

func TestClient_GetUser(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(t, "valid-token", jwk.NewSet())

	client, err := supabase.New(srv.URL, testAnonKey, supabase.WithHTTPClient(srv.Client()))
	gt.NoError(t, err).Required()

	t.Run("valid token", func(t *testing.T) {
		user, err := client.GetUser(ctx, "valid-token")
		gt.NoError(t, err).Required()
		gt.Value(t, user).NotNil()
		gt.Value(t, user.ID).Equal("user-1")
		gt.Value(t, user.Email).Equal("alice@langchain.dev")
	})

	t.Run("rejected token", func(t *testing.T) {
		user, err := client.GetUser(ctx, "other-token")
		gt.Error(t, err).Is(supabase.ErrInvalidSession)
		gt.Value(t, user).Nil()
	})

	t.Run("empty token", func(t *testing.T) {
		calls := srv.userCalls.Load()
		user, err := client.GetUser(ctx, "")
		gt.NoError(t, err)
		gt.Value(t, user).Nil()
		gt.Value(t, srv.userCalls.Load()).Equal(calls)
	})
}

func TestClient_GetUser_JWKS(t *testing.T) {
	ctx := context.Background()

	priv, pub := newKeyPair(t, "key-1")
	otherPriv, _ := newKeyPair(t, "key-1")

	publicKeys := jwk.NewSet()
	gt.NoError(t, publicKeys.AddKey(pub)).Required()

	validToken := signToken(t, priv, time.Now().Add(time.Hour))
	srv := newTestServer(t, validToken, publicKeys)

	client, err := supabase.New(srv.URL, testAnonKey,
		supabase.WithHTTPClient(srv.Client()),
		supabase.WithJWKSVerification(),
	)
	gt.NoError(t, err).Required()

	t.Run("signed by project key", func(t *testing.T) {
		user, err := client.GetUser(ctx, validToken)
		gt.NoError(t, err).Required()
		gt.Value(t, user.ID).Equal("user-1")
	})

	t.Run("signed by unknown key", func(t *testing.T) {
		calls := srv.userCalls.Load()
		_, err := client.GetUser(ctx, signToken(t, otherPriv, time.Now().Add(time.Hour)))
		gt.Error(t, err).Is(supabase.ErrInvalidSession)
		gt.Value(t, srv.userCalls.Load()).Equal(calls)
	})

	t.Run("expired token", func(t *testing.T) {
		_, err := client.GetUser(ctx, signToken(t, priv, time.Now().Add(-time.Hour)))
		gt.Error(t, err).Is(supabase.ErrInvalidSession)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := client.GetUser(ctx, "not-a-jwt")
		gt.Error(t, err).Is(supabase.ErrInvalidSession)
	})
}
