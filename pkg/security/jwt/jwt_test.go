package jwt

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobreviews/pkg/auth"
)

func newTestCodec() *Codec {
	return NewCodec("super-secret", "job-reviews", 24*time.Hour)
}

func TestCodec_GenerateAndVerify(t *testing.T) {
	t.Parallel()

	c := newTestCodec()
	want := auth.Identity{UserID: uuid.New(), Email: "ana@x.com"}

	tok, err := c.Generate(context.Background(), want)
	require.NoError(t, err)

	got, err := c.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCodec_ExpiryIs24Hours(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := newTestCodec()
	c.now = func() time.Time { return issued }

	tok, err := c.Generate(context.Background(), auth.Identity{UserID: uuid.New(), Email: "a@b.c"})
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, issued, claims.IssuedAt.Time.UTC())
	assert.Equal(t, issued.Add(24*time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestCodec_Verify_Expired(t *testing.T) {
	t.Parallel()

	old := newTestCodec()
	old.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	tok, err := old.Generate(context.Background(), auth.Identity{UserID: uuid.New(), Email: "a@b.c"})
	require.NoError(t, err)

	_, err = newTestCodec().Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewCodec("right-secret", "job-reviews", time.Hour).
		Generate(context.Background(), auth.Identity{UserID: uuid.New(), Email: "a@b.c"})
	require.NoError(t, err)

	_, err = NewCodec("wrong-secret", "job-reviews", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestCodec_Verify_Tampered(t *testing.T) {
	t.Parallel()

	c := newTestCodec()
	tok, err := c.Generate(context.Background(), auth.Identity{UserID: uuid.New(), Email: "a@b.c"})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "job-reviews",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New().String(),
		Email:  "mallory@x.com",
	}).SignedString([]byte("other"))
	require.NoError(t, err)
	payload := strings.Split(forged, ".")[1]

	_, err = c.Verify(parts[0] + "." + payload + "." + parts[2])
	assert.ErrorIs(t, err, ErrTokenSignature)
}

func TestCodec_Verify_Malformed(t *testing.T) {
	t.Parallel()

	for _, tok := range []string{"", "not.a.jwt", "abc"} {
		_, err := newTestCodec().Verify(tok)
		assert.ErrorIs(t, err, ErrTokenMalformed, "token %q", tok)
	}
}

func TestCodec_Verify_RejectsOtherIssuer(t *testing.T) {
	t.Parallel()

	tok, err := NewCodec("super-secret", "someone-else", time.Hour).
		Generate(context.Background(), auth.Identity{UserID: uuid.New(), Email: "a@b.c"})
	require.NoError(t, err)

	_, err = newTestCodec().Verify(tok)
	assert.Error(t, err)
}

func TestCodec_Verify_RejectsNoneAlg(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "job-reviews",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New().String(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestCodec().Verify(tok)
	assert.Error(t, err)
}
