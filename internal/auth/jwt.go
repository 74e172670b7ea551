package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrMissingAuthorization = errors.New("missing authorization header")
	ErrBadAuthorization     = errors.New("bad auth header")
)

// OrgClaim is the JWT claim naming the caller's active organization.
const OrgClaim = "org_id"

// Verifier validates bearer tokens signed either with a shared HS256 secret
// or with RS256 keys published through a JWKS endpoint.
type Verifier struct {
	Audience string
	Issuer   string

	secret []byte
	jwks   *keyfunc.JWKS
	parser *jwt.Parser
}

// NewHS256Verifier accepts tokens signed with secret.
func NewHS256Verifier(secret []byte) *Verifier {
	return &Verifier{
		secret: secret,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})),
	}
}

// NewJWKSVerifier accepts RS256 tokens whose keys are served by jwks.
func NewJWKSVerifier(jwks *keyfunc.JWKS) *Verifier {
	return &Verifier{
		jwks:   jwks,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{"RS256"})),
	}
}

// FetchJWKS loads a key set from url and refreshes it in the background.
func FetchJWKS(url string, refresh time.Duration) (*keyfunc.JWKS, error) {
	jwks, err := keyfunc.Get(url, keyfunc.Options{
		RefreshInterval:   refresh,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching jwks: %w", err)
	}
	return jwks, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	h := strings.TrimSpace(header)
	if h == "" {
		return "", ErrMissingAuthorization
	}
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || strings.Count(token, ".") != 2 {
		return "", ErrBadAuthorization
	}
	return token, nil
}

// PrincipalFromHeader verifies the bearer token in header.
func (v *Verifier) PrincipalFromHeader(header string) (Principal, error) {
	token, err := BearerToken(header)
	if err != nil {
		return Principal{}, err
	}
	return v.Verify(token)
}

// Verify parses and validates token and returns the principal it names.
func (v *Verifier) Verify(token string) (Principal, error) {
	parsed, err := v.parser.Parse(token, v.keyFor)
	if err != nil {
		return Principal{}, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, errors.New("invalid claims")
	}

	now := time.Now().Add(time.Minute).Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return Principal{}, errors.New("token expired")
	}
	if !claims.VerifyNotBefore(now, false) {
		return Principal{}, errors.New("token not valid yet")
	}
	if v.Audience != "" && !claims.VerifyAudience(v.Audience, false) {
		return Principal{}, errors.New("invalid audience")
	}
	if v.Issuer != "" && !claims.VerifyIssuer(v.Issuer, false) {
		return Principal{}, errors.New("invalid issuer")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Principal{}, errors.New("missing sub")
	}
	org, _ := claims[OrgClaim].(string)
	return Principal{UserID: sub, OrgID: org}, nil
}

func (v *Verifier) keyFor(t *jwt.Token) (any, error) {
	if v.jwks != nil {
		return v.jwks.Keyfunc(t)
	}
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("invalid signing method")
	}
	if len(v.secret) == 0 {
		return nil, errors.New("signing secret not configured")
	}
	return v.secret, nil
}

// IssueHS256 signs a token for p valid for ttl.
func IssueHS256(secret []byte, p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":    p.UserID,
		OrgClaim: p.OrgID,
		"iat":    now.Unix(),
		"nbf":    now.Add(-time.Minute).Unix(),
		"exp":    now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
