package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sag-insper/schedule-api/internal/apperror"
)

// Domain is the authorization tier encoded in a token.
type Domain string

const (
	DomainAdmin Domain = "admin"
	DomainTemp  Domain = "temp"
)

// Token lifetimes per trust domain.
const (
	AdminTokenTTL = 30 * 24 * time.Hour
	TempTokenTTL  = 24 * time.Hour
)

// issuanceCutover invalidates tokens issued before the signing scheme
// changed. Any token whose expires claim predates this instant is
// rejected as stale regardless of signature.
var issuanceCutover = time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC)

const bearerPrefix = "Bearer "

// TokenService signs and verifies the two-domain bearer tokens.
type TokenService struct {
	secrets Secrets
	now     func() time.Time
}

// NewTokenService creates a TokenService over the given signing keys.
func NewTokenService(secrets Secrets) *TokenService {
	return &TokenService{
		secrets: secrets,
		now:     time.Now,
	}
}

// Issue signs a new token for the given domain. The payload carries
// exactly two claims: the domain and the unix expiry timestamp.
func (s *TokenService) Issue(domain Domain) (string, error) {
	ttl := AdminTokenTTL
	secret := s.secrets.Admin
	if domain == DomainTemp {
		ttl = TempTokenTTL
		secret = s.secrets.Temp
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"domain":  string(domain),
		"expires": float64(s.now().Add(ttl).Unix()),
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", apperror.Internal("could not issue token")
	}
	return signed, nil
}

// Verify checks an Authorization header value and returns the trust
// domain it proves.
//
// The token is tried against the admin secret first, then the temp
// secret. A token only counts for the domain whose secret verified it
// AND whose domain claim matches — a temp claim signed with the admin
// key is rejected. The expires claim must postdate the issuance
// cutover and the current time.
func (s *TokenService) Verify(authorization string) (Domain, error) {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return "", apperror.Unauthorized("authorization not provided")
	}
	tokenStr := strings.TrimPrefix(authorization, bearerPrefix)

	domain := DomainAdmin
	claims, err := s.parse(tokenStr, s.secrets.Admin)
	if err != nil {
		domain = DomainTemp
		claims, err = s.parse(tokenStr, s.secrets.Temp)
		if err != nil {
			return "", apperror.Unauthorized("invalid signature")
		}
	}

	claimed, _ := claims["domain"].(string)
	if Domain(claimed) != domain {
		return "", apperror.Unauthorized("invalid token domain")
	}

	expires, _ := claims["expires"].(float64)
	if expires < float64(issuanceCutover.Unix()) {
		return "", apperror.Unauthorized("invalid token expiration")
	}
	if float64(s.now().Unix()) > expires {
		return "", apperror.Unauthorized("expired token")
	}

	return domain, nil
}

// parse verifies the signature with one secret and returns the claims.
// Expiry is not a registered claim here, so the library only checks
// the signature; the expires claim is validated by Verify.
func (s *TokenService) parse(tokenStr string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(
		tokenStr,
		func(token *jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
