package authtoken

import (
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
)

const issuer = "relsnap"

// Issuer signs and verifies API access tokens. The signing secret and
// token lifetime are explicit construction-time values; there is no
// process-wide secret state.
type Issuer struct {
	secret   []byte
	lifetime time.Duration
}

// New creates a token issuer with the given secret and token lifetime
func New(secret string, lifetime time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, goerr.New("token secret must not be empty")
	}
	if lifetime <= 0 {
		return nil, goerr.New("token lifetime must be positive",
			goerr.V("lifetime", lifetime))
	}
	return &Issuer{
		secret:   []byte(secret),
		lifetime: lifetime,
	}, nil
}

// Issue mints a signed HS256 token for the given subject
func (x *Issuer) Issue(subject string) (string, error) {
	now := time.Now()
	token, err := jwt.NewBuilder().
		Issuer(issuer).
		Subject(subject).
		IssuedAt(now).
		Expiration(now.Add(x.lifetime)).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, x.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}
	return string(signed), nil
}

// Verify parses and validates a signed token, returning its subject
func (x *Issuer) Verify(signed string) (string, error) {
	token, err := jwt.Parse([]byte(signed),
		jwt.WithKey(jwa.HS256, x.secret),
		jwt.WithIssuer(issuer),
		jwt.WithValidate(true),
	)
	if err != nil {
		return "", goerr.Wrap(err, "invalid token")
	}
	return token.Subject(), nil
}
