package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"

	"github.com/blademainer/itranswarp/internal/manage/rbac"
)

// ErrTokenExpired is returned when the Firebase token has expired.
var ErrTokenExpired = errors.New("firebase token expired")

// FirebaseTokenVerifier is the subset of the Firebase Admin auth client used here.
type FirebaseTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// FirebaseAuthenticator validates Firebase ID tokens and maps their claims onto a User.
type FirebaseAuthenticator struct {
	verifier FirebaseTokenVerifier
}

// NewFirebaseAuthenticator panics when verifier is nil.
func NewFirebaseAuthenticator(verifier FirebaseTokenVerifier) *FirebaseAuthenticator {
	if verifier == nil {
		panic("firebase token verifier is required")
	}
	return &FirebaseAuthenticator{verifier: verifier}
}

// Authenticate verifies token. Roles come from the "role" and "roles" custom claims; a numeric
// "role" is an itranswarp privilege level where lower numbers carry more rights.
func (f *FirebaseAuthenticator) Authenticate(r *http.Request, token string) (*User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, NewAuthError(ReasonMissingToken, ErrUnauthorized)
	}

	verified, err := f.verifier.VerifyIDToken(r.Context(), token)
	if err != nil {
		if firebaseauth.IsIDTokenExpired(err) || errors.Is(err, ErrTokenExpired) {
			return nil, NewAuthError(ReasonTokenExpired, err)
		}
		return nil, NewAuthError(ReasonTokenInvalid, err)
	}

	return &User{
		UID:   verified.UID,
		Email: claimString(verified.Claims["email"]),
		Name:  claimString(verified.Claims["name"]),
		Roles: claimStrings(verified.Claims["role"], verified.Claims["roles"]),
		Token: token,
	}, nil
}

func claimString(value any) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// claimStrings flattens string, list, level and {role: true} claim shapes into a de-duplicated slice.
func claimStrings(values ...any) []string {
	seen := make(map[string]struct{})
	var result []string
	add := func(val string) {
		val = strings.TrimSpace(val)
		if val == "" {
			return
		}
		if _, ok := seen[val]; ok {
			return
		}
		seen[val] = struct{}{}
		result = append(result, val)
	}

	for _, value := range values {
		switch v := value.(type) {
		case string:
			add(v)
		case float64:
			add(string(roleForLevel(int(v))))
		case int:
			add(string(roleForLevel(v)))
		case []string:
			for _, item := range v {
				add(item)
			}
		case []any:
			for _, item := range v {
				if s, ok := item.(string); ok {
					add(s)
				}
			}
		case map[string]any:
			for key, val := range v {
				if b, ok := val.(bool); ok && b {
					add(key)
				}
			}
		}
	}
	return result
}

func roleForLevel(level int) rbac.Role {
	switch {
	case level <= 0:
		return rbac.RoleAdmin
	case level <= 10:
		return rbac.RoleEditor
	case level <= 100:
		return rbac.RoleContributor
	default:
		return ""
	}
}
