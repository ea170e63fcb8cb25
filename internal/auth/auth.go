// Package auth verifies caller credentials and role membership against the
// users table. Both lookups are always parameterized: credentials must not
// become an injection vector even when the repositories run in their
// concatenated mode.
package auth

import (
	"context"

	"github.com/mkolev/routecatalog/internal/domain"
	"github.com/mkolev/routecatalog/internal/store"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (bool, error)
}

// Authorizer checks exact role membership. Roles are a flat enumeration;
// "at least" semantics do not exist, callers list acceptable roles
// explicitly via AuthorizeAny.
type Authorizer interface {
	Authorize(ctx context.Context, username string, role domain.Role) (bool, error)
}

const (
	authenticateStmt = `SELECT COUNT(*) FROM users WHERE name=$1 AND password=$2`
	authorizeStmt    = `SELECT COUNT(*) FROM users WHERE name=$1 AND type_id=$2`
)

type PGAccess struct {
	db       *store.DB
	verifier CredentialVerifier
}

func NewAccess(db *store.DB, verifier CredentialVerifier) *PGAccess {
	return &PGAccess{db: db, verifier: verifier}
}

// Authenticate reports whether a stored user matches both fields exactly,
// case-sensitively.
func (a *PGAccess) Authenticate(ctx context.Context, username, password string) (bool, error) {
	sess, err := a.db.Session(ctx)
	if err != nil {
		return false, domain.Internalf("authenticate: %v", err)
	}
	defer sess.Close()

	var count int
	err = sess.QueryRow(ctx, authenticateStmt, username, a.verifier.Transform(password)).Scan(&count)
	if err != nil {
		return false, domain.Internalf("authenticate: %v", err)
	}
	return count > 0, nil
}

// Authorize reports whether the stored user holds exactly the given role.
func (a *PGAccess) Authorize(ctx context.Context, username string, role domain.Role) (bool, error) {
	sess, err := a.db.Session(ctx)
	if err != nil {
		return false, domain.Internalf("authorize: %v", err)
	}
	defer sess.Close()

	var count int
	err = sess.QueryRow(ctx, authorizeStmt, username, int(role)).Scan(&count)
	if err != nil {
		return false, domain.Internalf("authorize: %v", err)
	}
	return count > 0, nil
}

// AuthorizeAny reports whether the user holds any of the listed roles.
// Each operation declares its allow-list explicitly instead of assuming
// an ordering the data model never declared.
func AuthorizeAny(ctx context.Context, a Authorizer, username string, roles ...domain.Role) (bool, error) {
	for _, role := range roles {
		ok, err := a.Authorize(ctx, username, role)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

var (
	_ Authenticator = (*PGAccess)(nil)
	_ Authorizer    = (*PGAccess)(nil)
)
