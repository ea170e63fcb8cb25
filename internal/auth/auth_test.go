package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkolev/routecatalog/internal/domain"
)

func TestPlainVerifier(t *testing.T) {
	assert.Equal(t, "pw", PlainVerifier{}.Transform("pw"))
}

func TestSHA256Verifier(t *testing.T) {
	assert.Equal(t,
		"30c952fab122c3f9759f02a6d95c3758b246b4fee239957b2d4fee46e26170c4",
		SHA256Verifier{}.Transform("pw"))
}

func TestVerifierFor(t *testing.T) {
	v, err := VerifierFor("")
	require.NoError(t, err)
	assert.IsType(t, PlainVerifier{}, v)

	v, err = VerifierFor("plain")
	require.NoError(t, err)
	assert.IsType(t, PlainVerifier{}, v)

	v, err = VerifierFor("sha256")
	require.NoError(t, err)
	assert.IsType(t, SHA256Verifier{}, v)

	_, err = VerifierFor("bcrypt")
	assert.Error(t, err)
}

// roleTable authorizes a username only for the single role stored for it.
type roleTable map[string]domain.Role

func (rt roleTable) Authorize(_ context.Context, username string, role domain.Role) (bool, error) {
	stored, ok := rt[username]
	return ok && stored == role, nil
}

func TestAuthorizeAny_ExactMatchOnly(t *testing.T) {
	rt := roleTable{"bob": domain.RoleManager}
	ctx := context.Background()

	ok, err := AuthorizeAny(ctx, rt, "bob", domain.RoleManager)
	require.NoError(t, err)
	assert.True(t, ok)

	// A manager is not an admin; flat roles, no hierarchy.
	ok, err = AuthorizeAny(ctx, rt, "bob", domain.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = AuthorizeAny(ctx, rt, "bob", domain.RoleAdmin, domain.RoleManager)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = AuthorizeAny(ctx, rt, "ghost", domain.RoleExternal, domain.RoleInternal, domain.RoleManager, domain.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)
}
