package roster

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cachemem "github.com/dropDatabas3/menahq/internal/cache/memory"
	"github.com/dropDatabas3/menahq/internal/domain/types"
	httperrors "github.com/dropDatabas3/menahq/internal/http/errors"
	"github.com/dropDatabas3/menahq/internal/store/memory"
)

func seed(t *testing.T, s *memory.Store) {
	t.Helper()
	ctx := context.Background()
	vacc := "JO"
	users := []types.User{
		{ID: "300", NameFirst: "Omar", NameLast: "Haddad", DivisionID: "MENA", ControllerRatingShort: "S3", Role: types.RoleControllerID, Vacc: &vacc},
		{ID: "100", NameFirst: "Layla", NameLast: "Karim", DivisionID: "MENA", ControllerRatingShort: "C1", Role: types.RoleControllerID},
		{ID: "200", NameFirst: "Sus", NameLast: "Pended", DivisionID: "MENA", ControllerRatingShort: "SUS", Role: types.RoleMemberID},
		{ID: "400", NameFirst: "Anna", NameLast: "Berg", DivisionID: "EUD", ControllerRatingShort: "S1", Role: types.RoleMemberID},
	}
	for i := range users {
		require.NoError(t, s.Users().Create(ctx, &users[i]))
	}
}

func TestHomeExtendedShowsSurnames(t *testing.T) {
	s := memory.New()
	seed(t, s)
	svc := NewRosterService(Deps{Pool: s})

	out, err := svc.Home(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, out.Users, 2)
	assert.Equal(t, "100", out.Users[0].CID)
	assert.Equal(t, "Karim", out.Users[0].NameLast)
	assert.Equal(t, "C1", out.Users[0].Rating)
	assert.Equal(t, "300", out.Users[1].CID)
	require.NotNil(t, out.Users[1].Vacc)
	assert.Equal(t, "JO", *out.Users[1].Vacc)
	assert.Zero(t, s.Outstanding())
}

func TestHomeRedactsEveryRow(t *testing.T) {
	s := memory.New()
	seed(t, s)
	svc := NewRosterService(Deps{Pool: s})

	out, err := svc.Home(context.Background(), false)
	require.NoError(t, err)
	for _, u := range out.Users {
		assert.Equal(t, "("+u.CID+")", u.NameLast)
		assert.NotEmpty(t, u.NameFirst)
	}
}

func TestHomeCachesUnredactedRows(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seed(t, s)
	svc := NewRosterService(Deps{Pool: s, Cache: cachemem.New(time.Minute), CacheTTL: time.Minute})

	_, err := svc.Home(ctx, false)
	require.NoError(t, err)

	// Con la base caída el cache sigue respondiendo, y sin la redacción previa.
	s.Fail(memory.OpAcquire, errors.New("down"))
	out, err := svc.Home(ctx, true)
	require.NoError(t, err)
	require.Len(t, out.Users, 2)
	assert.Equal(t, "Karim", out.Users[0].NameLast)
}

func TestHomeEmptyRoster(t *testing.T) {
	out, err := NewRosterService(Deps{Pool: memory.New()}).Home(context.Background(), false)
	require.NoError(t, err)
	assert.NotNil(t, out.Users)
	assert.Empty(t, out.Users)
}

func TestHomeDatabaseErrors(t *testing.T) {
	cases := map[memory.Op]string{
		memory.OpPool:       CodeDBGetPool,
		memory.OpAcquire:    CodeDBGetConn,
		memory.OpListRoster: CodeDBListUsers,
	}
	for op, code := range cases {
		s := memory.New()
		s.Fail(op, errors.New("boom"))
		_, err := NewRosterService(Deps{Pool: s}).Home(context.Background(), true)
		var appErr *httperrors.AppError
		require.True(t, errors.As(err, &appErr), code)
		assert.Equal(t, code, appErr.Code)
		assert.Equal(t, 500, appErr.HTTPStatus)
		assert.Zero(t, s.Outstanding())
	}
}
