package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appModels "github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/config"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/auth"
)

type memUsers struct {
	byEmail map[string]*appModels.User
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*appModels.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrResourceNotFound
}

func (m *memUsers) Create(_ context.Context, u *appModels.User) error {
	u.ID = int64(len(m.byEmail) + 1)
	m.byEmail[u.Email] = u
	return nil
}

type memPrograms struct {
	names []string
	fail  string
}

func (m *memPrograms) FirstOrCreate(_ context.Context, name string) (*appModels.StudyProgram, error) {
	if name == m.fail {
		return nil, errors.New("insert failed")
	}
	for i, n := range m.names {
		if n == name {
			return &appModels.StudyProgram{ID: int64(i + 1), Name: n}, nil
		}
	}
	m.names = append(m.names, name)
	return &appModels.StudyProgram{ID: int64(len(m.names)), Name: name}, nil
}

func seedConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Seed.SuperadminEmail = "root@lppm.local"
	cfg.Seed.SuperadminPassword = "rahasia123"
	return cfg
}

func TestCreateDefaultData(t *testing.T) {
	users := &memUsers{byEmail: map[string]*appModels.User{}}
	programs := &memPrograms{}

	require.NoError(t, CreateDefaultData(context.Background(), seedConfig(), users, programs, zerolog.Nop()))

	admin, ok := users.byEmail["root@lppm.local"]
	require.True(t, ok)
	assert.Equal(t, appModels.RoleSuperadmin, admin.Role)
	assert.True(t, auth.CheckPassword(admin.Password, "rahasia123"))
	assert.Equal(t, DefaultStudyPrograms, programs.names)

	// Running again changes nothing.
	require.NoError(t, CreateDefaultData(context.Background(), seedConfig(), users, programs, zerolog.Nop()))
	assert.Len(t, users.byEmail, 1)
	assert.Len(t, programs.names, len(DefaultStudyPrograms))
}

func TestCreateDefaultDataWithoutPassword(t *testing.T) {
	cfg := seedConfig()
	cfg.Seed.SuperadminPassword = ""
	users := &memUsers{byEmail: map[string]*appModels.User{}}

	require.NoError(t, CreateDefaultData(context.Background(), cfg, users, &memPrograms{}, zerolog.Nop()))
	assert.Empty(t, users.byEmail)
}

func TestCreateDefaultDataKeepsGoingAfterFailure(t *testing.T) {
	users := &memUsers{byEmail: map[string]*appModels.User{}}
	programs := &memPrograms{fail: DefaultStudyPrograms[0]}

	err := CreateDefaultData(context.Background(), seedConfig(), users, programs, zerolog.Nop())
	require.Error(t, err)
	assert.Len(t, users.byEmail, 1)
	assert.Len(t, programs.names, len(DefaultStudyPrograms)-1)
}
