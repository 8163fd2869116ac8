package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
	"github.com/vladislavdragonenkov/eshop/internal/service/user"
	"github.com/vladislavdragonenkov/eshop/internal/storage/memory"
)

func newFixture(t *testing.T) (*user.Service, domain.UserRepository) {
	t.Helper()
	repo := memory.NewUserRepository(memory.NewStore())
	return user.NewService(repo, nil), repo
}

func TestRegister(t *testing.T) {
	svc, repo := newFixture(t)

	id, err := svc.Register(user.RegisterInput{
		Name:     "Alice",
		UserName: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored, err := repo.GetByUserName("alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSeller, stored.Role)
	// Пароль хранится только хешем.
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.Register(user.RegisterInput{UserName: "", Password: "x"})
	require.ErrorIs(t, err, domain.ErrCredentialsRequired)

	_, err = svc.Register(user.RegisterInput{UserName: "alice", Password: ""})
	require.ErrorIs(t, err, domain.ErrCredentialsRequired)
}

func TestRegister_DuplicateUserName(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.Register(user.RegisterInput{UserName: "alice", Password: "one"})
	require.NoError(t, err)

	_, err = svc.Register(user.RegisterInput{UserName: "alice", Password: "two"})
	require.ErrorIs(t, err, domain.ErrUserNameTaken)
}

func TestRegisterByAdmin(t *testing.T) {
	svc, repo := newFixture(t)

	admin := domain.User{ID: "admin-1", Role: domain.RoleAdmin}
	seller := domain.User{ID: "seller-1", Role: domain.RoleSeller}

	_, err := svc.RegisterByAdmin(seller, user.RegisterInput{UserName: "bob", Password: "x"})
	require.ErrorIs(t, err, domain.ErrAdminRequired)

	_, err = svc.RegisterByAdmin(admin, user.RegisterInput{UserName: "bob", Password: "x", Role: domain.RoleAdmin})
	require.NoError(t, err)

	stored, err := repo.GetByUserName("bob")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, stored.Role)
}

func TestLogin(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.Register(user.RegisterInput{Name: "Alice", UserName: "alice", Password: "s3cret"})
	require.NoError(t, err)

	view, err := svc.Login("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", view.UserName)

	// Неверный пароль и неизвестный логин дают одну и ту же ошибку.
	_, err = svc.Login("alice", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login("nobody", "s3cret")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login("", "")
	require.ErrorIs(t, err, domain.ErrCredentialsRequired)
}

func TestList_OmitsPasswordHash(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.Register(user.RegisterInput{UserName: "alice", Password: "s3cret"})
	require.NoError(t, err)

	views, err := svc.List()
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "alice", views[0].UserName)
}
