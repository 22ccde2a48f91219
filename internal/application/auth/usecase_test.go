package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/invorya/inventra-api/internal/application/auth"
	"github.com/invorya/inventra-api/internal/application/dto"
	"github.com/invorya/inventra-api/internal/domain"
	"github.com/invorya/inventra-api/internal/domain/entity"
	pkgjwt "github.com/invorya/inventra-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byID    map[string]*entity.User
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type fakeDenylist struct {
	added map[string]time.Duration
}

func (d *fakeDenylist) Add(_ context.Context, jti string, ttl time.Duration) error {
	if d.added == nil {
		d.added = map[string]time.Duration{}
	}
	d.added[jti] = ttl
	return nil
}

func (d *fakeDenylist) Contains(_ context.Context, jti string) (bool, error) {
	_, ok := d.added[jti]
	return ok, nil
}

const testSecret = "auth-usecase-test-secret"

func newUseCase(repo *fakeUserRepo, denylist *fakeDenylist) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, denylist, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "inventra-test",
	})
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:                 "Ana Gómez",
		Email:                "ana@example.com",
		Password:             "secreto-123",
		PasswordConfirmation: "secreto-123",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

// El registro guarda el password como hash bcrypt, asigna rol staff por
// defecto y devuelve un token utilizable.
func TestRegister_CreaUsuarioConHashYRolPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo, &fakeDenylist{})

	resp, err := uc.Register(registerRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	stored := repo.byEmail["ana@example.com"]
	require.NotNil(t, stored, "el usuario debe quedar persistido")
	assert.Equal(t, entity.RoleStaff, stored.Role, "sin rol explícito se asigna staff")
	assert.NotEqual(t, "secreto-123", stored.PasswordHash, "el password nunca se guarda plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto-123")),
		"el hash debe verificar contra el password original")

	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.User.ID, "la respuesta debe traer el ID generado")

	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err, "el token devuelto debe ser válido")
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, entity.RoleStaff, claims.Role)
}

// Un rol explícito válido se respeta.
func TestRegister_RolExplicito(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo, &fakeDenylist{})

	in := registerRequest()
	in.Role = entity.RoleAdmin
	resp, err := uc.Register(in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)
}

// Email ya registrado → ErrEmailAlreadyExists.
func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo, &fakeDenylist{})

	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	_, err = uc.Register(registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

// Credenciales correctas → token válido con los claims del usuario.
func TestLogin_CredencialesCorrectas(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo, &fakeDenylist{})
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "secreto-123"})
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.NotEmpty(t, claims.ID, "el token debe llevar jti para poder revocarse")
}

// Password incorrecto → ErrUnauthorized (no se filtra si el usuario existe).
func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo, &fakeDenylist{})
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "otra-cosa"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Email no registrado → ErrUserNotFound.
func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newUseCase(newFakeUserRepo(), &fakeDenylist{})

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout y CurrentUser
// ──────────────────────────────────────────────────────────────────────────────

// Logout agrega el jti del token al denylist con el TTL restante.
func TestLogout_RevocaElJTI(t *testing.T) {
	repo := newFakeUserRepo()
	denylist := &fakeDenylist{}
	uc := newUseCase(repo, denylist)
	resp, err := uc.Register(registerRequest())
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), claims))

	ttl, ok := denylist.added[claims.ID]
	require.True(t, ok, "el jti debe quedar en el denylist")
	assert.Greater(t, ttl, time.Duration(0), "el TTL debe ser el tiempo de vida restante")
	assert.LessOrEqual(t, ttl, 60*time.Minute)
}

// Un token ya expirado no se agrega al denylist (expira solo).
func TestLogout_TokenExpiradoNoSeAgrega(t *testing.T) {
	denylist := &fakeDenylist{}
	uc := newUseCase(newFakeUserRepo(), denylist)

	claims := &pkgjwt.Claims{}
	require.NoError(t, uc.Logout(context.Background(), claims))
	assert.Empty(t, denylist.added, "sin TTL restante no hay nada que revocar")
}

// CurrentUser devuelve el usuario del token, sin el hash.
func TestCurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUseCase(repo, &fakeDenylist{})
	resp, err := uc.Register(registerRequest())
	require.NoError(t, err)

	user, err := uc.CurrentUser(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	_, err = uc.CurrentUser("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
