package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/storekeeper-api/internal/application/auth"
	"github.com/jhoicas/storekeeper-api/internal/application/dto"
	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/infrastructure/memory"
	"github.com/jhoicas/storekeeper-api/pkg/jwt"
)

const secret = "test-secret"

type fakePublisher struct {
	msgs []ports.EmailNotification
	err  error
}

func (f *fakePublisher) PublishEmail(_ context.Context, msg ports.EmailNotification) error {
	f.msgs = append(f.msgs, msg)
	return f.err
}

func newUseCase(db *memory.DB, pub ports.NotificationPublisher) *auth.AuthUseCase {
	return auth.NewAuthUseCase(db.Users(), db.Stores(), pub,
		auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}, nil,
		auth.WithBcryptCost(bcrypt.MinCost))
}

func TestRegister_CreaUsuarioTiendaYToken(t *testing.T) {
	db := memory.New()
	pub := &fakePublisher{}
	uc := newUseCase(db, pub)
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{Email: "Alice@Example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", out.User.Email)
	require.NotEmpty(t, out.StoreID)

	store, err := db.Stores().GetByID(ctx, out.StoreID)
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, "alice's Store", store.Name)
	assert.Equal(t, "My inventory store", store.Description)
	assert.Equal(t, out.User.ID, store.UserID)

	userID, email, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, "alice@example.com", email)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "Registration Completed!", pub.msgs[0].Subject)
	assert.Equal(t, "Hi, Thanks for registering with our Inventory System!", pub.msgs[0].Text)
}

func TestRegister_EmailDuplicadoYPasswordDebil(t *testing.T) {
	db := memory.New()
	uc := newUseCase(db, nil)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "bob@x.com", Password: "12345678"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "bob@x.com", Password: "otra-clave-larga"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// El duplicado se detecta antes que la contraseña débil
	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "bob@x.com", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "carol@x.com", Password: "1234567"})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestRegister_CompensaSiFallaLaTienda(t *testing.T) {
	db := memory.New()
	db.FailStoreCreate = errors.New("db caída")
	pub := &fakePublisher{}
	uc := newUseCase(db, pub)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "dave@x.com", Password: "12345678"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrStoreNameTaken)

	u, err := db.Users().GetByEmail(ctx, "dave@x.com")
	require.NoError(t, err)
	assert.Nil(t, u, "el usuario se elimina al fallar la tienda")
	assert.Empty(t, pub.msgs)
}

func TestRegister_FalloDeNotificacionNoAfecta(t *testing.T) {
	db := memory.New()
	uc := newUseCase(db, &fakePublisher{err: errors.New("kafka caído")})

	out, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "erin@x.com", Password: "12345678"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestLogin_ErrorGenerico(t *testing.T) {
	db := memory.New()
	uc := newUseCase(db, nil)
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "frank@x.com", Password: "12345678"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "frank@x.com", Password: "12345678"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Empty(t, out.StoreID)

	_, errWrong := uc.Login(ctx, dto.LoginRequest{Email: "frank@x.com", Password: "incorrecta"})
	_, errUnknown := uc.Login(ctx, dto.LoginRequest{Email: "nadie@x.com", Password: "12345678"})
	assert.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}
