package screens

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/ifpr-pinhais/campusconnect/internal/app/auth"
	"github.com/ifpr-pinhais/campusconnect/internal/app/feed"
	"github.com/ifpr-pinhais/campusconnect/internal/app/navigator"
	"github.com/ifpr-pinhais/campusconnect/internal/app/session"
	"github.com/ifpr-pinhais/campusconnect/internal/app/store"
	"github.com/ifpr-pinhais/campusconnect/internal/logging"
)

type fixture struct {
	deps Deps
	out  *bytes.Buffer
}

// setup builds the full local wiring with scripted keyboard and password
// input. Each element of passwords answers one getPassword call.
func setup(t *testing.T, input string, passwords ...string) *fixture {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE store (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	accounts := store.NewAccounts(store.NewSQLiteRepository(db))
	log := logging.NewZerologLogger(logging.Options{Output: io.Discard})
	flow := auth.NewFlow(auth.NewLocalDirectory(accounts), accounts, log)

	feedSvc, err := feed.NewService()
	require.NoError(t, err)

	queue := passwords
	orig := readPassword
	readPassword = func(int) ([]byte, error) {
		if len(queue) == 0 {
			return nil, io.EOF
		}
		pw := queue[0]
		queue = queue[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = orig })

	out := &bytes.Buffer{}
	return &fixture{
		deps: Deps{
			Flow:     flow,
			Session:  session.New(),
			Accounts: accounts,
			Feed:     feedSvc,
			In:       bufio.NewReader(strings.NewReader(input)),
			Out:      out,
			Log:      log,
		},
		out: out,
	}
}

func (f *fixture) register(t *testing.T) {
	t.Helper()
	_, err := f.deps.Flow.Register(context.Background(), auth.RegistrationInput{
		FullName:        "Ana Júlia da Silva",
		NationalID:      "12345678901",
		PhoneNumber:     "41999998888",
		Email:           "ana@example.com",
		Password:        "senha123",
		ConfirmPassword: "senha123",
	})
	require.NoError(t, err)
}

func TestLandingChoices(t *testing.T) {
	tests := []struct {
		input string
		want  navigator.Action
	}{
		{"1\n", navigator.Navigate(navigator.RouteLogin)},
		{"2\n", navigator.Navigate(navigator.RouteRegister)},
		{"0\n", navigator.Exit()},
		{"x\n", navigator.Stay()},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			fx := setup(t, tt.input)
			action, err := NewLanding(fx.deps).Render(context.Background(), navigator.Frame{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, action)
		})
	}
}

func TestLoginSuccessReplacesWithMainTabs(t *testing.T) {
	fx := setup(t, "12345678901\n", "senha123")
	fx.register(t)

	action, err := NewLogin(fx.deps).Render(context.Background(), navigator.Frame{})
	require.NoError(t, err)

	assert.Equal(t, navigator.Replace(navigator.RouteMainTabs), action)
	assert.True(t, fx.deps.Session.Active())
	assert.Contains(t, fx.out.String(), "Login realizado com sucesso!")
}

func TestLoginWrongPasswordStays(t *testing.T) {
	fx := setup(t, "12345678901\n", "errada99")
	fx.register(t)

	action, err := NewLogin(fx.deps).Render(context.Background(), navigator.Frame{})
	require.NoError(t, err)

	assert.Equal(t, navigator.Stay(), action)
	assert.False(t, fx.deps.Session.Active())
	assert.Contains(t, fx.out.String(), "CPF ou senha incorretos.")
}

func TestLoginPrefillAcceptedWithEmptyEntry(t *testing.T) {
	fx := setup(t, "\n", "senha123")
	fx.register(t)
	ctx := context.Background()

	_, err := fx.deps.Flow.Login(ctx, "12345678901", "senha123")
	require.NoError(t, err)
	require.NoError(t, fx.deps.Flow.Logout(ctx))

	action, err := NewLogin(fx.deps).Render(ctx, navigator.Frame{})
	require.NoError(t, err)

	assert.Equal(t, navigator.Replace(navigator.RouteMainTabs), action)
	assert.Contains(t, fx.out.String(), "[12345678901]", "prompt shows the prefill")
}

func TestLoginZeroGoesBack(t *testing.T) {
	fx := setup(t, "0\n")

	action, err := NewLogin(fx.deps).Render(context.Background(), navigator.Frame{})
	require.NoError(t, err)
	assert.Equal(t, navigator.Back(), action)
}

func TestRegisterSuccessLandsOnLogin(t *testing.T) {
	input := "Ana Júlia da Silva\n\n12345678901\n41999998888\nana@example.com\n"
	fx := setup(t, input, "senha123", "senha123")

	action, err := NewRegister(fx.deps).Render(context.Background(), navigator.Frame{})
	require.NoError(t, err)

	assert.Equal(t, navigator.Replace(navigator.RouteLogin), action)
	assert.Contains(t, fx.out.String(), "Cadastro realizado com sucesso!")

	recs, err := fx.deps.Accounts.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "ANA JÚLIA DA SILVA", recs[0].FullName)
}

func TestRegisterValidationFailureStays(t *testing.T) {
	input := "Ana Júlia da Silva\n\n12345678901\n41999998888\nana@example.com\n"
	fx := setup(t, input, "senha123", "outra456")

	action, err := NewRegister(fx.deps).Render(context.Background(), navigator.Frame{})
	require.NoError(t, err)

	assert.Equal(t, navigator.Stay(), action)
	assert.Contains(t, fx.out.String(), "As senhas não coincidem.")
}

func TestMainTabsRendersActiveTab(t *testing.T) {
	fx := setup(t, "2\n")

	action, err := NewMainTabs(fx.deps).Render(context.Background(),
		navigator.Frame{Route: navigator.RouteMainTabs, Tab: navigator.TabNews})
	require.NoError(t, err)

	assert.Equal(t, navigator.SwitchTab(navigator.TabAds), action)
	assert.Contains(t, fx.out.String(), "Últimas Notícias")
	assert.Contains(t, fx.out.String(), "Biblioteca do Campus Pinhais")
	assert.NotContains(t, fx.out.String(), "Anúncios Recentes")
}

func TestMainTabsAdsTabShowsWhatsAppLinks(t *testing.T) {
	fx := setup(t, "3\n")

	action, err := NewMainTabs(fx.deps).Render(context.Background(),
		navigator.Frame{Route: navigator.RouteMainTabs, Tab: navigator.TabAds})
	require.NoError(t, err)

	assert.Equal(t, navigator.Navigate(navigator.RouteProfile), action)
	assert.Contains(t, fx.out.String(), "Anúncios Recentes")
	assert.Contains(t, fx.out.String(), "wa.me/5511999999999")
}

func loginFixtureSession(t *testing.T, fx *fixture) {
	t.Helper()
	ctx := context.Background()
	rec, err := fx.deps.Flow.Login(ctx, "12345678901", "senha123")
	require.NoError(t, err)
	fx.deps.Session.Set(rec)
}

func TestProfileLogoutResetsToLogin(t *testing.T) {
	fx := setup(t, "3\n")
	fx.register(t)
	loginFixtureSession(t, fx)

	action, err := NewProfile(fx.deps).Render(context.Background(), navigator.Frame{})
	require.NoError(t, err)

	assert.Equal(t, navigator.Reset(0, navigator.RouteLogin), action)
	assert.False(t, fx.deps.Session.Active())

	marker, err := fx.deps.Accounts.Session(context.Background())
	require.NoError(t, err)
	assert.Empty(t, marker)
}

func TestProfileChangePassword(t *testing.T) {
	fx := setup(t, "1\n", "novasenha1", "novasenha1")
	fx.register(t)
	loginFixtureSession(t, fx)
	ctx := context.Background()

	action, err := NewProfile(fx.deps).Render(ctx, navigator.Frame{})
	require.NoError(t, err)
	assert.Equal(t, navigator.Stay(), action)
	assert.Contains(t, fx.out.String(), "Senha alterada com sucesso.")

	_, err = fx.deps.Flow.Login(ctx, "12345678901", "novasenha1")
	require.NoError(t, err)
}

func TestProfileDeleteAccountNeedsConfirmation(t *testing.T) {
	fx := setup(t, "4\nnao\n")
	fx.register(t)
	loginFixtureSession(t, fx)
	ctx := context.Background()

	action, err := NewProfile(fx.deps).Render(ctx, navigator.Frame{})
	require.NoError(t, err)
	assert.Equal(t, navigator.Stay(), action)

	recs, err := fx.deps.Accounts.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 1, "account survives a cancelled deletion")
}

func TestProfileDeleteAccountConfirmed(t *testing.T) {
	fx := setup(t, "4\nEXCLUIR\n")
	fx.register(t)
	loginFixtureSession(t, fx)
	ctx := context.Background()

	action, err := NewProfile(fx.deps).Render(ctx, navigator.Frame{})
	require.NoError(t, err)
	assert.Equal(t, navigator.Reset(0, navigator.RouteLogin), action)

	recs, err := fx.deps.Accounts.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.False(t, fx.deps.Session.Active())
}

func TestProfileWithoutSessionResetsToLogin(t *testing.T) {
	fx := setup(t, "")

	action, err := NewProfile(fx.deps).Render(context.Background(), navigator.Frame{})
	require.NoError(t, err)
	assert.Equal(t, navigator.Reset(0, navigator.RouteLogin), action)
}
