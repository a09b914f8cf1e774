package screens

import (
	"context"
	"fmt"

	"github.com/ifpr-pinhais/campusconnect/internal/app/auth"
	"github.com/ifpr-pinhais/campusconnect/internal/app/navigator"
	"github.com/ifpr-pinhais/campusconnect/internal/style"
)

// Login asks for the credential pair and opens a session. The CPF field
// is prefilled with the last successful login.
type Login struct {
	Deps
}

func NewLogin(deps Deps) *Login { return &Login{Deps: deps} }

func (s *Login) Route() navigator.Route { return navigator.RouteLogin }

func (s *Login) Render(ctx context.Context, _ navigator.Frame) (navigator.Action, error) {
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, style.Title.Render("Login"))
	fmt.Fprintln(s.Out, style.Dim.Render("Digite 0 para voltar."))

	nationalID, err := getTextWithDefault(s.In, "CPF", s.Flow.LastLogin(ctx), s.Out)
	if err != nil {
		return navigator.Exit(), err
	}
	if nationalID == "0" {
		return navigator.Back(), nil
	}

	password, err := getPassword("Senha", s.Out)
	if err != nil {
		return navigator.Exit(), err
	}

	rec, err := s.Flow.Login(ctx, nationalID, password)
	if err != nil {
		fmt.Fprintln(s.Out, style.ErrorPrefix, auth.MessageOf(err))
		return navigator.Stay(), nil
	}

	s.Session.Set(rec)
	fmt.Fprintln(s.Out, style.SuccessPrefix, "Login realizado com sucesso!")
	// the login screen must not stay on the back-stack
	return navigator.Replace(navigator.RouteMainTabs), nil
}
