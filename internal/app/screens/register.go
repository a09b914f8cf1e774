package screens

import (
	"context"
	"fmt"

	"github.com/ifpr-pinhais/campusconnect/internal/app/auth"
	"github.com/ifpr-pinhais/campusconnect/internal/app/navigator"
	"github.com/ifpr-pinhais/campusconnect/internal/style"
)

// Register collects the registration form and creates the account. On
// success the user lands on Login to sign in with the new credentials.
type Register struct {
	Deps
}

func NewRegister(deps Deps) *Register { return &Register{Deps: deps} }

func (s *Register) Route() navigator.Route { return navigator.RouteRegister }

func (s *Register) Render(ctx context.Context, _ navigator.Frame) (navigator.Action, error) {
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, style.Title.Render("Cadastro"))
	fmt.Fprintln(s.Out, style.Dim.Render("Digite 0 no nome para voltar."))

	var in auth.RegistrationInput
	var err error

	if in.FullName, err = getSimpleText(s.In, "Nome completo", s.Out); err != nil {
		return navigator.Exit(), err
	}
	if in.FullName == "0" {
		return navigator.Back(), nil
	}
	if in.Username, err = getSimpleText(s.In, "Nome de usuário (opcional)", s.Out); err != nil {
		return navigator.Exit(), err
	}
	if in.NationalID, err = getSimpleText(s.In, "CPF (somente números)", s.Out); err != nil {
		return navigator.Exit(), err
	}
	if in.PhoneNumber, err = getSimpleText(s.In, "Telefone (somente números)", s.Out); err != nil {
		return navigator.Exit(), err
	}
	if in.Email, err = getSimpleText(s.In, "E-mail", s.Out); err != nil {
		return navigator.Exit(), err
	}
	if in.Password, err = getPassword("Senha", s.Out); err != nil {
		return navigator.Exit(), err
	}
	if in.ConfirmPassword, err = getPassword("Confirmar senha", s.Out); err != nil {
		return navigator.Exit(), err
	}

	if _, err := s.Flow.Register(ctx, in); err != nil {
		fmt.Fprintln(s.Out, style.ErrorPrefix, auth.MessageOf(err))
		return navigator.Stay(), nil
	}

	fmt.Fprintln(s.Out, style.SuccessPrefix, "Cadastro realizado com sucesso!")
	return navigator.Replace(navigator.RouteLogin), nil
}
