package screens

import (
	"context"
	"fmt"

	"github.com/ifpr-pinhais/campusconnect/internal/app/navigator"
	"github.com/ifpr-pinhais/campusconnect/internal/style"
)

// Landing is the entry screen: a welcome and the choice between login
// and registration.
type Landing struct {
	Deps
}

func NewLanding(deps Deps) *Landing { return &Landing{Deps: deps} }

func (s *Landing) Route() navigator.Route { return navigator.RouteLanding }

func (s *Landing) Render(ctx context.Context, _ navigator.Frame) (navigator.Action, error) {
	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, style.Title.Render("Bem-vindo ao Campus Connect!"))
	fmt.Fprintln(s.Out, style.Dim.Render("Sua plataforma de conexão com o IFPR - Campus Pinhais."))
	fmt.Fprintln(s.Out)

	choice, err := getSimpleText(s.In, "[1] Login  [2] Cadastro  [0] Sair", s.Out)
	if err != nil {
		return navigator.Exit(), err
	}

	switch choice {
	case "1":
		return navigator.Navigate(navigator.RouteLogin), nil
	case "2":
		return navigator.Navigate(navigator.RouteRegister), nil
	case "0":
		return navigator.Exit(), nil
	default:
		fmt.Fprintln(s.Out, style.ErrorPrefix, "Opção inválida.")
		return navigator.Stay(), nil
	}
}
