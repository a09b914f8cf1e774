package screens

import (
	"context"
	"fmt"
	"os"

	"github.com/ifpr-pinhais/campusconnect/internal/app/auth"
	"github.com/ifpr-pinhais/campusconnect/internal/app/navigator"
	"github.com/ifpr-pinhais/campusconnect/internal/app/profileimg"
	"github.com/ifpr-pinhais/campusconnect/internal/style"
)

// Profile shows the signed-in user and hosts the account actions:
// profile photo, password change, logout and account deletion.
type Profile struct {
	Deps
}

func NewProfile(deps Deps) *Profile { return &Profile{Deps: deps} }

func (s *Profile) Route() navigator.Route { return navigator.RouteProfile }

func (s *Profile) Render(ctx context.Context, _ navigator.Frame) (navigator.Action, error) {
	user := s.Session.User()
	if user == nil {
		// the gate normally prevents this; treat it as a lost session
		return navigator.Reset(0, navigator.RouteLogin), nil
	}

	fmt.Fprintln(s.Out)
	fmt.Fprintln(s.Out, style.Title.Render("Perfil"))
	fmt.Fprintln(s.Out, style.Bold.Render(user.DisplayName()))
	fmt.Fprintln(s.Out, "E-mail:", user.Email)
	s.printPhotoStatus(ctx, user.NationalID)
	fmt.Fprintln(s.Out)

	choice, err := getSimpleText(s.In,
		"[1] Alterar Senha  [2] Foto de Perfil  [3] Logout  [4] Excluir Conta  [0] Voltar", s.Out)
	if err != nil {
		return navigator.Exit(), err
	}

	switch choice {
	case "1":
		return s.changePassword(ctx)
	case "2":
		return s.updatePhoto(ctx, user.NationalID)
	case "3":
		if err := s.Flow.Logout(ctx); err != nil {
			fmt.Fprintln(s.Out, style.ErrorPrefix, auth.MessageOf(err))
			return navigator.Stay(), nil
		}
		s.Session.Clear()
		return navigator.Reset(0, navigator.RouteLogin), nil
	case "4":
		return s.deleteAccount(ctx)
	case "0":
		return navigator.Back(), nil
	default:
		fmt.Fprintln(s.Out, style.ErrorPrefix, "Opção inválida.")
		return navigator.Stay(), nil
	}
}

func (s *Profile) printPhotoStatus(ctx context.Context, nationalID string) {
	img, err := s.Accounts.ProfileImage(ctx, nationalID)
	if err != nil || len(img) == 0 {
		fmt.Fprintln(s.Out, style.Dim.Render("Sem foto de perfil."))
		return
	}
	fmt.Fprintln(s.Out, style.Dim.Render(fmt.Sprintf("Foto de perfil definida (%d bytes).", len(img))))
}

func (s *Profile) changePassword(ctx context.Context) (navigator.Action, error) {
	newPassword, err := getPassword("Nova senha", s.Out)
	if err != nil {
		return navigator.Exit(), err
	}
	confirm, err := getPassword("Confirmar nova senha", s.Out)
	if err != nil {
		return navigator.Exit(), err
	}

	if err := s.Flow.ChangePassword(ctx, newPassword, confirm); err != nil {
		fmt.Fprintln(s.Out, style.ErrorPrefix, auth.MessageOf(err))
		if kind, ok := auth.KindOf(err); ok && kind == auth.KindUserNotFound {
			s.Session.Clear()
			return navigator.Reset(0, navigator.RouteLogin), nil
		}
		return navigator.Stay(), nil
	}
	fmt.Fprintln(s.Out, style.SuccessPrefix, "Senha alterada com sucesso.")
	return navigator.Stay(), nil
}

func (s *Profile) updatePhoto(ctx context.Context, nationalID string) (navigator.Action, error) {
	path, err := getSimpleText(s.In, "Caminho do arquivo de imagem (JPEG ou PNG)", s.Out)
	if err != nil {
		return navigator.Exit(), err
	}
	if path == "" {
		return navigator.Stay(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(s.Out, style.ErrorPrefix, "Não foi possível abrir a imagem.")
		return navigator.Stay(), nil
	}
	thumb, err := profileimg.Normalize(data)
	if err != nil {
		fmt.Fprintln(s.Out, style.ErrorPrefix, "Imagem inválida. Use JPEG ou PNG.")
		return navigator.Stay(), nil
	}
	if err := s.Accounts.SetProfileImage(ctx, nationalID, thumb); err != nil {
		fmt.Fprintln(s.Out, style.ErrorPrefix, "Não foi possível salvar a imagem.")
		return navigator.Stay(), nil
	}
	fmt.Fprintln(s.Out, style.SuccessPrefix, "Foto de perfil atualizada.")
	return navigator.Stay(), nil
}

func (s *Profile) deleteAccount(ctx context.Context) (navigator.Action, error) {
	confirm, err := getSimpleText(s.In,
		"Esta ação é permanente. Digite EXCLUIR para confirmar", s.Out)
	if err != nil {
		return navigator.Exit(), err
	}
	if confirm != "EXCLUIR" {
		fmt.Fprintln(s.Out, style.Dim.Render("Exclusão cancelada."))
		return navigator.Stay(), nil
	}

	if err := s.Flow.DeleteAccount(ctx); err != nil {
		fmt.Fprintln(s.Out, style.ErrorPrefix, auth.MessageOf(err))
		return navigator.Stay(), nil
	}
	s.Session.Clear()
	fmt.Fprintln(s.Out, style.SuccessPrefix, "Conta excluída.")
	return navigator.Reset(0, navigator.RouteLogin), nil
}
