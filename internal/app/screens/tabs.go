package screens

import (
	"context"
	"fmt"

	"github.com/ifpr-pinhais/campusconnect/internal/app/feed"
	"github.com/ifpr-pinhais/campusconnect/internal/app/navigator"
	"github.com/ifpr-pinhais/campusconnect/internal/style"
)

// MainTabs renders the active feed tab plus the tab bar. Switching tabs
// stays on this route; the profile opens on top of it.
type MainTabs struct {
	Deps
}

func NewMainTabs(deps Deps) *MainTabs { return &MainTabs{Deps: deps} }

func (s *MainTabs) Route() navigator.Route { return navigator.RouteMainTabs }

func (s *MainTabs) Render(ctx context.Context, frame navigator.Frame) (navigator.Action, error) {
	fmt.Fprintln(s.Out)
	switch frame.Tab {
	case navigator.TabAds:
		s.renderAds()
	default:
		s.renderNews()
	}

	choice, err := getSimpleText(s.In, "[1] Notícias  [2] Anúncios  [3] Perfil  [0] Sair", s.Out)
	if err != nil {
		return navigator.Exit(), err
	}

	switch choice {
	case "1":
		return navigator.SwitchTab(navigator.TabNews), nil
	case "2":
		return navigator.SwitchTab(navigator.TabAds), nil
	case "3":
		return navigator.Navigate(navigator.RouteProfile), nil
	case "0":
		return navigator.Exit(), nil
	default:
		fmt.Fprintln(s.Out, style.ErrorPrefix, "Opção inválida.")
		return navigator.Stay(), nil
	}
}

func (s *MainTabs) renderNews() {
	fmt.Fprintln(s.Out, style.Title.Render("Últimas Notícias"))
	for _, item := range s.Feed.News() {
		body := style.Bold.Render(item.Title) + "\n" +
			style.Dim.Render(item.Date) + "\n" +
			item.Description + "\n" +
			style.Link.Render(item.URL)
		fmt.Fprintln(s.Out, style.Card.Render(body))
	}
}

func (s *MainTabs) renderAds() {
	fmt.Fprintln(s.Out, style.Title.Render("Anúncios Recentes"))
	for _, ad := range s.Feed.Ads() {
		contact := "Contato via WhatsApp"
		if link, err := feed.WhatsAppLink(ad.WhatsAppNumber); err == nil {
			contact = style.Link.Render(link)
		}
		body := style.Bold.Render(ad.Title) + "\n" +
			style.Dim.Render(ad.Date) + "\n" +
			ad.Description + "\n" +
			contact
		fmt.Fprintln(s.Out, style.Card.Render(body))
	}
}
