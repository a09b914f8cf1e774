// Package feed serves the campus news and classified-ads feeds. The
// content ships embedded in the binary; items are presented in curated
// order, exactly as authored.
package feed

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/ifpr-pinhais/campusconnect/internal/app/models"
)

//go:embed data/news.json data/ads.json
var dataFS embed.FS

// Service hands out the feed items.
type Service struct {
	news []models.NewsItem
	ads  []models.AdItem
}

// NewService parses the embedded feed data.
func NewService() (*Service, error) {
	s := &Service{}
	if err := loadJSON("data/news.json", &s.news); err != nil {
		return nil, err
	}
	if err := loadJSON("data/ads.json", &s.ads); err != nil {
		return nil, err
	}
	return s, nil
}

func loadJSON(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// News returns the news items in curated order.
func (s *Service) News() []models.NewsItem {
	return append([]models.NewsItem(nil), s.news...)
}

// Ads returns the classified ads in curated order.
func (s *Service) Ads() []models.AdItem {
	return append([]models.AdItem(nil), s.ads...)
}

var waNumberRe = regexp.MustCompile(`^\d{10,15}$`)

// WhatsAppLink builds the chat link for an advertiser's number. The
// number must be international format, digits only.
func WhatsAppLink(number string) (string, error) {
	if !waNumberRe.MatchString(number) {
		return "", fmt.Errorf("whatsapp number %q: want 10-15 digits", number)
	}
	return "https://wa.me/" + number, nil
}
