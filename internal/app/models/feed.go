package models

// NewsItem is a campus news entry shown on the news tab. Tapping one
// opens URL in an external browser.
type NewsItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	ImageURL    string `json:"imageUrl"`
	URL         string `json:"url"`
}

// AdItem is a classified ad shown on the ads tab. Contact happens over a
// WhatsApp deep link built from WhatsAppNumber (international format,
// digits only).
type AdItem struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Date           string `json:"date"`
	ImageURL       string `json:"imageUrl"`
	WhatsAppNumber string `json:"whatsappNumber"`
}
