package news

import "time"

// NewsType define los tipos de noticia del feed de avisos.
// @Enum promotion, tip, event, emergency, announcement
type NewsType string

const (
	TypePromotion    NewsType = "promotion"
	TypeTip          NewsType = "tip"
	TypeEvent        NewsType = "event"
	TypeEmergency    NewsType = "emergency"
	TypeAnnouncement NewsType = "announcement"
)

// News es un aviso con ventana de vigencia [StartDate, EndDate].
// Sin EndDate, la ventana queda abierta.
type News struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Type    NewsType `json:"newsType"`

	ImageURL  string `json:"imageUrl,omitempty"`
	ImageData []byte `json:"imageData,omitempty"`

	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	IsActive     bool   `json:"isActive"`
	Priority     int    `json:"priority"` // mayor = primero
	ExternalLink string `json:"externalLink,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// IsCurrentlyActive: activa y now dentro de la ventana de vigencia.
func (n News) IsCurrentlyActive(now time.Time) bool {
	if !n.IsActive {
		return false
	}
	if now.Before(n.StartDate) {
		return false
	}
	return n.EndDate == nil || !now.After(*n.EndDate)
}
