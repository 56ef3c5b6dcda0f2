package dto

// NotificationQuery kullanıcı bildirim listesi.
type NotificationQuery struct {
	PageRequest
	UnreadOnly bool `query:"unread"`
}

// UnreadCountResponse okunmamış bildirim sayısı.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MarkAllReadResponse toplu okundu işaretleme sonucu.
type MarkAllReadResponse struct {
	Updated int `json:"updated"`
}

// NotificationEvent kuyruğa yayımlanan bildirim mesajı.
type NotificationEvent struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Link      string `json:"link,omitempty"`
	CreatedAt string `json:"created_at"`
}
