package dto

// AuditQuery denetim kaydı filtreleri. Tarihler YYYY-MM-DD.
type AuditQuery struct {
	PageRequest
	UserID     string `query:"user_id"`
	Action     string `query:"action"`
	EntityType string `query:"entity_type"`
	EntityID   string `query:"entity_id"`
	From       string `query:"from"`
	To         string `query:"to"`
}
