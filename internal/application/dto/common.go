package dto

// PageRequest listeleme için sayfalama.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// Sayfalama sınırları.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// DefaultPage sıfır ya da sınır dışı değerleri varsayılana çeker.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse yanıttaki sayfa bilgisi.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ListResponse sayfalı liste yanıtı.
type ListResponse[T any] struct {
	Items []T          `json:"items"`
	Page  PageResponse `json:"page"`
}

// NewListResponse nil dilimi boş diziye çevirerek yanıt kurar.
func NewListResponse[T any](items []T, p PageRequest, total int) *ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &ListResponse[T]{
		Items: items,
		Page:  PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total},
	}
}

// ErrorResponse HTTP hata gövdesi.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse basit bilgi yanıtı.
type MessageResponse struct {
	Message string `json:"message"`
}
