package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// apiError sağlayıcının 200 dışı yanıtı.
type apiError struct {
	provider string
	status   int
	detail   string
}

func (e *apiError) Error() string {
	if e.detail == "" {
		return fmt.Sprintf("AI: %s HTTP %d", e.provider, e.status)
	}
	return fmt.Sprintf("AI: %s hatası (HTTP %d): %s", e.provider, e.status, e.detail)
}

// errorDetail sağlayıcıya özgü hata gövdesinden okunabilir mesaj çıkarır.
type errorDetail func(raw []byte) string

// postJSON in'i JSON olarak gönderir ve 200 yanıtını out'a çözer. Yanıt gövdesi
// maxResponseBytes ile sınırlıdır. Taşıma hatası sarmalanmaz; URL ya da başlıklar
// API anahtarı içerebilir.
func postJSON(ctx context.Context, client *http.Client, provider, url string, header http.Header, in, out any, detail errorDetail) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("AI: istek serileştirilemedi: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("AI: %s isteği oluşturulamadı", provider)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("AI: zaman aşımı ya da iptal: %w", ctx.Err())
		}
		return fmt.Errorf("AI: %s HTTP çağrısı başarısız", provider)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("AI: yanıt okunamadı: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		e := &apiError{provider: provider, status: resp.StatusCode}
		if detail != nil {
			e.detail = detail(raw)
		}
		return e
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("AI: %s yanıtı çözülemedi: %w", provider, err)
	}
	return nil
}
