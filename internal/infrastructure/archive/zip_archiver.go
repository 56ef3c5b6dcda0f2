// Package archive dışa aktarılan dosyaları bellekte ZIP arşivine paketler.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/ik-portal/internal/application/ports"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// ZipArchiver ports.Archiver'ı uygular.
type ZipArchiver struct{}

// NewZipArchiver kurucu.
func NewZipArchiver() *ZipArchiver { return &ZipArchiver{} }

// Archive dosyaları tek düzeyli bir ZIP'e yazar. Aynı ada sahip dosyalar
// "-2", "-3" ekiyle ayrıştırılır.
func (z *ZipArchiver) Archive(files []ports.ArchiveFile) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]int, len(files))
	modified := time.Now()

	for _, f := range files {
		name := SafeName(f.Name)
		if n := seen[name]; n > 0 {
			ext := path.Ext(name)
			seen[name] = n + 1
			name = fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), n+1, ext)
		} else {
			seen[name] = 1
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modified})
		if err != nil {
			return nil, fmt.Errorf("zip: %s girdisi oluşturulamadı: %w", name, err)
		}
		if _, err := fw.Write(f.Content); err != nil {
			return nil, fmt.Errorf("zip: %s yazılamadı: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: arşiv kapatılamadı: %w", err)
	}
	return buf.Bytes(), nil
}

// SafeName dizin bileşenlerini ve ASCII dışı karakterleri temizler.
func SafeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeName.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." || name == "/" {
		return "dosya"
	}
	return name
}

var _ ports.Archiver = (*ZipArchiver)(nil)
