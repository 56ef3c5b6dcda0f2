// Package sanitize serbest metin alanlarından HTML işaretlemesini temizler.
package sanitize

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Text HTML etiketlerini kaldırır, yalnızca metin düğümlerini bırakır ve
// script/style içeriklerini tamamen atar. Sonuç kırpılır.
func Text(s string) string {
	if !strings.ContainsAny(s, "<>&") {
		return strings.TrimSpace(s)
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var buf bytes.Buffer
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(buf.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			if isRawTag(name) {
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isRawTag(name) && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				buf.Write(z.Text())
			}
		}
	}
}

// Ptr nil güvenli Text.
func Ptr(s *string) *string {
	if s == nil {
		return nil
	}
	v := Text(*s)
	return &v
}

func isRawTag(name []byte) bool {
	n := string(name)
	return n == "script" || n == "style" || n == "iframe"
}
