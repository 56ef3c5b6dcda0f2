package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	cases := map[string]string{
		"  düz metin  ":                          "düz metin",
		"<b>Yıllık</b> izin":                     "Yıllık izin",
		"Merhaba<script>alert(1)</script> dünya": "Merhaba dünya",
		"<p>Rapor &amp; özet</p>":                "Rapor & özet",
		"<style>p{color:red}</style><i>not</i>":  "not",
		`<a href="javascript:x()">tıkla</a>`:     "tıkla",
		"":                                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Text(in), in)
	}
}

func TestPtr(t *testing.T) {
	assert.Nil(t, Ptr(nil))
	s := " <b>x</b> "
	assert.Equal(t, "x", *Ptr(&s))
}
