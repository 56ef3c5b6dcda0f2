package trtext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "Ayşe Işık", Name("  ayşe   IŞIK "))
	assert.Equal(t, "İsmail Çelik", Name("ismail çelik"))
}

func TestLowerUpper(t *testing.T) {
	assert.Equal(t, "istanbul", Lower("İSTANBUL"))
	assert.Equal(t, "ışık", Lower("IŞIK"))
	assert.Equal(t, "İZMİR", Upper("izmir"))
	assert.Equal(t, "ali", FoldSearch("  ALİ "))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Şubat 2025", PeriodLabel(2025, 2))
	assert.Equal(t, "Aralık 2024", MonthLabel(time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", MonthName(13))
}
