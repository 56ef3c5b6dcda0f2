package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionJSONYazar(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Out: &buf})

	l.Component("payroll").Info().Str("company_id", "c1").Msg("bordro oluşturuldu")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "payroll", line["cmp"])
	assert.Equal(t, "c1", line["company_id"])
	assert.Equal(t, "bordro oluşturuldu", line["message"])
}

func TestNew_SeviyeFiltreler(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("görünmemeli")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("görünmeli")
	assert.Contains(t, buf.String(), "görünmeli")
}

func TestNop_Sessiz(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Error().Msg("x") })
}

func TestTenant_AlanlariEkler(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Service: "ik-portal", Out: &buf})

	l.Tenant("c1", "").Warn().Msg("uyarı")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ik-portal", line["service"])
	assert.Equal(t, "c1", line["company_id"])
	assert.NotContains(t, line, "user_id")
	assert.Equal(t, "info", parseOrDefault(t, ""))
}

func parseOrDefault(t *testing.T, level string) string {
	t.Helper()
	var buf bytes.Buffer
	New(Config{Env: "production", Level: level, Out: &buf}).Info().Msg("x")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line["level"].(string)
}
