package tckn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTCKN(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		valid bool
	}{
		{"geçerli", "10000000146", true},
		{"10. hane hatalı", "10000000156", false},
		{"11. hane hatalı", "10000000147", false},
		{"ilk hane sıfır", "00000000146", false},
		{"kısa", "1000000014", false},
		{"harf içeriyor", "1000000014a", false},
		{"boş", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTCKN(tc.in)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateVKN(t *testing.T) {
	assert.NoError(t, ValidateVKN("1234567890"))
	assert.NoError(t, ValidateVKN("9876543217"))
	assert.Error(t, ValidateVKN("1234567891"))
	assert.Error(t, ValidateVKN("123456789"))
	assert.Error(t, ValidateVKN("12345-6789"))
}

func TestComputeVKNCheckDigit(t *testing.T) {
	d, err := ComputeVKNCheckDigit("111111111")
	require.NoError(t, err)
	assert.Equal(t, 4, d)

	_, err = ComputeVKNCheckDigit("12")
	assert.Error(t, err)
}

func TestValidateIBAN(t *testing.T) {
	assert.NoError(t, ValidateIBAN("TR330006100519786457841326"))
	assert.NoError(t, ValidateIBAN("tr33 0006 1005 1978 6457 8413 26"))
	assert.Error(t, ValidateIBAN("TR330006100519786457841327"))
	assert.Error(t, ValidateIBAN("DE89370400440532013000"))
	assert.Error(t, ValidateIBAN(""))
}
