package ean_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockkeeper/retail-api/pkg/ean"
)

// TestCheckDigit_VectoresConocidos vectores EAN-13 públicos: el cálculo
// ×1/×3 módulo 10 debe reproducir el dígito de control real.
func TestCheckDigit_VectoresConocidos(t *testing.T) {
	cases := []struct {
		body string
		want int
	}{
		{"400638133393", 1}, // 4006381333931
		{"590123412345", 7}, // 5901234123457
		{"978014300723", 4}, // 9780143007234
		{"200000000000", 0},
	}
	for _, tc := range cases {
		got, err := ean.CheckDigit(tc.body)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "cuerpo %s", tc.body)
	}
}

func TestCheckDigit_CuerpoInvalido(t *testing.T) {
	_, err := ean.CheckDigit("12345")
	assert.Error(t, err, "cuerpo corto debe fallar")

	_, err = ean.CheckDigit("20000000000X")
	assert.Error(t, err, "carácter no numérico debe fallar")
}

// TestGenerate_PrefijoYValidez todo código generado conserva el prefijo,
// mide 13 dígitos y pasa la validación del dígito de control.
func TestGenerate_PrefijoYValidez(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := ean.Generate("20")
		require.NoError(t, err)
		assert.Len(t, code, 13)
		assert.True(t, strings.HasPrefix(code, "20"))
		assert.True(t, ean.Valid(code), "código generado inválido: %s", code)
	}
}

func TestGenerate_PrefijoInvalido(t *testing.T) {
	_, err := ean.Generate("")
	assert.Error(t, err)

	_, err = ean.Generate("123456789012")
	assert.Error(t, err, "prefijo que llena el cuerpo no deja dígitos aleatorios")
}

func TestValid_Negativos(t *testing.T) {
	assert.False(t, ean.Valid("4006381333932"), "dígito de control alterado")
	assert.False(t, ean.Valid("40063813339"), "longitud incorrecta")
}
