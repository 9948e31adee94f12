// Package ean genera códigos EAN-13 de uso interno para productos sin
// código de barras del fabricante. El cuerpo de 12 dígitos empieza con el
// prefijo reservado "uso interno" (rango GS1 20–29) y se completa con
// dígitos aleatorios; el decimotercer dígito es el de control estándar
// (ponderación alternada ×1/×3, complemento módulo 10).
package ean

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const bodyLength = 12

// CheckDigit calcula el dígito de control EAN-13 para un cuerpo de 12 dígitos.
func CheckDigit(body string) (int, error) {
	if len(body) != bodyLength {
		return 0, fmt.Errorf("ean: cuerpo debe tener %d dígitos, tiene %d", bodyLength, len(body))
	}
	sum := 0
	for i, r := range body {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("ean: carácter no numérico %q", r)
		}
		digit := int(r - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return (10 - sum%10) % 10, nil
}

// Generate produce un EAN-13 completo bajo el prefijo dado. El cuerpo es
// aleatorio; el caller debe reintentar ante colisión de unicidad en BD.
func Generate(prefix string) (string, error) {
	if prefix == "" || len(prefix) >= bodyLength {
		return "", fmt.Errorf("ean: prefijo inválido %q", prefix)
	}
	body := prefix
	for len(body) < bodyLength {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("ean: generar dígito aleatorio: %w", err)
		}
		body += n.String()
	}
	check, err := CheckDigit(body)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", body, check), nil
}

// Valid reporta si un código de 13 dígitos tiene dígito de control correcto.
func Valid(code string) bool {
	if len(code) != bodyLength+1 {
		return false
	}
	check, err := CheckDigit(code[:bodyLength])
	if err != nil {
		return false
	}
	return code[bodyLength] == byte('0'+check)
}
