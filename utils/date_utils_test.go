package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlexibleDate(t *testing.T) {
	t.Run("Aceita data simples", func(t *testing.T) {
		parsed, ok := ParseFlexibleDate("2026-03-15")
		assert.True(t, ok)
		assert.Equal(t, 2026, parsed.Year())
		assert.Equal(t, 15, parsed.Day())
	})

	t.Run("Aceita RFC3339", func(t *testing.T) {
		_, ok := ParseFlexibleDate("2026-03-15T10:30:00Z")
		assert.True(t, ok)
	})

	t.Run("Rejeita lixo sem pânico", func(t *testing.T) {
		_, ok := ParseFlexibleDate("15/03/2026")
		assert.False(t, ok)

		_, ok = ParseFlexibleDate("not-a-date")
		assert.False(t, ok)

		_, ok = ParseFlexibleDate("")
		assert.False(t, ok)
	})
}
