package leads

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func postLead(body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("POST", "/v1/leads", strings.NewReader(body))
	w := httptest.NewRecorder()
	CreateOne(w, r)
	return w
}

// Só os caminhos de validação, que respondem antes de tocar o banco.
func TestCreateOneValidation(t *testing.T) {
	t.Run("Nome e telefone são obrigatórios", func(t *testing.T) {
		w := postLead(`{"name": "", "contact_phone": "11987654321"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = postLead(`{"name": "João", "contact_phone": "   "}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Valor negativo", func(t *testing.T) {
		w := postLead(`{"name": "João", "contact_phone": "11987654321", "value": -10}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Status desconhecido", func(t *testing.T) {
		w := postLead(`{"name": "João", "contact_phone": "11987654321", "status": "Pendente"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Origem fora do vocabulário", func(t *testing.T) {
		w := postLead(`{"name": "João", "contact_phone": "11987654321", "source": "Telegram"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Origem de lead inválida")
	})

	t.Run("Corpo malformado", func(t *testing.T) {
		w := postLead(`{`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
