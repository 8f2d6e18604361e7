package engine_test

import (
	"svim/internal/domains/availability/engine"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTerm(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{name: "stop words dropped", term: "Corte de Cabelo", want: "corte cabelo"},
		{name: "diacritics and punctuation", term: "  ESCÔVA   progressiva!! ", want: "escova progressiva"},
		{name: "alias after filler words", term: "quero fazer progressiva", want: "escova progressiva"},
		{name: "alias with accents", term: "pé e mão", want: "manicure pedicure"},
		{name: "digits kept", term: "Coloração 2 tons", want: "coloracao 2 tons"},
		{name: "only stop words returns input", term: "de", want: "de"},
		{name: "only punctuation returns input", term: "?!", want: "?!"},
		{name: "empty", term: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.NormalizeTerm(tt.term))
		})
	}
}

func TestNormalizeTerm_Idempotent(t *testing.T) {
	for _, term := range []string{"Corte de Cabelo", "progressiva", "Hidratação Capilar", "pé e mão"} {
		once := engine.NormalizeTerm(term)

		assert.Equal(t, once, engine.NormalizeTerm(once), term)
	}
}
