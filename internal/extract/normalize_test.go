package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "ten digits", in: "8183456789", want: "818-345-6789"},
		{name: "formatted input", in: "(81) 8345-6789", want: "818-345-6789"},
		{name: "extension digits", in: "818345678912", want: "818-345-6789 x12"},
		{name: "too short returned as-is", in: "834567", want: "834567"},
		{name: "empty", in: "", want: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatPhone(tc.in))
		})
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Nohemi Cortes Quevedo", titleCase("NOHEMI CORTES QUEVEDO"))
	assert.Equal(t, "José Ángeles", titleCase("josé ángeles"))
	assert.Equal(t, "", titleCase("   "))
}

func TestPlausibleName(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want bool
	}{
		{name: "two tokens", in: "Juan Perez", want: true},
		{name: "accented tokens", in: "María de los Ángeles López", want: true},
		{name: "single token", in: "Juan", want: false},
		{name: "too many tokens", in: "a b c d e f g", want: false},
		{name: "numeric token", in: "Juan 12345", want: false},
		{name: "footer keyword", in: "Visite www.finsa.com.mx", want: false},
		{name: "financial keyword", in: "Importe Total Neto", want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, plausibleName(tc.in))
		})
	}
}

func TestCollapseWs(t *testing.T) {
	assert.Equal(t, "a b c", collapseWs("  a \t b\n c  "))
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Nohemi Cortes Quevedo")
	assert.Equal(t, "Nohemi", first)
	assert.Equal(t, "Cortes Quevedo", last)

	first, last = splitName("Nohemi")
	assert.Equal(t, "Nohemi", first)
	assert.Empty(t, last)

	first, last = splitName("")
	assert.Empty(t, first)
	assert.Empty(t, last)
}
