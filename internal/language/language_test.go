package language

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_Order(t *testing.T) {
	assert.Equal(t, []Language{Spanish, Italian, Portuguese, Catalan, Galician}, All())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Language
		wantErr bool
	}{
		{name: "exact", input: "Spanish", want: Spanish},
		{name: "lower case", input: "italian", want: Italian},
		{name: "padded", input: "  Galician ", want: Galician},
		{name: "legacy spelling", input: "Portugees", want: Portuguese},
		{name: "unknown", input: "Klingon", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownLanguage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLanguage_String(t *testing.T) {
	assert.Equal(t, "Catalan", Catalan.String())
	assert.Equal(t, "Language(42)", Language(42).String())
	assert.False(t, Language(-1).Valid())
}

func TestLanguage_JSON(t *testing.T) {
	var got struct {
		Source Language `json:"source"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"source":"catalan"}`), &got))
	assert.Equal(t, Catalan, got.Source)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"source":"Catalan"}`, string(out))

	_, err = json.Marshal(struct{ L Language }{L: Language(99)})
	assert.Error(t, err)
}

func TestCodeMap(t *testing.T) {
	m := CodeMap{
		Spanish: "es",
		Italian: "it",
	}

	code, ok := m.Code(Spanish)
	assert.True(t, ok)
	assert.Equal(t, "es", code)

	_, ok = m.Code(Galician)
	assert.False(t, ok)

	_, ok = m.Code(Language(17))
	assert.False(t, ok)

	assert.Equal(t, []Language{Spanish, Italian}, m.Supported())
}
