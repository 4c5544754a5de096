package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Volume float64 `validate:"gte=0,lte=1"`
	Name   string  `validate:"lowercase_word"`
}

func TestRegisterFuncAndFieldErrors(t *testing.T) {
	require.NoError(t, RegisterFunc("lowercase_word", func(v string) bool {
		return v != "" && strings.ToLower(v) == v && !strings.Contains(v, " ")
	}))

	require.NoError(t, Struct(sample{Volume: 0.5, Name: "sakura"}))

	err := Struct(sample{Volume: 2, Name: "Not Valid"})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"Volume", "Name"}, FieldErrors(err))

	assert.Nil(t, FieldErrors(nil))
	assert.NoError(t, Var("abc", "lowercase_word"))
	assert.Error(t, Var("ABC", "lowercase_word"))
}
