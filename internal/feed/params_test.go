package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveParams(t *testing.T) {
	params := map[string]string{"country": "DE", "categoryId": "cat-7"}

	assert.Equal(t, "DE", ResolveParams("{{country}}", params))
	assert.Equal(t, "country:DE,cat-7", ResolveParams("country:{{country}},{{categoryId}}", params))
}

func TestResolveParamsLeavesUnknownPlaceholders(t *testing.T) {
	assert.Equal(t, "{{region}}", ResolveParams("{{region}}", map[string]string{"country": "DE"}))
}

func TestResolveParamsNoParams(t *testing.T) {
	assert.Equal(t, "{{country}}", ResolveParams("{{country}}", nil))
	assert.Equal(t, "plain", ResolveParams("plain", nil))
}

func TestResolveParamsRepeatedPlaceholder(t *testing.T) {
	got := ResolveParams("{{x}}-{{x}}", map[string]string{"x": "a"})
	assert.Equal(t, "a-a", got)
}
