package ir

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDefinition() Object {
	return Object{
		"name": String("usd_sofr"),
		"type": String("IRS"),
		"instruments": Array{
			Object{"tenor": String("1Y"), "rate": Decimal(0.0525)},
			Object{"tenor": String("2Y"), "rate": Decimal(0.049)},
		},
	}
}

func TestDefinitionHashDeterminism(t *testing.T) {
	h1, err := DefinitionHash(sampleDefinition())
	require.NoError(t, err)
	h2, err := DefinitionHash(sampleDefinition())
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	_, err = hex.DecodeString(h1)
	assert.NoError(t, err)
}

func TestDefinitionHashChangesWithContent(t *testing.T) {
	base, err := DefinitionHash(sampleDefinition())
	require.NoError(t, err)

	bumped := sampleDefinition()
	bumped["instruments"].(Array)[1].(Object)["rate"] = Decimal(0.0491)
	other, err := DefinitionHash(bumped)
	require.NoError(t, err)

	assert.NotEqual(t, base, other)
}

func TestBuildID(t *testing.T) {
	id1 := MustBuildID("run-1", "usd_sofr", "abc", 1)
	assert.Equal(t, id1, MustBuildID("run-1", "usd_sofr", "abc", 1))

	assert.NotEqual(t, id1, MustBuildID("run-2", "usd_sofr", "abc", 1))
	assert.NotEqual(t, id1, MustBuildID("run-1", "gbp_sonia", "abc", 1))
	assert.NotEqual(t, id1, MustBuildID("run-1", "usd_sofr", "abd", 1))
	assert.NotEqual(t, id1, MustBuildID("run-1", "usd_sofr", "abc", 2))
}

func TestDomainSeparation(t *testing.T) {
	data := []byte(`{"x":1}`)
	assert.NotEqual(t, hashWithDomain(DomainDefinition, data), hashWithDomain(DomainBuild, data))

	// The null separator keeps "ab"+"c" distinct from "a"+"bc".
	assert.NotEqual(t, hashWithDomain("ab", []byte("c")), hashWithDomain("a", []byte("bc")))
}

func TestDomainConstants(t *testing.T) {
	assert.Equal(t, "curveforge/definition/v1", DomainDefinition)
	assert.Equal(t, "curveforge/build/v1", DomainBuild)
}
