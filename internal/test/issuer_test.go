package test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/spirit/pkg/math/curve"
	"github.com/taurusgroup/spirit/pkg/tact"
)

func TestIssuerIDs(t *testing.T) {
	ids := IssuerIDs(12)
	assert.Len(t, ids, 12)
	assert.True(t, ids.Valid())
	assert.True(t, ids.Contains("1", "10", "12"))
}

func TestRules(t *testing.T) {
	pp, issuers, err := tact.Setup(rand.Reader, tact.Config{Issuers: 2, N: 2, Threshold: 2, Degree: 1, TokensPerRequest: 1})
	require.NoError(t, err)
	state, cm, err := tact.Register(rand.Reader, curve.NewScalarUint64(1), pp)
	require.NoError(t, err)
	req, _, err := tact.TokenRequest(rand.Reader, state, cm, pp)
	require.NoError(t, err)

	honest, err := issuers[0].Issue(req, pp)
	require.NoError(t, err)

	_, err = (&Issuer{Issuer: issuers[0], Rule: Refuse{}}).Issue(req, pp)
	assert.ErrorIs(t, err, ErrRefused)

	corrupt, err := (&Issuer{Issuer: issuers[0], Rule: Corrupt{}}).Issue(req, pp)
	require.NoError(t, err)
	assert.False(t, corrupt.S.Equal(honest.S))

	impersonated, err := (&Issuer{Issuer: issuers[0], Rule: Impersonate{ID: issuers[1].ID()}}).Issue(req, pp)
	require.NoError(t, err)
	assert.Equal(t, issuers[1].ID(), impersonated.ID)
	assert.True(t, impersonated.S.Equal(honest.S))
}
