package curve

import (
	"crypto/elliptic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredCurves(t *testing.T) {
	assert.Equal(t, []string{"P-256", "P-384", "P-521", "secp256k1"}, Names())
	assert.Panics(t, func() { CurveRegist(elliptic.P256()) })
}

func TestOrder(t *testing.T) {
	n, err := Order("P-256")
	require.NoError(t, err)
	assert.Equal(t, 0, n.Cmp(elliptic.P256().Params().N))

	// Returned order is a copy.
	n.SetInt64(1)
	assert.NotEqual(t, 0, n.Cmp(elliptic.P256().Params().N))

	_, err = Order("curve25519")
	assert.Error(t, err)
}

func TestRandomScalar(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			n, err := Order(name)
			require.NoError(t, err)
			k, err := RandomScalar(name)
			require.NoError(t, err)
			assert.Equal(t, 1, k.Sign())
			assert.Equal(t, -1, k.Cmp(n))
		})
	}

	_, err := RandomScalar("unknown")
	assert.Error(t, err)
}
