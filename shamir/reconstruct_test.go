package shamir

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var strategies = []Strategy{StrategyBasis, StrategyRational}

func TestReconstructKnownPolynomials(t *testing.T) {
	tests := []struct {
		name   string
		shares []*Share
		k      int
		want   string
	}{
		{"x^2+2", points(1, 3, 2, 6, 3, 11), 3, "2"},
		{"constant", points(1, 5, 2, 5), 2, "5"},
		{"unsorted input", points(3, 11, 1, 3, 4, 18, 2, 6), 3, "2"},
		{"all points", points(3, 11, 1, 3, 4, 18, 2, 6), 4, "2"},
		{"k=1 takes lowest x", points(5, 9, 2, 7), 1, "7"},
		{"negative secret", points(1, -1, 2, 4, 3, 11), 3, "-4"},
	}

	for _, tt := range tests {
		for _, strategy := range strategies {
			t.Run(tt.name+"/"+strategy.String(), func(t *testing.T) {
				secret, err := ReconstructWith(tt.shares, tt.k, strategy)
				require.NoError(t, err)
				assert.Equal(t, tt.want, secret.String())
			})
		}
	}
}

func TestReconstructLargeValues(t *testing.T) {
	// f(x) = (2^200 + 7) + 3^150 * x + 5^90 * x^2
	secret := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 200), big.NewInt(7))
	coeffs := []*big.Int{
		secret,
		new(big.Int).Exp(big.NewInt(3), big.NewInt(150), nil),
		new(big.Int).Exp(big.NewInt(5), big.NewInt(90), nil),
	}
	var shares []*Share
	for x := int64(1); x <= 4; x++ {
		bx := big.NewInt(x)
		shares = append(shares, &Share{X: bx, Y: Evaluate(coeffs, bx)})
	}

	for _, strategy := range strategies {
		got, err := ReconstructWith(shares, 3, strategy)
		require.NoError(t, err)
		assert.Equal(t, 0, secret.Cmp(got), strategy.String())
	}
}

func TestReconstructFractionalBasis(t *testing.T) {
	// y = 2x + 1 sampled at x = 1 and x = 3: L_1(0) = 3/2 is not an integer.
	shares := points(1, 3, 3, 7)

	_, err := ReconstructWith(shares, 2, StrategyBasis)
	assert.ErrorIs(t, err, ErrInexactDivision)

	secret, err := ReconstructWith(shares, 2, StrategyRational)
	require.NoError(t, err)
	assert.Equal(t, "1", secret.String())

	// y = 3x + 4 at x = -1 and x = 1.
	secret, err = ReconstructWith(points(-1, 1, 1, 7), 2, StrategyRational)
	require.NoError(t, err)
	assert.Equal(t, "4", secret.String())
}

func TestReconstructInconsistentShares(t *testing.T) {
	// No integer line passes through (1, 1) and (3, 2): P(0) would be 1/2.
	shares := points(1, 1, 3, 2)
	for _, strategy := range strategies {
		_, err := ReconstructWith(shares, 2, strategy)
		assert.ErrorIs(t, err, ErrInexactDivision, strategy.String())
	}
}

func TestReconstructErrors(t *testing.T) {
	t.Run("insufficient points", func(t *testing.T) {
		_, err := Reconstruct(points(1, 3, 2, 6), 3)
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})

	t.Run("empty set", func(t *testing.T) {
		_, err := Reconstruct(nil, 1)
		assert.ErrorIs(t, err, ErrInsufficientPoints)
	})

	t.Run("duplicate x", func(t *testing.T) {
		_, err := Reconstruct(points(1, 3, 2, 6, 1, 4), 2)
		assert.ErrorIs(t, err, ErrDuplicateX)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		_, err := Reconstruct(points(1, 3), 0)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	})

	t.Run("nil share", func(t *testing.T) {
		_, err := Reconstruct([]*Share{{X: big.NewInt(1), Y: big.NewInt(1)}, nil}, 1)
		assert.ErrorIs(t, err, ErrInvalidShare)

		_, err = Reconstruct([]*Share{{X: big.NewInt(1)}}, 1)
		assert.ErrorIs(t, err, ErrInvalidShare)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := ReconstructWith(points(1, 3), 1, Strategy(7))
		assert.Error(t, err)
	})
}

func TestParseStrategy(t *testing.T) {
	for _, strategy := range strategies {
		parsed, err := ParseStrategy(strategy.String())
		require.NoError(t, err)
		assert.Equal(t, strategy, parsed)
	}
	_, err := ParseStrategy("float")
	assert.Error(t, err)
}
