package shamir

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Share represents a share of a secret: the point (X, Y) on the dealer's polynomial.
type Share struct {
	X *big.Int
	Y *big.Int
}

// NewShare returns a share holding copies of x and y.
func NewShare(x, y *big.Int) *Share {
	return &Share{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)}
}

func (s *Share) String() string {
	return fmt.Sprintf("(%s, %s)", s.X, s.Y)
}

// Equal reports whether both coordinates match. A nil share equals only nil;
// a share with a nil coordinate equals nothing.
func (s *Share) Equal(o *Share) bool {
	if !s.valid() || !o.valid() {
		return s == nil && o == nil
	}
	return s.X.Cmp(o.X) == 0 && s.Y.Cmp(o.Y) == 0
}

func (s *Share) valid() bool {
	return s != nil && s.X != nil && s.Y != nil
}

// Split takes a secret and splits it into n shares, with a threshold of t.
// The polynomial has integer coefficients drawn from [0, bound) and is
// evaluated over the integers at x = 1, 2, ..., n.
func Split(secret *big.Int, n, t int, bound *big.Int) ([]*Share, error) {
	if secret == nil {
		return nil, fmt.Errorf("%w: nil secret", ErrInvalidShare)
	}
	if t < 1 || n < t {
		return nil, fmt.Errorf("%w: n must be >= t and t must be >= 1", ErrInvalidThreshold)
	}
	if bound == nil || bound.Sign() <= 0 {
		return nil, fmt.Errorf("invalid coefficient bound: must be positive")
	}

	// f(x) = secret + a_1*x + a_2*x^2 + ... + a_{t-1}*x^{t-1}
	coeffs := make([]*big.Int, t)
	coeffs[0] = new(big.Int).Set(secret)
	for i := 1; i < t; i++ {
		c, err := rand.Int(rand.Reader, bound)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}

	shares := make([]*Share, n)
	for i := 1; i <= n; i++ {
		x := big.NewInt(int64(i))
		shares[i-1] = &Share{X: x, Y: Evaluate(coeffs, x)}
	}
	return shares, nil
}

// Evaluate returns the value at x of the polynomial whose coefficients are
// given lowest degree first.
func Evaluate(coeffs []*big.Int, x *big.Int) *big.Int {
	y := new(big.Int)
	for i := len(coeffs) - 1; i >= 0; i-- {
		y.Mul(y, x)
		y.Add(y, coeffs[i])
	}
	return y
}
