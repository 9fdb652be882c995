package curve

import (
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Curve is a map of registered elliptic curves, keyed by their name.
var Curve = make(map[string]elliptic.Curve)

// CurveRegist registers a curve so it can be looked up by name.
func CurveRegist(curve elliptic.Curve) {
	if _, ok := Curve[curve.Params().Name]; ok {
		panic("curve already registered")
	}
	Curve[curve.Params().Name] = curve
}

// CurveGet retrieves a registered curve by its name.
func CurveGet(name string) elliptic.Curve {
	return Curve[name]
}

// Names returns the registered curve names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Curve))
	for name := range Curve {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	CurveRegist(elliptic.P256())
	CurveRegist(elliptic.P384())
	CurveRegist(elliptic.P521())
	CurveRegist(secp256k1.S256())
}

// Order returns a copy of the group order N of the named curve.
func Order(name string) (*big.Int, error) {
	c := CurveGet(name)
	if c == nil {
		return nil, fmt.Errorf("unsupported curve: %s", name)
	}
	return new(big.Int).Set(c.Params().N), nil
}

// RandomScalar returns a uniformly random non-zero scalar below the order of
// the named curve, suitable as a secret to split.
func RandomScalar(name string) (*big.Int, error) {
	if name == secp256k1.S256().Params().Name {
		// The secp256k1 package draws private keys directly in [1, N).
		priv, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetBytes(priv.Serialize()), nil
	}

	n, err := Order(name)
	if err != nil {
		return nil, err
	}
	// k in [1, N)
	k, err := rand.Int(rand.Reader, new(big.Int).Sub(n, big.NewInt(1)))
	if err != nil {
		return nil, err
	}
	return k.Add(k, big.NewInt(1)), nil
}
