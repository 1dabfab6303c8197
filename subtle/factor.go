package subtle

import (
	"fmt"
	"math/big"
	"sync"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// factorCacheLimit bounds how many factorizations are retained. When the
// cache is full an arbitrary entry is dropped; entries are equally cheap to
// recompute for realistic moduli.
const factorCacheLimit = 128

var (
	factorMu    sync.Mutex
	factorCache = make(map[string][2]*big.Int, factorCacheLimit)
)

// Factor splits a composite modulus n into factors a and b with a*b = n,
// a >= b >= 2 and b as close to the square root of n as possible, which
// keeps the two Feistel halves balanced. A prime modulus has no such split
// and fails with ErrFPE.
//
// The same n always yields the same (a, b), so encrypt and decrypt agree on
// the half sizes. Results are cached; the returned factors are shared and
// must be treated as read-only.
func Factor(n *big.Int) (a, b *big.Int, err error) {
	if n == nil || n.Cmp(bigTwo) < 0 {
		return nil, nil, invalidArgf("modulus must be an integer of at least 2")
	}

	key := string(n.Bytes())
	factorMu.Lock()
	if cached, ok := factorCache[key]; ok {
		factorMu.Unlock()
		return cached[0], cached[1], nil
	}
	factorMu.Unlock()

	a, b = trialDivide(n)
	if a == nil {
		return nil, nil, fmt.Errorf("%w: modulus %s is prime and has no nontrivial factors", ErrFPE, n)
	}

	factorMu.Lock()
	if len(factorCache) >= factorCacheLimit {
		for k := range factorCache {
			delete(factorCache, k)
			break
		}
	}
	factorCache[key] = [2]*big.Int{a, b}
	factorMu.Unlock()

	return a, b, nil
}

// trialDivide walks candidate divisors downward from floor(sqrt(n)) and
// returns (n/d, d) for the first divisor found, or (nil, nil) when n is
// prime. Starting at the square root makes the first hit the most balanced
// factorization n admits.
func trialDivide(n *big.Int) (a, b *big.Int) {
	d := new(big.Int).Sqrt(n)
	q := new(big.Int)
	r := new(big.Int)
	for d.Cmp(bigTwo) >= 0 {
		q.QuoRem(n, d, r)
		if r.Sign() == 0 {
			return new(big.Int).Set(q), new(big.Int).Set(d)
		}
		d.Sub(d, bigOne)
	}
	return nil, nil
}
