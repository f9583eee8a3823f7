package deck

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v4/suites"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/luca-patrignani/cards-against/domain/card"
)

var suite suites.Suite = suites.MustFind("Ed25519")

// shuffle permutes cards in place with Fisher-Yates.
func shuffle(cards []card.Card, intn func(n int) int) {
	for i := len(cards) - 1; i > 0; i-- {
		j := intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// streamIntn draws uniform integers from a kyber random stream.
func streamIntn(stream cipher.Stream) func(n int) int {
	return func(n int) int {
		return int(random.Int(big.NewInt(int64(n)), stream).Int64())
	}
}
