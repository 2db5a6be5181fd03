package orders

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/speps/go-hashids/v2"
)

const DefaultPrefix = "VY"

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// OrderNumberGenerator builds ids of the form PREFIX-<unix millis>-<random suffix>.
// Uniqueness comes from the timestamp plus a uuid-seeded suffix; there is no counter.
type OrderNumberGenerator struct {
	prefix string
	hd     *hashids.HashID
	now    func() time.Time
}

func NewOrderNumberGenerator(prefix, salt string) (*OrderNumberGenerator, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 6
	data.Alphabet = suffixAlphabet

	hd, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("order number hashids: %w", err)
	}

	return &OrderNumberGenerator{prefix: prefix, hd: hd, now: time.Now}, nil
}

func (g *OrderNumberGenerator) Generate() (string, error) {
	nonce := uuid.New()
	n := int64(binary.BigEndian.Uint32(nonce[:4]))

	suffix, err := g.hd.EncodeInt64([]int64{n})
	if err != nil {
		return "", fmt.Errorf("encode order suffix: %w", err)
	}

	return fmt.Sprintf("%s-%d-%s", g.prefix, g.now().UnixMilli(), suffix), nil
}
