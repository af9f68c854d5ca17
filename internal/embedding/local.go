package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

const defaultLocalDimension = 384

// Local is an offline feature-hashing embedder. Words and character trigrams
// are hashed into a signed bag of features and the result is L2 normalized,
// so texts sharing vocabulary point in similar directions.
type Local struct {
	dimension int
}

func NewLocal(dimension int) *Local {
	if dimension <= 0 {
		dimension = defaultLocalDimension
	}
	return &Local{dimension: dimension}
}

func (l *Local) Dimension() int {
	return l.dimension
}

func (l *Local) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float64, l.dimension)
	for _, tok := range tokenize(text) {
		l.add(vec, "w:"+tok, 1.0)

		runes := []rune("#" + tok + "#")
		for i := 0; i+3 <= len(runes); i++ {
			l.add(vec, "g:"+string(runes[i:i+3]), 0.5)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}

func (l *Local) add(vec []float64, feature string, weight float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()

	idx := int(sum % uint64(l.dimension))
	if sum>>63 == 1 {
		weight = -weight
	}
	vec[idx] += weight
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r) && r != '+' && r != '#'
	})
}
