package embedding

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// HashService embeds text without a remote model by hashing lowercased word
// unigrams and bigrams into a fixed number of signed buckets. Texts sharing
// words land close together under cosine distance.
type HashService struct {
	dims int
}

func NewHashService(dims int) *HashService {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &HashService{dims: dims}
}

func (s *HashService) Dimensions() int {
	return s.dims
}

func (s *HashService) Generate(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(words) == 0 {
		return nil, ErrEmptyText
	}

	vec := make([]float32, s.dims)
	add := func(token string) {
		h := xxhash.Sum64String(token)
		idx := h % uint64(s.dims)
		if h&(1<<63) != 0 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}
	for i, w := range words {
		add(w)
		if i > 0 {
			add(words[i-1] + " " + w)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		vec[0] = 1
		return vec, nil
	}
	inv := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= inv
	}
	return vec, nil
}
