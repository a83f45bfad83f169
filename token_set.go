package bivec

import (
	"encoding/json"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	serializer.RegisterTypedDeserializer((&TokenSet{}).SerializerType(), DeserializeTokenSet)
}

// A TokenSet translates between token IDs and tokens.
//
// A token's ID is its index in the token list.
// Lists produced by a vocabulary are ordered by
// decreasing frequency.
type TokenSet struct {
	tokens []string
	ids    map[string]int
}

// NewTokenSet creates a TokenSet from a list of distinct
// tokens.
func NewTokenSet(tokens []string) *TokenSet {
	res := &TokenSet{
		tokens: append([]string{}, tokens...),
		ids:    make(map[string]int, len(tokens)),
	}
	for i, tok := range res.tokens {
		res.ids[tok] = i
	}
	return res
}

// DeserializeTokenSet deserializes a TokenSet.
func DeserializeTokenSet(d []byte) (*TokenSet, error) {
	var tokens []string
	if err := json.Unmarshal(d, &tokens); err != nil {
		return nil, essentials.AddCtx("deserialize TokenSet", err)
	}
	return NewTokenSet(tokens), nil
}

// Len returns the number of tokens.
func (t *TokenSet) Len() int {
	return len(t.tokens)
}

// ID gets the ID for the token, or -1 if the token is not
// in the set.
func (t *TokenSet) ID(token string) int {
	if id, ok := t.ids[token]; ok {
		return id
	}
	return -1
}

// IDs computes the ID for each token.
func (t *TokenSet) IDs(tokens []string) []int {
	res := make([]int, len(tokens))
	for i, tok := range tokens {
		res[i] = t.ID(tok)
	}
	return res
}

// Token gets the token for the given ID.
//
// If the ID is out of range, then "" is returned.
func (t *TokenSet) Token(id int) string {
	if id < 0 || id >= len(t.tokens) {
		return ""
	}
	return t.tokens[id]
}

// Tokens returns a copy of the token list.
func (t *TokenSet) Tokens() []string {
	return append([]string{}, t.tokens...)
}

// SerializerType returns the unique ID used to serialize
// a TokenSet with the serializer package.
func (t *TokenSet) SerializerType() string {
	return "github.com/lmthang/bivec.TokenSet"
}

// Serialize serializes the TokenSet.
func (t *TokenSet) Serialize() ([]byte, error) {
	return json.Marshal(t.tokens)
}
