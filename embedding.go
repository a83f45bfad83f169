// Package bivec trains monolingual and bilingual word
// embeddings with the skip-gram and CBOW models.
//
// The training engine lives in the word2vec sub-package.
// This package holds the pieces shared by every other
// package: corpus tokenization, token sets, and the
// Embedding interface implemented by trained models.
package bivec

import "github.com/unixpickle/anyvec"

// Embedding is a generic word embedding.
type Embedding interface {
	// Dim returns the dimensionality of the embedding.
	Dim() int

	// Embed returns the embedding for the token, or nil
	// if the token is not known.
	Embed(token string) anyvec.Vector

	// EmbedID returns the embedding for the token ID.
	EmbedID(id int) anyvec.Vector

	// Lookup finds the n nearest token IDs.
	//
	// If n is greater than the total number of words,
	// there will be fewer than n results.
	Lookup(vec anyvec.Vector, n int) ([]int, []anyvec.Numeric)

	// Token looks up the token for the token ID.
	Token(id int) string
}
