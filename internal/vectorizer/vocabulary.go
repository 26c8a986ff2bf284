// Package vectorizer maps review text and rating labels onto the dense
// feature vectors consumed by the linear classifier.
package vectorizer

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a token or index was never added to a Vocabulary.
var ErrNotFound = errors.New("not found in vocabulary")

// UnkToken is the sentinel every out-of-vocabulary review token collapses onto.
const UnkToken = "<UNK>"

// Vocabulary maintains a bidirectional token<->index mapping. Indices are
// dense, assigned in insertion order starting at zero, and stable for the
// lifetime of the instance.
type Vocabulary struct {
	tokenToIdx map[string]int
	idxToToken map[int]string
	addUnk     bool
	unkToken   string
	unkIndex   int
}

// SerializedVocabulary is the persisted form of a Vocabulary. The inverse
// mapping is never stored; it is rederived on load.
type SerializedVocabulary struct {
	TokenToIdx map[string]int `json:"token_to_idx"`
	AddUnk     bool           `json:"add_unk"`
	UnkToken   string         `json:"unk_token"`
}

// NewVocabulary creates an empty Vocabulary. When addUnk is set, the unknown
// sentinel is added immediately and takes index 0; lookups of absent tokens
// then resolve to it instead of failing.
func NewVocabulary(addUnk bool, unkToken string) *Vocabulary {
	return newVocabulary(nil, addUnk, unkToken)
}

func newVocabulary(tokenToIdx map[string]int, addUnk bool, unkToken string) *Vocabulary {
	if tokenToIdx == nil {
		tokenToIdx = make(map[string]int)
	}
	idxToToken := make(map[int]string, len(tokenToIdx))
	for token, idx := range tokenToIdx {
		idxToToken[idx] = token
	}
	v := &Vocabulary{
		tokenToIdx: tokenToIdx,
		idxToToken: idxToToken,
		addUnk:     addUnk,
		unkToken:   unkToken,
		unkIndex:   -1,
	}
	if addUnk {
		v.unkIndex = v.AddToken(unkToken)
	}
	return v
}

// FromSerializable reconstructs a Vocabulary from its persisted form.
func FromSerializable(s SerializedVocabulary) *Vocabulary {
	return newVocabulary(s.TokenToIdx, s.AddUnk, s.UnkToken)
}

// ToSerializable returns the persistable form of the Vocabulary.
func (v *Vocabulary) ToSerializable() SerializedVocabulary {
	return SerializedVocabulary{
		TokenToIdx: v.tokenToIdx,
		AddUnk:     v.addUnk,
		UnkToken:   v.unkToken,
	}
}

// AddToken records a token and returns its index. Adding a token that is
// already present returns the existing index without mutating the mapping.
func (v *Vocabulary) AddToken(token string) int {
	if idx, ok := v.tokenToIdx[token]; ok {
		return idx
	}
	idx := len(v.tokenToIdx)
	v.tokenToIdx[token] = idx
	v.idxToToken[idx] = token
	return idx
}

// LookupToken returns the index of token. With the unknown fallback enabled
// an absent token resolves to the sentinel index and the call never fails;
// with it disabled an absent token is ErrNotFound.
func (v *Vocabulary) LookupToken(token string) (int, error) {
	idx, ok := v.tokenToIdx[token]
	if ok {
		return idx, nil
	}
	if v.addUnk {
		return v.unkIndex, nil
	}
	return 0, fmt.Errorf("token %q: %w", token, ErrNotFound)
}

// LookupIndex returns the token at index, or ErrNotFound if the index was
// never assigned.
func (v *Vocabulary) LookupIndex(index int) (string, error) {
	token, ok := v.idxToToken[index]
	if !ok {
		return "", fmt.Errorf("index %d: %w", index, ErrNotFound)
	}
	return token, nil
}

// Size returns the number of distinct tokens, including the sentinel.
func (v *Vocabulary) Size() int {
	return len(v.tokenToIdx)
}

func (v *Vocabulary) String() string {
	return fmt.Sprintf("<Vocabulary(size=%d)>", v.Size())
}
