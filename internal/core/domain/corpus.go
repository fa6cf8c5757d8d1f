package domain

import "math/rand/v2"

// Corpus is the in-memory joke list. It is never mutated after construction,
// so PickRandom may be called from any number of handlers at once.
type Corpus struct {
	jokes []Joke
	intN  func(n int) int
}

type CorpusOption func(*Corpus)

// WithIntN replaces the random source used to pick jokes.
func WithIntN(fn func(n int) int) CorpusOption {
	return func(c *Corpus) {
		c.intN = fn
	}
}

func NewCorpus(jokes []Joke, opts ...CorpusOption) *Corpus {
	c := &Corpus{
		jokes: append([]Joke(nil), jokes...),
		intN:  rand.IntN,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.jokes)
}

// Jokes returns a copy of the loaded jokes in file order.
func (c *Corpus) Jokes() []Joke {
	if c == nil {
		return nil
	}
	return append([]Joke(nil), c.jokes...)
}

// PickRandom returns the text of a uniformly chosen joke, or false when the
// corpus is empty.
func (c *Corpus) PickRandom() (string, bool) {
	if c.Len() == 0 {
		return "", false
	}

	return c.jokes[c.intN(len(c.jokes))].Text, true
}
