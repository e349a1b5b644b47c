package search

// Entry is a vocabulary slot: the vector position of a stem and how often
// it occurred across both documents of the pair.
type Entry struct {
	Index     int
	Frequency int
}

// Vocabulary maps stems to dense vector positions for one document pair.
type Vocabulary struct {
	Entries map[string]Entry
	Terms   []string // stems in index order
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{
		Entries: make(map[string]Entry),
		Terms:   make([]string, 0),
	}
}

// Add counts one occurrence of stem, assigning it the next index on first sight.
func (v *Vocabulary) Add(stem string) {
	e, exists := v.Entries[stem]
	if !exists {
		e = Entry{Index: len(v.Terms)}
		v.Terms = append(v.Terms, stem)
	}
	e.Frequency++
	v.Entries[stem] = e
}

// Lookup returns the entry for stem.
func (v *Vocabulary) Lookup(stem string) (Entry, bool) {
	e, ok := v.Entries[stem]
	return e, ok
}

// Len is the vector dimension for this vocabulary.
func (v *Vocabulary) Len() int {
	return len(v.Terms)
}

// BuildVocabulary indexes the stems of source followed by candidate.
// Index order follows first occurrence in that concatenated stream.
func (a *Analyzer) BuildVocabulary(source, candidate []string) *Vocabulary {
	vocab := NewVocabulary()
	for _, tokens := range [][]string{source, candidate} {
		for _, stem := range a.Terms(tokens) {
			vocab.Add(stem)
		}
	}
	return vocab
}

// MakeVector converts text to a term frequency vector over vocab.
// Stop words are not filtered here; they miss the lookup because they were
// never added to the vocabulary.
func (a *Analyzer) MakeVector(text string, vocab *Vocabulary) []float64 {
	vector := make([]float64, vocab.Len())
	for _, token := range Tokenize(text) {
		if e, ok := vocab.Lookup(a.Stem(token)); ok {
			vector[e.Index]++
		}
	}
	return vector
}
