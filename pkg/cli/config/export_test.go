package config

// NewVocabularyForTest builds a Vocabulary config pointing at the given file.
func NewVocabularyForTest(path string) *Vocabulary {
	return &Vocabulary{path: path}
}
