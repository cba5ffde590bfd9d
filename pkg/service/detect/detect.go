package detect

import (
	"regexp"
	"time"

	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
)

// Detector runs the rule-based classifiers and field extractors over single
// message lines. All methods are pure and deterministic apart from the clock,
// which only the ETA extractor uses.
type Detector struct {
	vocab *model.Vocabulary
	now   func() time.Time

	// word-boundary patterns per abstract bucket, parallel to
	// vocab.AbstractBuckets
	bucketWords [][]*regexp.Regexp
}

// Option is a functional option for detector configuration
type Option func(*Detector)

// WithClock replaces the time source used for EOD expansion (for tests).
func WithClock(now func() time.Time) Option {
	return func(d *Detector) {
		d.now = now
	}
}

// New creates a Detector over the given vocabulary. A nil vocabulary falls
// back to the built-in tables.
func New(vocab *model.Vocabulary, opts ...Option) *Detector {
	if vocab == nil {
		vocab = model.DefaultVocabulary()
	}

	d := &Detector{
		vocab: vocab,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.bucketWords = make([][]*regexp.Regexp, len(vocab.AbstractBuckets))
	for i, bucket := range vocab.AbstractBuckets {
		patterns := make([]*regexp.Regexp, 0, len(bucket.Words))
		for _, word := range bucket.Words {
			patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
		}
		d.bucketWords[i] = patterns
	}

	return d
}

// Vocabulary returns the tables the detector was built from.
func (d *Detector) Vocabulary() *model.Vocabulary {
	return d.vocab
}
