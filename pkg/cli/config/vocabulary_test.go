package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/cli/config"
)

func writeVocabFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocabulary.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()
	return path
}

func TestVocabularyConfigure(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		var cfg config.Vocabulary
		vocab := gt.R1(cfg.Configure()).NoError(t)
		gt.Array(t, vocab.IncidentKeywords).Longer(0)
	})

	t.Run("override replaces only present tables", func(t *testing.T) {
		path := writeVocabFile(t, `
incident_keywords = ["meltdown"]

[[status_group]]
label = "Escalated"
phrases = ["escalated to vendor"]
`)

		cfg := config.NewVocabularyForTest(path)
		vocab := gt.R1(cfg.Configure()).NoError(t)

		gt.Array(t, vocab.IncidentKeywords).Length(1)
		gt.Value(t, vocab.IncidentKeywords[0]).Equal("meltdown")
		gt.Array(t, vocab.StatusGroups).Length(1)
		gt.Value(t, vocab.StatusGroups[0].Label).Equal("Escalated")

		// untouched tables keep their defaults
		gt.Array(t, vocab.UrgencyKeywords).Longer(0)
		gt.Array(t, vocab.AbstractBuckets).Longer(0)
	})

	t.Run("invalid override is rejected", func(t *testing.T) {
		path := writeVocabFile(t, `incident_keywords = []`)
		cfg := config.NewVocabularyForTest(path)
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		cfg := config.NewVocabularyForTest("/nonexistent/vocabulary.toml")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})
}
