package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
)

func TestDefaultVocabulary(t *testing.T) {
	vocab := model.DefaultVocabulary()
	gt.NoError(t, vocab.Validate())

	gt.Array(t, vocab.IncidentKeywords).Longer(0)
	gt.Array(t, vocab.UrgencyKeywords).Longer(0)
	gt.Array(t, vocab.StatusGroups).Longer(0)
	gt.Array(t, vocab.AbstractBuckets).Longer(0)
}

func TestVocabularyValidate(t *testing.T) {
	t.Run("empty incident keywords", func(t *testing.T) {
		vocab := model.DefaultVocabulary()
		vocab.IncidentKeywords = nil
		gt.Error(t, vocab.Validate())
	})

	t.Run("status group without label", func(t *testing.T) {
		vocab := model.DefaultVocabulary()
		vocab.StatusGroups = append(vocab.StatusGroups, model.StatusGroup{Phrases: []string{"x"}})
		gt.Error(t, vocab.Validate())
	})

	t.Run("abstract bucket without keywords", func(t *testing.T) {
		vocab := model.DefaultVocabulary()
		vocab.AbstractBuckets = append(vocab.AbstractBuckets, model.AbstractBucket{Label: "Empty"})
		gt.Error(t, vocab.Validate())
	})
}
