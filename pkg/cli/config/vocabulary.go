package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

type Vocabulary struct {
	path string
}

func (x *Vocabulary) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "vocabulary",
			Usage:       "Path to a TOML file overriding the built-in vocabulary tables",
			Category:    "Detection",
			Destination: &x.path,
			Sources:     cli.EnvVars("INCIDENTBOT_VOCABULARY"),
		},
	}
}

func (x Vocabulary) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Configure loads the vocabulary: built-in defaults, with any table present in
// the override file replacing its default wholesale.
func (x *Vocabulary) Configure() (*model.Vocabulary, error) {
	vocab := model.DefaultVocabulary()

	if x.path != "" {
		data, err := os.ReadFile(x.path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read vocabulary file", goerr.V("path", x.path))
		}
		if err := toml.Unmarshal(data, vocab); err != nil {
			return nil, goerr.Wrap(err, "failed to parse vocabulary file", goerr.V("path", x.path))
		}
	}

	if err := vocab.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid vocabulary", goerr.V("path", x.path))
	}

	return vocab, nil
}
