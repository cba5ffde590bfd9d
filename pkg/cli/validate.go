package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var vocabCfg config.Vocabulary

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the vocabulary configuration",
		Flags:   vocabCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			vocab, err := vocabCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "vocabulary validation failed")
			}

			ok := color.New(color.FgGreen).SprintFunc()
			bold := color.New(color.Bold).SprintFunc()

			fmt.Printf("%s vocabulary is valid\n\n", ok("✓"))
			fmt.Printf("%s\n", bold("Tables"))
			fmt.Printf("  incident keywords:      %d\n", len(vocab.IncidentKeywords))
			fmt.Printf("  urgency keywords:       %d\n", len(vocab.UrgencyKeywords))
			fmt.Printf("  strong action phrases:  %d\n", len(vocab.StrongActionPhrases))
			fmt.Printf("  soft phrases:           %d\n", len(vocab.SoftPhrases))
			fmt.Printf("  owner phrases:          %d\n", len(vocab.OwnerAssignmentPhrases))
			fmt.Printf("  question phrases:       %d\n", len(vocab.AssignmentQuestionPhrases))
			fmt.Printf("  ETA phrases:            %d\n", len(vocab.ETAPhrases))
			fmt.Printf("  EOD keywords:           %d\n", len(vocab.EODKeywords))
			fmt.Printf("  status groups:          %d\n", len(vocab.StatusGroups))
			fmt.Printf("  abstract buckets:       %d\n", len(vocab.AbstractBuckets))

			return nil
		},
	}
}
