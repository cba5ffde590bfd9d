package model

import "github.com/m-mizutani/goerr/v2"

// StatusGroup maps a set of chat phrases to one normalized status label.
type StatusGroup struct {
	Label   string   `toml:"label"`
	Phrases []string `toml:"phrases"`
}

// AbstractBucket maps phrase groups to one short incident label. Keywords
// match as case-insensitive substrings; Words match on word boundaries (so
// "ui" does not fire on "build").
type AbstractBucket struct {
	Label    string   `toml:"label"`
	Keywords []string `toml:"keywords"`
	Words    []string `toml:"words"`
}

// Vocabulary holds every phrase and keyword table used by the rule-based
// detectors. All matching is case-insensitive substring search unless noted.
type Vocabulary struct {
	// IncidentKeywords and UrgencyKeywords drive the intent classifier.
	IncidentKeywords []string `toml:"incident_keywords"`
	UrgencyKeywords  []string `toml:"urgency_keywords"`

	// StrongActionPhrases trigger action item extraction; SoftPhrases are
	// hedges that suppress it.
	StrongActionPhrases []string `toml:"strong_action_phrases"`
	SoftPhrases         []string `toml:"soft_phrases"`

	// Ownership intent
	OwnerAssignmentPhrases    []string `toml:"owner_assignment_phrases"`
	AssignmentQuestionPhrases []string `toml:"assignment_question_phrases"`

	// OwnerConfirmationReplies are exact (lower-cased, trimmed) replies that
	// accept a pending ownership request.
	OwnerConfirmationReplies []string `toml:"owner_confirmation_replies"`

	// ETA detection
	ETAPhrases  []string `toml:"eta_phrases"`
	EODKeywords []string `toml:"eod_keywords"`

	StatusGroups    []StatusGroup    `toml:"status_group"`
	AbstractBuckets []AbstractBucket `toml:"abstract_bucket"`
}

// DefaultVocabulary returns the built-in phrase tables.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		IncidentKeywords: []string{
			"bug", "issue", "defect", "regression",
			"escalation", "problem", "failure",
		},

		UrgencyKeywords: []string{
			"p0",
			"p1",
			"sev0",
			"sev1",
			"critical",
			"urgent",
			"immediately",
			"asap",
			"high priority",
			"impacting customers",
			"prod down",
			"blocker",
		},

		StrongActionPhrases: []string{
			// First-person commitments / ownership
			"i will",
			"i'll",
			"i will take",
			"i'll take",
			"i can take",
			"i will handle",
			"i'll handle",
			"i can handle",
			"i will own",
			"i'll own",
			"i can own",
			"i am taking",
			"i'm taking",
			"taking this",
			"taking it",
			"taking ownership",
			"owning this",
			"on it",
			"i am on it",
			"i'm on it",
			"i am looking into",
			"i'm looking into",
			"looking into this",
			"looking into it",
			"i will look into",
			"i'll look into",
			"taking a look",
			"i will take a look",
			"i'll take a look",
			"i can take a look",
			"investigating",
			"triaging",
			"debugging",
			"root causing",
			"rca in progress",

			// Fix / mitigation actions
			"working on",
			"working on it",
			"working on fix",
			"fix in progress",
			"fix underway",
			"building a fix",
			"coding a fix",
			"preparing a fix",
			"will fix",
			"i will fix",
			"i'll fix",
			"fixing",
			"pushing a fix",
			"deploying a fix",
			"hotfix",
			"patch",
			"deploying",
			"rolling out",
			"rollout",
			"rolling back",
			"rollback",
			"reverting",
			"revert",
			"mitigating",
			"mitigation",
			"applying workaround",
			"workaround in place",
			"restarting",
			"restart",

			// Direct requests that usually imply an action item
			"please check",
			"pls check",
			"please review",
			"pls review",
			"please investigate",
			"pls investigate",
			"please look into",
			"pls look into",
			"please verify",
			"pls verify",
			"please confirm",
			"pls confirm",
			"please share",
			"pls share",
			"please send",
			"pls send",
			"please update",
			"pls update",
			"please take a look",
			"pls take a look",
			"could you please",
			"can you please",
			"can you",
			"could you",

			// Assignment language
			"assigned to",
			"assigning to",
			"assign to",
			"owner:",
			"action:",
			"todo:",
			"next step:",

			// Priority nudges
			"expedite",
		},

		SoftPhrases: []string{
			"maybe", "i think", "looks like",
			"we should", "let's see", "can we", "could we",
			"might be", "probably", "it seems",
		},

		OwnerAssignmentPhrases: []string{
			"will work on", "is taking", "assigned to",
			"will handle", "owns this", "looking into this", "have a look",
		},

		AssignmentQuestionPhrases: []string{
			"can you take this",
			"can you handle this",
			"can you look into this",
			"can you take this up",
		},

		OwnerConfirmationReplies: []string{
			"yes", "ok", "okay", "sure", "i will",
		},

		ETAPhrases: []string{
			"by",
			"complete by",
			"will complete by",
			"target to complete by",
			"expected by",
			"finish it by",
		},

		EODKeywords: []string{
			"eod",
			"end of day",
		},

		StatusGroups: []StatusGroup{
			{Label: "Investigating", Phrases: []string{"investigating", "looking into", "analyzing"}},
			{Label: "RCA Done", Phrases: []string{"rca done", "root cause identified", "root cause found"}},
			{Label: "Working on Fix", Phrases: []string{"working on fix", "fix in progress", "fix underway"}},
			{Label: "PR Raised", Phrases: []string{"pr raised", "pull request raised", "pr created"}},
			{Label: "Monitoring", Phrases: []string{"monitoring", "observing"}},
			{Label: "Resolved", Phrases: []string{"resolved", "fixed", "issue closed"}},
		},

		AbstractBuckets: []AbstractBucket{
			{
				Label:    "WebUI Bug",
				Keywords: []string{"webui", "web ui", "frontend", "front-end", "dashboard", "console"},
				Words:    []string{"ui"},
			},
			{
				Label:    "Service Outage",
				Keywords: []string{"outage", "downtime", "prod down", "service down"},
			},
			{
				Label:    "Auth/Login Issue",
				Keywords: []string{"login", "sso", "auth", "authentication", "authorization", "token expired"},
			},
			{
				Label:    "Software Bug",
				Keywords: []string{"bug", "issue", "defect", "regression", "failure", "error"},
			},
		},
	}
}

// Validate checks that every table a detector depends on is usable.
func (x *Vocabulary) Validate() error {
	if len(x.IncidentKeywords) == 0 {
		return goerr.New("incident keyword table is empty")
	}
	if len(x.UrgencyKeywords) == 0 {
		return goerr.New("urgency keyword table is empty")
	}
	if len(x.OwnerConfirmationReplies) == 0 {
		return goerr.New("owner confirmation reply table is empty")
	}

	for i, g := range x.StatusGroups {
		if g.Label == "" {
			return goerr.New("status group label is required", goerr.V("index", i))
		}
		if len(g.Phrases) == 0 {
			return goerr.New("status group has no phrases", goerr.V("label", g.Label))
		}
	}

	for i, b := range x.AbstractBuckets {
		if b.Label == "" {
			return goerr.New("abstract bucket label is required", goerr.V("index", i))
		}
		if len(b.Keywords) == 0 && len(b.Words) == 0 {
			return goerr.New("abstract bucket has no keywords", goerr.V("label", b.Label))
		}
	}

	return nil
}
