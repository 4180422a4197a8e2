package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/melkersson/lais/internal/utils"
	"github.com/melkersson/lais/pkg/models"
)

// example is one demo prompt, a title plus a single-user-message
// conversation.
type example struct {
	Title    string
	Messages []models.Message
}

var defaultExample = example{
	Title: "AI Explanation",
	Messages: []models.Message{
		{Role: models.RoleUser, Content: "Explain what AI is in two sentences."},
	},
}

// setupFlags parses args into an updated Config and the example to run.
// The trailing arguments are joined by spaces into the user message.
// Unless both a title and content are given, defaultExample is returned.
func setupFlags(defaults Config, args []string) (Config, example, error) {
	fs := flag.NewFlagSet("lais", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
	}
	tShort := fs.String("t", "", "Set the title of the example to run. Mutually exclusive with title flag.")
	tLong := fs.String("title", "", "Set the title of the example to run. Mutually exclusive with t flag.")
	cmShort := fs.String("cm", defaults.Model, "Set the chat model to use. Mutually exclusive with chat-model flag.")
	cmLong := fs.String("chat-model", defaults.Model, "Set the chat model to use. Mutually exclusive with cm flag.")
	if err := fs.Parse(args); err != nil {
		return defaults, example{}, err
	}
	chatModel, err := utils.ReturnNonDefault(*cmShort, *cmLong, defaults.Model)
	if err != nil {
		return defaults, example{}, fmt.Errorf("flags: 'cm', 'chat-model', error: %w", err)
	}
	title, err := utils.ReturnNonDefault(*tShort, *tLong, "")
	if err != nil {
		return defaults, example{}, fmt.Errorf("flags: 't', 'title', error: %w", err)
	}
	defaults.Model = chatModel

	content := strings.Join(fs.Args(), " ")
	if title == "" || content == "" {
		return defaults, defaultExample, nil
	}
	return defaults, example{
		Title: title,
		Messages: []models.Message{
			{Role: models.RoleUser, Content: content},
		},
	}, nil
}
