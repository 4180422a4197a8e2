package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/joho/godotenv"
	"github.com/melkersson/lais/internal/utils"
	"github.com/melkersson/lais/pkg/localai"
)

const usage = `lais - streaming client demo for LocalAI-style inference servers

Prerequisites:
  - A LocalAI-compatible server listening on the API base, by default http://localhost:8080/v1
  - (Optional) Set the LLM_API_BASE environment variable to override the API base, a .env file is also read
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output

Usage: lais [flags] <content...>

Flags:
  -t, -title string         Set the title of the example to run.
  -cm, -chat-model string   Set the chat model to use. (default is found in laisConfig.json)

The trailing arguments are joined by spaces into a single user message.
Without both a title and content, a fixed example prompt is used.

Examples:
  - lais -t "My Example" "This is an example of a data mart in SQL." "It has two tables: fact and dimension."
  - LLM_API_BASE=http://localhost:8081/v1 lais -t greeting Say hello in three languages
`

// Config is persisted as laisConfig.json in the lais config directory.
type Config struct {
	APIBase  string                 `json:"api_base"`
	Model    string                 `json:"model"`
	Sampling localai.SamplingConfig `json:"sampling"`
}

var defaultConf = Config{
	APIBase:  localai.DefaultAPIBase,
	Model:    "phi-3.5-mini-instruct",
	Sampling: localai.DefaultSampling(),
}

func main() {
	ancli.SetupSlog()
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		ancli.Warnf("failed to load .env: %v\n", err)
	}
	confDir, err := utils.GetLaisConfigDir()
	if err != nil {
		ancli.Errf("failed to find config dir path: %v", err)
		os.Exit(1)
	}
	conf, err := utils.LoadConfigFromFile(confDir, "laisConfig.json", &defaultConf)
	if err != nil {
		ancli.Errf("failed to load config: %v", err)
		os.Exit(1)
	}
	if apiBase := os.Getenv("LLM_API_BASE"); apiBase != "" {
		conf.APIBase = apiBase
	}
	conf, ex, err := setupFlags(conf, os.Args[1:])
	if err != nil {
		ancli.Errf("failed to parse flags: %v", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { shutdown.Monitor(cancel) }()

	client := localai.NewWithSampling(conf.APIBase, conf.Sampling)
	if err := run(ctx, client, conf.Model, ex); err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		os.Exit(1)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye! 🚀\n")
	}
}

// run prints the model list, then streams the completion for ex while
// printing fragments as they arrive, ending with the total time and the
// concatenated response. A model listing failure is only a warning, the
// server may still serve completions.
func run(ctx context.Context, client *localai.Client, model string, ex example) error {
	fmt.Println("\nAvailable Models:")
	mdls, err := client.ListModels(ctx)
	if err != nil {
		ancli.Warnf("failed to list models: %v\n", err)
	} else {
		fmt.Println(debug.IndentedJsonFmt(mdls))
	}

	fmt.Printf("\nExample: %v\n", ex.Title)
	fmt.Println("Response:")
	events, err := client.StreamCompletions(ctx, ex.Messages, model)
	if err != nil {
		return fmt.Errorf("failed to stream completions: %w", err)
	}
	var totalTime time.Duration
	var fullResponse strings.Builder
	for ev := range events {
		fmt.Print(ev.Text)
		totalTime = ev.Elapsed
		fullResponse.WriteString(ev.Text)
	}
	fmt.Printf("\nTotal time: %.2fs\n", totalTime.Seconds())
	fmt.Printf("\nTotal response: %v\n", fullResponse.String())
	return nil
}
