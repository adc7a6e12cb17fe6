// Command reagent is a terminal ReAct agent: it answers questions by
// reasoning with an LLM and acting through registered tools.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/spf13/cobra"

	"github.com/denali-labs/reagent/agent"
	"github.com/denali-labs/reagent/chatmodel"
	"github.com/denali-labs/reagent/config"
	"github.com/denali-labs/reagent/llmfactory"
	"github.com/denali-labs/reagent/prompts"
	"github.com/denali-labs/reagent/store"
	"github.com/denali-labs/reagent/tools"
	"github.com/denali-labs/reagent/tools/calc"
	"github.com/denali-labs/reagent/tools/fileio"
	"github.com/denali-labs/reagent/tools/weather"
	"github.com/denali-labs/reagent/tools/webscrape"
	"github.com/denali-labs/reagent/tools/websearch"
)

var logger = xlog.NewPackageLogger("github.com/denali-labs/reagent", "cmd")

type flags struct {
	cfgFile     string
	model       string
	maxTurns    int
	temperature float64
	question    string
	debug       bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "reagent: %s\n", err.Error())
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "reagent",
		Short: "A ReAct reasoning agent for the terminal",
		Long: `reagent answers questions by alternating LLM reasoning with tool use:
web search, page scraping, weather lookups, arithmetic and local files.

Examples:
  reagent                                   # Interactive REPL
  reagent -q "What is 25% of 160?"          # One-shot question
  reagent --config llm.yaml --max-turns 8`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVarP(&f.cfgFile, "config", "c", "", "LLM providers config file (yaml, toml or json)")
	cmd.Flags().StringVar(&f.model, "model", "", "model name override")
	cmd.Flags().IntVar(&f.maxTurns, "max-turns", agent.DefaultMaxTurns, "turn budget per question")
	cmd.Flags().Float64VarP(&f.temperature, "temperature", "t", 0, "sampling temperature")
	cmd.Flags().StringVarP(&f.question, "question", "q", "", "one-shot question (omit for interactive mode)")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "enable debug logging")

	return cmd
}

func run(ctx context.Context, f *flags) error {
	xlog.SetFormatter(xlog.NewStringFormatter(os.Stderr))
	if f.debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.WARNING)
	}

	secrets, err := config.LoadEnv()
	if err != nil {
		return err
	}

	factory, err := llmfactory.Load(f.cfgFile)
	if err != nil {
		return err
	}
	model, err := factory.DefaultModel()
	if err != nil {
		return err
	}

	registry, err := buildRegistry(secrets)
	if err != nil {
		return err
	}

	sysPrompt, err := prompts.ReActPrompt(time.Now(), registry.List()...)
	if err != nil {
		return err
	}

	opts := []agent.Option{
		agent.WithMaxTurns(f.maxTurns),
		agent.WithStore(store.NewMemoryStore()),
		agent.WithCallback(agent.NewPrinterCallback(os.Stdout)),
	}
	if f.model != "" {
		opts = append(opts, agent.WithModel(f.model))
	}
	if f.temperature > 0 {
		opts = append(opts, agent.WithTemperature(f.temperature))
	}
	ag := agent.New(model, sysPrompt, registry, opts...)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	ctx = chatmodel.WithChatContext(ctx, chatmodel.NewChatContext("", nil))

	if f.question != "" {
		return ask(ctx, ag, f.question)
	}
	return repl(ctx, ag)
}

// buildRegistry registers every tool whose requirements are satisfied.
// Tools missing an API key are skipped with a warning so the agent still
// works with a partial environment.
func buildRegistry(secrets *config.Secrets) (*tools.Registry, error) {
	registry := tools.NewRegistry()

	calcTool, err := calc.New()
	if err != nil {
		return nil, err
	}
	registry.Register(calcTool)

	readTool, err := fileio.NewReadTool()
	if err != nil {
		return nil, err
	}
	registry.Register(readTool)

	writeTool, err := fileio.NewWriteTool()
	if err != nil {
		return nil, err
	}
	registry.Register(writeTool)

	scrapeTool, err := webscrape.New()
	if err != nil {
		return nil, err
	}
	registry.Register(scrapeTool)

	if secrets.TavilyAPIKey != "" {
		searchTool, err := websearch.New()
		if err != nil {
			return nil, err
		}
		registry.Register(searchTool)
	} else {
		logger.KV(xlog.WARNING, "reason", "TAVILY_API_KEY not set", "skipped_tool", websearch.ToolName)
	}

	if secrets.WeatherAPIKey != "" {
		weatherTool, err := weather.New()
		if err != nil {
			return nil, err
		}
		registry.Register(weatherTool)
	} else {
		logger.KV(xlog.WARNING, "reason", "WEATHER_API_KEY not set", "skipped_tool", weather.ToolName)
	}

	return registry, nil
}

func ask(ctx context.Context, ag *agent.Agent, question string) error {
	res, err := ag.Run(ctx, question)
	if err != nil {
		if errors.Is(err, agent.ErrMaxTurns) && res != nil {
			fmt.Printf("\nAgent reached maximum turns without a final answer. Last response:\n%s\n", res.Content)
			return nil
		}
		return err
	}
	fmt.Printf("\nFinal Response:\n%s\n", res.Content)
	return nil
}

func repl(ctx context.Context, ag *agent.Agent) error {
	fmt.Println("Welcome to the ReAct Agent. Type 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nEnter your question: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if strings.EqualFold(question, "exit") {
			return nil
		}
		if err := ask(ctx, ag, question); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
