package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sereno-labs/sereno"
	"github.com/sereno-labs/sereno/internal/config"
	"github.com/sereno-labs/sereno/internal/logging"
	"github.com/sereno-labs/sereno/internal/presentation/tui"
	"github.com/sereno-labs/sereno/pkg/conversation"
	"github.com/spf13/cobra"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive session in the terminal",
	Long: `Runs a guided session locally against the in-memory store and the
deterministic reasoning backend. Nothing leaves your machine.`,
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")

		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		// Local chat keeps everything in-process.
		cfg.RedisAddr = ""
		cfg.Provider = config.ProviderStub

		engine, err := sereno.New(cfg, sereno.WithLogger(logging.NewNop()))
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}
		defer engine.Close()

		render := tui.NewRenderer()
		tui.PrintBanner()
		fmt.Println("Type /start to begin, /help for commands, /exit to leave.")
		fmt.Println()

		ctx := context.Background()
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "/help" {
				printMarkdown(render, helpText)
				continue
			}

			result, err := engine.Handle(ctx, userID, line)
			if err != nil {
				fmt.Printf("Something went wrong: %v\n", err)
				continue
			}
			printMarkdown(render, resultMarkdown(result))

			if !result.Rejected && result.Response != nil && result.Response.Type == conversation.TypeSessionEnd {
				break
			}
		}
	},
}

const helpText = `## Commands

- **/start** begin a session
- **/feel <emotion>** name what you're feeling
- **/wheel** browse the wheel of emotions
- **/why** explore the feeling with questions
- **/remedy** get coping strategies
- **/breathe**, **/quote**, **/journal**, **/audio** self-help tools
- **/checkin**, **/moodlog** mood tracking
- **/status** where am I
- **/sos** emergency resources
- **/exit** end the session and clear data

Anything without a leading slash is treated as free-form conversation.`

// resultMarkdown flattens a structured result into markdown for the terminal.
func resultMarkdown(result *conversation.Result) string {
	if result.Rejected {
		var b strings.Builder
		b.WriteString("**" + result.ErrorMessage + "**\n")
		if len(result.Suggested) > 0 {
			b.WriteString("\nTry: " + strings.Join(result.Suggested, ", ") + "\n")
		}
		return b.String()
	}

	resp := result.Response
	if resp == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(resp.Message + "\n")
	if resp.Content != "" {
		b.WriteString("\n```\n" + resp.Content + "\n```\n")
	}
	if len(resp.MoodHistory) > 0 {
		b.WriteString("\n")
		for _, entry := range resp.MoodHistory {
			b.WriteString(fmt.Sprintf("- %s `/%s` %s\n",
				entry.Timestamp.Format("Jan 2 15:04"), entry.Command, entry.Summary))
		}
	}
	if len(resp.Resources) > 0 {
		b.WriteString("\n")
		for name, value := range resp.Resources {
			b.WriteString(fmt.Sprintf("- **%s**: %s\n", name, value))
		}
	}
	if resp.Instructions != "" {
		b.WriteString("\n_" + resp.Instructions + "_\n")
	}
	return b.String()
}

func printMarkdown(render func(string) (string, error), markdown string) {
	out, err := render(markdown)
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("user", "u", "local", "User identifier for the session")
}
