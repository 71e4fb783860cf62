package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"shopping-assistant-be/internal/dto"
	repomemory "shopping-assistant-be/internal/repository/memory"
	"shopping-assistant-be/internal/service"
	"shopping-assistant-be/pkg/memory"
	"shopping-assistant-be/pkg/nlu"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	userID      string
	oneShot     string
	randomReply bool
	noColor     bool
	showIntents bool
)

var (
	promptColor   = color.New(color.FgCyan, color.Bold)
	botColor      = color.New(color.FgGreen)
	productColor  = color.New(color.FgYellow)
	questionColor = color.New(color.FgMagenta)
	metaColor     = color.New(color.FgHiBlack)
	errColor      = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the shopping assistant from the terminal",
	Long: `chat runs the assistant in process against the embedded catalog, with
memory kept for the lifetime of the session. Type /reset to forget the
conversation and /quit to leave.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&userID, "user", "u", "terminal", "user id the conversation is recorded under")
	rootCmd.Flags().StringVarP(&oneShot, "message", "m", "", "send a single message and exit")
	rootCmd.Flags().BoolVar(&randomReply, "random", false, "pick response variants at random")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&showIntents, "intents", false, "print detected intents and confidence")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	color.NoColor = color.NoColor || noColor
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	products, err := repomemory.NewProductRepository()
	if err != nil {
		return err
	}

	opts := service.DefaultAssistantOptions()
	if randomReply {
		opts.Picker = service.RandomTemplate
	}
	mem := memory.New(memory.DefaultConfig(), nil, nil, nil, nil)
	assistant := service.NewAssistantService(nlu.NewScorer(nlu.DefaultLexicon()), mem, products, nil, nil, nil, opts)

	if oneShot != "" {
		return send(ctx, assistant, oneShot)
	}

	botColor.Println("🛍️ Assistant shopping prêt. /reset pour oublier, /quit pour quitter.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		promptColor.Print("vous> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/reset":
			if err := mem.ClearUser(ctx, userID); err != nil {
				errColor.Printf("reset failed: %v\n", err)
			} else {
				metaColor.Println("mémoire effacée")
			}
			continue
		}

		if err := send(ctx, assistant, line); err != nil {
			errColor.Printf("error: %v\n", err)
		}
	}
}

func send(ctx context.Context, assistant service.IAssistantService, message string) error {
	res, err := assistant.Chat(ctx, userID, message)
	if err != nil {
		return err
	}
	render(res)
	return nil
}

func render(res *dto.ChatResponse) {
	botColor.Println(res.Response)

	for _, p := range res.Products {
		productColor.Printf("  • #%d %s (%s, %s) %.2f DT\n", p.Id, p.Name, p.Category, p.Color, p.Price)
	}

	if len(res.SuggestedQuestions) > 0 {
		fmt.Println()
		for _, q := range res.SuggestedQuestions {
			questionColor.Printf("  %s\n", q)
		}
	}

	if showIntents {
		metaColor.Printf("  [%s] confidence %.2f context %v\n",
			strings.Join(res.DetectedIntents, ", "), res.Confidence, res.ContextUsed)
	}
	fmt.Println()
}
