package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/munnaproff08-wq/suvarna-prompt/internal/bus"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/daemon"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/deps"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/enhance"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/history"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/provider"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/tui"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "suvarna-prompt",
	Short:        "Voice-first prompt studio for Telugu, Hindi and English speakers",
	Long:         "Speak in Telugu, Hindi, English or a mix of them and get back an elaborated English image or video prompt, ready to paste into a generator.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		recordCmd(),
		toggleCmd(),
		cancelCmd(),
		statusCmd(),
		bufferCmd(),
		groundingCmd(),
		convertCmd(),
		previewCmd(),
		chatCmd(),
		historyCmd(),
		enhanceCmd(),
		editCmd(),
		copyCmd(),
		versionCmd(),
		stopCmd(),
		configureCmd(),
		modelsCmd(),
		doctorCmd(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// send runs one payload-less command against the daemon and prints the
// reply body.
func send(cmd byte) error {
	return sendWith(cmd, nil)
}

// sendWith runs one command with an optional payload and prints the
// reply body.
func sendWith(cmd byte, payload any) error {
	resp, err := bus.SendRequest(cmd, payload)
	if err != nil {
		return err
	}
	kind, body := bus.ParseResponse(resp)
	if kind == bus.RespErr {
		return fmt.Errorf("%s", body)
	}
	if body != "" {
		fmt.Println(body)
	}
	return nil
}

// request sends one command with a payload and unpacks the JSON reply
// into out. A nil out discards the body.
func request(cmd byte, payload any, out any) error {
	resp, err := bus.SendRequest(cmd, payload)
	if err != nil {
		return err
	}
	kind, body := bus.ParseResponse(resp)
	if kind == bus.RespErr {
		return fmt.Errorf("%s", body)
	}
	if out != nil && body != "" {
		if err := json.Unmarshal([]byte(body), out); err != nil {
			return fmt.Errorf("unexpected daemon response %q: %w", resp, err)
		}
	}
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := config.NewManager()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			d, err := daemon.New(manager)
			if err != nil {
				return fmt.Errorf("failed to create daemon: %w", err)
			}

			return d.Run()
		},
	}
}

func recordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Start recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := send(bus.CmdRecord); err != nil {
				return fmt.Errorf("failed to start recording: %w", err)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := send(bus.CmdStop); err != nil {
				return fmt.Errorf("failed to stop recording: %w", err)
			}
			return nil
		},
	})

	return cmd
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Toggle recording on/off",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := send(bus.CmdToggle); err != nil {
				return fmt.Errorf("failed to toggle recording: %w", err)
			}
			return nil
		},
	}
}

func cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the recording and drop the transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := send(bus.CmdCancel); err != nil {
				return fmt.Errorf("failed to cancel: %w", err)
			}
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := send(bus.CmdStatus); err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			return nil
		},
	}
}

func bufferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buffer",
		Short: "Print the transcript buffer",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out bus.BufferResponse
			if err := request(bus.CmdBufferGet, nil, &out); err != nil {
				return fmt.Errorf("failed to read buffer: %w", err)
			}
			if out.Text != "" {
				fmt.Println(out.Text)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the transcript buffer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := send(bus.CmdBufferClear); err != nil {
				return fmt.Errorf("failed to clear buffer: %w", err)
			}
			return nil
		},
	})

	return cmd
}

func groundingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grounding",
		Short: "Toggle web-search grounding for the next conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := send(bus.CmdGrounding); err != nil {
				return fmt.Errorf("failed to toggle grounding: %w", err)
			}
			return nil
		},
	}
}

func convertCmd() *cobra.Command {
	var grounding bool
	var noCopy bool

	cmd := &cobra.Command{
		Use:   "convert [text...]",
		Short: "Convert text (or the transcript buffer) into an elaborated prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := bus.ConvertRequest{Text: strings.Join(args, " ")}
			if cmd.Flags().Changed("grounding") {
				req.Grounding = &grounding
			}
			if cmd.Flags().Changed("no-copy") {
				copyIt := !noCopy
				req.Copy = &copyIt
			}

			var entry history.Entry
			if err := request(bus.CmdConvert, req, &entry); err != nil {
				return fmt.Errorf("conversion failed: %w", err)
			}
			printEntry(entry)
			return nil
		},
	}

	cmd.Flags().BoolVar(&grounding, "grounding", false, "ground this conversion with web search")
	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "skip the clipboard even if auto-copy is on")

	return cmd
}

func previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [text...]",
		Short: "Quick English translation of text or the transcript buffer",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out bus.PreviewResponse
			if err := request(bus.CmdPreview, bus.PreviewRequest{Text: strings.Join(args, " ")}, &out); err != nil {
				return fmt.Errorf("preview failed: %w", err)
			}
			fmt.Println(out.Translation)
			return nil
		},
	}
}

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <message...>",
		Short: "Ask the chat assistant",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var out bus.ChatResponse
			if err := request(bus.CmdChatSend, bus.ChatRequest{Message: strings.Join(args, " ")}, &out); err != nil {
				return fmt.Errorf("chat failed: %w", err)
			}
			fmt.Println(out.Reply)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear the chat conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := send(bus.CmdChatReset); err != nil {
				return fmt.Errorf("failed to reset chat: %w", err)
			}
			return nil
		},
	})

	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse converted prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []history.Entry
			if err := request(bus.CmdHistoryList, nil, &entries); err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}
			printEntryList(entries)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "search <query...>",
			Short: "Search history",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var entries []history.Entry
				req := bus.SearchRequest{Query: strings.Join(args, " ")}
				if err := request(bus.CmdHistorySearch, req, &entries); err != nil {
					return fmt.Errorf("failed to search history: %w", err)
				}
				printEntryList(entries)
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one entry in full",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var entry history.Entry
				if err := request(bus.CmdHistoryShow, bus.IDRequest{ID: args[0]}, &entry); err != nil {
					return fmt.Errorf("failed to show entry: %w", err)
				}
				printEntry(entry)
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete one entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := sendWith(bus.CmdHistoryDelete, bus.IDRequest{ID: args[0]}); err != nil {
					return fmt.Errorf("failed to delete entry: %w", err)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every entry",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := send(bus.CmdHistoryClear); err != nil {
					return fmt.Errorf("failed to clear history: %w", err)
				}
				return nil
			},
		},
	)

	return cmd
}

func enhanceCmd() *cobra.Command {
	var id string
	var list bool

	cmd := &cobra.Command{
		Use:   "enhance <snippet>...",
		Short: "Append style snippets to a stored prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				for _, s := range enhance.List() {
					fmt.Printf("  %-12s %-10s %s\n", s.ID, s.Category, s.Text)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("no snippets given (see --list)")
			}

			var entry history.Entry
			if err := request(bus.CmdEnhance, bus.EnhanceRequest{ID: id, Snippets: args}, &entry); err != nil {
				return fmt.Errorf("enhance failed: %w", err)
			}
			printEntry(entry)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "entry to enhance (default: the latest)")
	cmd.Flags().BoolVar(&list, "list", false, "list available snippets")

	return cmd
}

func editCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "edit <prompt...>",
		Short: "Replace the prompt text of a stored entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry history.Entry
			req := bus.EditRequest{ID: id, Prompt: strings.Join(args, " ")}
			if err := request(bus.CmdEdit, req, &entry); err != nil {
				return fmt.Errorf("edit failed: %w", err)
			}
			printEntry(entry)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "entry to edit (default: the latest)")

	return cmd
}

func copyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy [id]",
		Short: "Copy a stored prompt to the clipboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) > 0 {
				id = args[0]
			}
			if err := sendWith(bus.CmdCopy, bus.IDRequest{ID: id}); err != nil {
				return fmt.Errorf("copy failed: %w", err)
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show daemon protocol version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := send(bus.CmdVersion); err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			return nil
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := send(bus.CmdQuit); err != nil {
				return fmt.Errorf("failed to stop daemon: %w", err)
			}
			return nil
		},
	}
}

func configureCmd() *cobra.Command {
	var onboarding bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration wizard for suvarna-prompt.
This will guide you through setting up:
- Provider API keys (Google Gemini, OpenAI)
- Conversion model and input language
- Chat assistant backend
- Recording, clipboard and notification preferences`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(onboarding)
		},
	}

	cmd.Flags().BoolVar(&onboarding, "onboarding", false, "Run the guided onboarding flow")

	return cmd
}

func runConfigure(onboarding bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := tui.Run(cfg, onboarding)
	if err != nil {
		return fmt.Errorf("configuration wizard error: %w", err)
	}

	if result.Cancelled {
		fmt.Println("Configuration cancelled.")
		return nil
	}

	if err := result.Config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := config.Save(result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved successfully!")
	fmt.Println()

	showNextSteps()

	return nil
}

func showNextSteps() {
	serviceRunning := exec.Command("systemctl", "--user", "is-active", "--quiet", "suvarna-prompt.service").Run() == nil

	fmt.Println("Next Steps:")
	step := 1
	if !serviceRunning {
		fmt.Printf("%d. Start the daemon: systemctl --user start suvarna-prompt.service (or run 'suvarna-prompt serve')\n", step)
		step++
	}
	fmt.Printf("%d. Check external tools: suvarna-prompt doctor\n", step)
	step++
	fmt.Printf("%d. Speak a prompt: suvarna-prompt toggle\n", step)
	fmt.Println()

	if serviceRunning {
		fmt.Println("The running daemon reloads the config file automatically.")
	}

	if configPath, err := config.GetConfigPath(); err == nil {
		fmt.Printf("Config file location: %s\n", configPath)
	}
}

func modelsCmd() *cobra.Command {
	var providerFilter string
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available transcription and text models",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModels(providerFilter, typeFilter)
		},
	}

	cmd.Flags().StringVar(&providerFilter, "provider", "", "filter by provider name")
	cmd.Flags().StringVar(&typeFilter, "type", "", "filter by type: live, text")

	return cmd
}

func runModels(providerFilter, typeFilter string) error {
	var filterType *provider.ModelType
	switch strings.ToLower(typeFilter) {
	case "":
	case "live":
		t := provider.Live
		filterType = &t
	case "text":
		t := provider.Text
		filterType = &t
	default:
		return fmt.Errorf("invalid type: %s (use 'live' or 'text')", typeFilter)
	}

	providerNames := provider.List()
	if providerFilter != "" {
		if provider.Get(providerFilter) == nil {
			return fmt.Errorf("unknown provider: %s", providerFilter)
		}
		providerNames = []string{providerFilter}
	}

	for _, name := range providerNames {
		p := provider.Get(name)
		if p == nil {
			continue
		}

		models := p.Models()
		if filterType != nil {
			models = provider.ModelsOfType(p, *filterType)
		}
		if len(models) == 0 {
			continue
		}

		fmt.Printf("\n%s:\n", name)
		for _, m := range models {
			printModelLine(p, m)
		}
	}

	fmt.Println()
	return nil
}

func printModelLine(p provider.Provider, m provider.Model) {
	line := fmt.Sprintf("  %s", m.ID)
	if m.Description != "" {
		line += fmt.Sprintf(" - %s", m.Description)
	}

	var tags []string
	if m.Type == provider.Live {
		tags = append(tags, "live")
	}
	if m.ID == p.DefaultModel(m.Type) {
		tags = append(tags, "default")
	}
	if len(tags) > 0 {
		line += fmt.Sprintf(" [%s]", strings.Join(tags, ", "))
	}

	fmt.Println(line)
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the external tools the daemon shells out to",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%-12s %-8s %-10s %s\n", "TOOL", "STATUS", "KIND", "DETAIL")
			for _, s := range deps.CheckAll() {
				status := "ok"
				detail := s.Path
				if s.Version != "" {
					detail = fmt.Sprintf("%s (%s)", s.Path, s.Version)
				}
				if !s.Installed {
					status = "missing"
					detail = s.Purpose
				}

				kind := "optional"
				if s.Required {
					kind = "required"
				}

				fmt.Printf("%-12s %-8s %-10s %s\n", s.Name, status, kind, detail)
			}

			if missing := deps.MissingRequired(); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

// printEntry renders a stored conversion in full.
func printEntry(e history.Entry) {
	fmt.Printf("id:          %s\n", e.ID)
	fmt.Printf("created:     %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("language:    %s\n", e.Language)
	if e.Grounded {
		fmt.Printf("grounded:    yes\n")
	}
	fmt.Printf("input:       %s\n", e.Input)
	fmt.Printf("translation: %s\n", e.Result.Translation)
	if e.Result.Category != "" {
		fmt.Printf("category:    %s\n", e.Result.Category)
	}
	if e.Result.Rationale != "" {
		fmt.Printf("rationale:   %s\n", e.Result.Rationale)
	}
	fmt.Printf("prompt:      %s\n", e.Result.Prompt)
	for _, c := range e.Citations {
		fmt.Printf("source:      %s (%s)\n", c.Title, c.URI)
	}
}

func printEntryList(entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Println("history is empty")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  %s\n", shortID(e.ID), e.CreatedAt.Local().Format("2006-01-02 15:04"), clip(e.Result.Prompt, 70))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func clip(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
