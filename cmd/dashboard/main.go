package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/anthropics/agent-dashboard/internal/biz/domain"
	"github.com/anthropics/agent-dashboard/internal/biz/usecase"
	"github.com/anthropics/agent-dashboard/internal/conf"
	"github.com/anthropics/agent-dashboard/internal/data"
	"github.com/anthropics/agent-dashboard/internal/infra/openai"
	"github.com/anthropics/agent-dashboard/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize repository layer
	repos, err := data.NewRepositories(cfg.API.BaseURL, cfg.API.FetchTimeout(), cfg.API.CacheTTL(), cfg.Transcript.DBPath)
	if err != nil {
		log.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Transcript.Close()

	fmt.Printf("[Dashboard] Backend API: %s\n", cfg.API.BaseURL)
	fmt.Printf("[Dashboard] Transcript DB: %s\n", cfg.Transcript.DBPath)

	// Optional history digest
	var summarizer service.Summarizer
	if cfg.OpenAI.APIKey != "" {
		summarizer = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		fmt.Println("[Dashboard] History digest enabled")
	}

	// Initialize usecase and service layers
	chatUC := usecase.NewChatUsecase(repos.Chat, repos.Transcript, cfg.Chat.UserName, cfg.Chat.Timeout())
	svc := service.NewDashboardService(repos.Backend, summarizer)

	ctx := context.Background()
	if svc.Healthy(ctx) {
		fmt.Println("[Dashboard] Backend health: ok")
	} else {
		fmt.Println("[Dashboard] Backend health: unreachable")
	}

	runLoop(ctx, svc, chatUC)
}

const helpText = `Commands:
  overview                 show totals, channel split and hourly activity
  users                    show the per-user rollup
  history                  show recent conversations (with digest if enabled)
  appointments [status]    show appointments, optionally filtered
  export <file> [status]   write the filtered appointments as CSV
  chat <message>           send a message to the agent
  reset                    clear the chat session
  quit                     exit`

func runLoop(ctx context.Context, svc *service.DashboardService, chatUC *usecase.ChatUsecase) {
	fmt.Println(helpText)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, rest, _ := strings.Cut(line, " ")
		switch cmd {
		case "overview":
			renderOverview(ctx, svc)
		case "users":
			renderUsers(ctx, svc)
		case "history":
			renderHistory(ctx, svc)
		case "appointments":
			renderAppointments(ctx, svc, statusArg(rest))
		case "export":
			file, status, _ := strings.Cut(strings.TrimSpace(rest), " ")
			exportAppointments(ctx, svc, file, statusArg(status))
		case "chat":
			sendChat(ctx, chatUC, rest)
		case "reset":
			chatUC.Reset()
			fmt.Printf("New session: %s\n", chatUC.SessionID())
		case "quit", "exit":
			return
		case "help":
			fmt.Println(helpText)
		default:
			fmt.Printf("Unknown command %q, try 'help'\n", cmd)
		}
	}
}

func statusArg(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return usecase.StatusAll
	}
	return raw
}

func renderOverview(ctx context.Context, svc *service.DashboardService) {
	view, err := svc.Overview(ctx)
	if err != nil {
		printFetchError(err)
		return
	}

	fmt.Printf("Users: %d  Conversations: %d  Appointments: %d\n",
		view.TotalUsers, view.TotalConversations, view.TotalAppointments)

	if view.HasChannelData {
		fmt.Printf("Channels: whatsapp=%d web=%d\n", view.Channels.WhatsApp, view.Channels.Web)
	} else {
		fmt.Println("Channels: no conversations yet")
	}

	for _, bucket := range view.HourlyActivity {
		fmt.Printf("  %02d:00  %s (%d)\n", bucket.Hour, strings.Repeat("#", bucket.Count), bucket.Count)
	}

	for _, conv := range view.RecentConversations {
		fmt.Printf("  %s | %s | %s | %s\n", conv.Timestamp, conv.Phone, conv.Channel, conv.Message)
	}
}

func renderUsers(ctx context.Context, svc *service.DashboardService) {
	view, err := svc.Users(ctx)
	if err != nil {
		printFetchError(err)
		return
	}

	fmt.Printf("Users: %d  Messages: %d\n", view.TotalUsers, view.TotalConversations)
	for _, u := range view.Users {
		fmt.Printf("  %-20s %-15s %-8s last=%s messages=%d\n", u.Name, u.Phone, u.Channel, u.LastActive, u.Messages)
	}
}

func renderHistory(ctx context.Context, svc *service.DashboardService) {
	view, err := svc.History(ctx)
	if err != nil {
		printFetchError(err)
		return
	}

	if view.Digest != "" {
		fmt.Printf("Digest: %s\n", view.Digest)
	}
	for _, conv := range view.Conversations {
		name := conv.Name
		if name == "" {
			name = "Unknown"
		}
		fmt.Printf("  %s | %s (%s)\n    %s\n", conv.Timestamp, name, conv.Channel, conv.Message)
	}
}

func renderAppointments(ctx context.Context, svc *service.DashboardService, status string) {
	view, err := svc.Appointments(ctx, status)
	if err != nil {
		printFetchError(err)
		return
	}

	fmt.Printf("Total: %d  Filtered: %d  Scheduled: %d  With email: %d  Reminders sent: %d\n",
		view.Total, view.FilteredCount, view.ScheduledCount, view.WithEmailCount, view.RemindersSentCount)
	for _, appt := range view.Appointments {
		fmt.Printf("  %s %s | %s | %s | %s\n", appt.Date, appt.Time, appt.CustomerName, appt.Phone, appt.Status)
	}
}

func exportAppointments(ctx context.Context, svc *service.DashboardService, file, status string) {
	if file == "" {
		fmt.Println("Usage: export <file> [status]")
		return
	}

	view, err := svc.Appointments(ctx, status)
	if err != nil {
		printFetchError(err)
		return
	}

	f, err := os.Create(file)
	if err != nil {
		fmt.Printf("Failed to create %s: %v\n", file, err)
		return
	}
	defer f.Close()

	if err := usecase.WriteCSV(f, view.AppointmentView); err != nil {
		fmt.Printf("Failed to write CSV: %v\n", err)
		return
	}
	fmt.Printf("Wrote %d appointments to %s\n", view.FilteredCount, file)
}

func sendChat(ctx context.Context, chatUC *usecase.ChatUsecase, text string) {
	transcript, err := chatUC.Submit(ctx, text)
	if errors.Is(err, domain.ErrChatFailed) {
		fmt.Println("Failed to get response from agent")
	} else if err != nil {
		fmt.Printf("Chat error: %v\n", err)
	}

	for _, msg := range transcript {
		prefix := "You"
		if msg.Role == domain.RoleAssistant {
			prefix = "Agent"
		}
		fmt.Printf("  %s: %s\n", prefix, msg.Content)
	}
}

func printFetchError(err error) {
	if errors.Is(err, domain.ErrUnavailable) {
		fmt.Println("Could not connect to API. Make sure the server is running.")
		return
	}
	fmt.Printf("Error: %v\n", err)
}
