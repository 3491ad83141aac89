// Command chatroom is a line-mode front end over the chat persistence
// layer: authenticate, pick a room, then read the timeline or post
// messages until quit. All contracts live in the service layer; this
// binary only prompts and prints.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chatroom/internal/config"
	"chatroom/internal/domain"
	"chatroom/internal/observability"
	"chatroom/internal/repo"
	"chatroom/internal/services"
)

var version = "dev"

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()
	initLogger(cfg)

	ctx := context.Background()

	shutdown, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(sctx)
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}
	if cfg.SeedDemo {
		if err := repo.Seed(ctx, db); err != nil {
			// Best-effort: whatever could be seeded is in place.
			log.Warn().Err(err).Msg("seed fixtures incomplete")
		}
	}

	accounts := services.NewAccountService(db)
	accounts.BcryptCost = cfg.BcryptCost
	memberships := services.NewMembershipService(db)
	messages := services.NewMessageService(db)

	in := bufio.NewScanner(os.Stdin)

	user := login(ctx, in, accounts)
	if user == nil {
		return
	}

	rooms, err := memberships.ListRooms(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("list rooms")
	}
	if len(rooms) == 0 {
		fmt.Println("No chat rooms available.")
		return
	}
	fmt.Println("\nAvailable chat rooms:")
	for _, r := range rooms {
		fmt.Printf("%d: %s\n", r.ID, r.Name)
	}

	roomID := chooseRoom(in, rooms)
	if roomID == 0 {
		return
	}

	for {
		fmt.Println("\nOptions:")
		fmt.Println("1. Show messages")
		fmt.Println("2. Send a message")
		fmt.Println("3. Quit")
		switch prompt(in, "Choose an option: ") {
		case "1":
			entries, err := messages.Timeline(ctx, roomID)
			if err != nil {
				fmt.Println("Could not load messages:", err)
				continue
			}
			fmt.Println("\nMessages in this room:")
			for _, e := range entries {
				fmt.Printf("[%s] %s: %s\n", e.CreatedAt.Format(time.RFC3339), e.Username, e.Text)
			}
		case "2":
			text := prompt(in, "Enter your message: ")
			if _, err := messages.Post(ctx, user.ID, roomID, text); err != nil {
				fmt.Println("Could not send message:", err)
				continue
			}
			fmt.Println("Message sent!")
		case "3":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Invalid option, please try again.")
		}
	}
}

func initLogger(cfg config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		cw := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(cw).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// login prompts until authentication succeeds or stdin closes.
func login(ctx context.Context, in *bufio.Scanner, accounts *services.AccountService) *domain.User {
	for {
		username := prompt(in, "Enter your username: ")
		if username == "" {
			return nil
		}
		password := prompt(in, "Enter your password: ")
		u, err := accounts.Authenticate(ctx, username, password)
		if err != nil {
			fmt.Println("Incorrect username or password.")
			continue
		}
		fmt.Println("Login successful!")
		return u
	}
}

// chooseRoom prompts until the user picks a listed room id. Returns 0 if
// stdin closes.
func chooseRoom(in *bufio.Scanner, rooms []domain.ChatRoom) uint {
	for {
		raw := prompt(in, "Enter the id of the chat room you want to join: ")
		if raw == "" {
			return 0
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			fmt.Println("Please enter a valid number.")
			continue
		}
		for _, r := range rooms {
			if r.ID == uint(id) {
				return r.ID
			}
		}
		fmt.Println("Invalid chat room id.")
	}
}

// prompt prints label and returns the next trimmed input line, or ""
// once stdin is exhausted.
func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}
