// Command seed_rooms bulk-loads room inventory into the hotel backend
// from a JSON file. It signs in with the given admin account and creates
// each room through the regular API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"

	"hotel-management/hotel"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	seedFile string
	baseURL  string
	username string
)

var rootCmd = &cobra.Command{
	Use:   "seed_rooms",
	Short: "Bulk-create rooms from a JSON file",
	Long: `Reads a JSON array of rooms and creates each one through the backend API.

Each entry looks like:
  {"roomNumber": "101", "type": "Deluxe Suite", "price": 250.0, "available": true}

The account used to sign in must have the ADMIN role.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&seedFile, "file", "f", "rooms.json", "JSON file with the rooms to create")
	rootCmd.Flags().StringVarP(&baseURL, "url", "u", "", "backend base URL (defaults to HOTEL_API_URL)")
	rootCmd.Flags().StringVar(&username, "username", "", "admin username to sign in with")
	_ = rootCmd.MarkFlagRequired("username")
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	if baseURL == "" {
		baseURL = os.Getenv("HOTEL_API_URL")
	}

	raw, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var forms []hotel.RoomForm
	if err := json.Unmarshal(raw, &forms); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if len(forms) == 0 {
		return fmt.Errorf("seed file %s contains no rooms", seedFile)
	}

	fmt.Printf("Password for %s: ", username)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	ctx := context.Background()
	session := hotel.NewSession()
	client := hotel.NewClient(baseURL, session)

	auth, err := client.Login(ctx, username, strings.TrimSpace(string(bytePassword)))
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	user := hotel.User{ID: auth.ID, Username: auth.Username, Email: auth.Email, Role: auth.Role}
	session.Resume(user, auth.Token)
	if user.Role != hotel.RoleAdmin {
		return fmt.Errorf("account %s has role %s; seeding rooms needs ADMIN", username, user.Role)
	}

	fmt.Printf("Seeding %d room(s) from %s...\n", len(forms), seedFile)

	successCount := 0
	errorCount := 0
	var created []*hotel.Room

	for _, form := range forms {
		fmt.Printf("Creating room %s (%s)... ", form.RoomNumber, form.Type)

		if err := form.Validate(); err != nil {
			fmt.Printf("ERROR - %v\n", err)
			errorCount++
			continue
		}

		room, err := client.CreateRoom(ctx, form)
		if err != nil {
			fmt.Printf("ERROR - %v\n", err)
			errorCount++
			continue
		}

		fmt.Printf("SUCCESS (ID: %d)\n", room.ID)
		created = append(created, room)
		successCount++
	}

	fmt.Printf("\nSeeding complete!\n")
	fmt.Printf("Successfully created: %d room(s)\n", successCount)
	fmt.Printf("Errors: %d\n", errorCount)

	if len(created) > 0 {
		fmt.Println("\nCreated rooms:")
		fmt.Printf("%-5s %-12s %-25s %-12s %s\n", "ID", "Number", "Type", "Price", "Available")
		fmt.Println(strings.Repeat("-", 70))
		for _, room := range created {
			availStr := "Yes"
			if !room.Available {
				availStr = "No"
			}
			fmt.Printf("%-5d %-12s %-25s %-12s %s\n",
				room.ID,
				truncateString(room.RoomNumber, 12),
				truncateString(room.Type, 25),
				hotel.FormatCurrency(room.Price),
				availStr)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d room(s) failed", errorCount)
	}
	return nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
