package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"hotel-management/hotel"

	"github.com/joho/godotenv"
	"golang.org/x/term"
)

// readPassword securely reads a password with masking
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println() // Add newline after password input
	return strings.TrimSpace(string(bytePassword)), nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	baseURL := envOrDefault("HOTEL_API_URL", hotel.DefaultBaseURL)
	sessionDB := envOrDefault("HOTEL_SESSION_DB", "session.db")

	manager, err := hotel.NewManager(baseURL, sessionDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session store: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()

	if err := manager.Restore(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not restore previous session: %v\n", err)
	}

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to the Hotel Reservation Console!")
	fmt.Printf("Backend: %s\n", baseURL)
	if user, ok := manager.Session().User(); ok {
		fmt.Printf("Resumed session for %s (%s)\n", user.Username, user.Role)
	}
	fmt.Println("Available commands:")
	fmt.Println("  Account: login, register, logout, whoami, profile")
	fmt.Println("  Rooms: rooms, search room, add room, edit room, delete room")
	fmt.Println("  Bookings: bookings, book, cancel booking, complete booking, room bookings")
	fmt.Println("  Admin: users, delete user, dashboard")
	fmt.Println("  System: exit")
	fmt.Println()
	fmt.Println("Tips:")
	fmt.Println("  • Dates are entered as YYYY-MM-DD")
	fmt.Println("  • Room management, the user list, and hotel-wide metrics need an ADMIN account")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(scanner.Text())

		switch cmd {
		case "login":
			handleLogin(scanner, manager)
		case "register":
			handleRegister(scanner, manager)
		case "logout":
			handleLogout(manager)
		case "whoami":
			handleWhoami(manager)
		case "profile":
			handleProfile(scanner, manager)
		case "rooms":
			handleListRooms(manager)
		case "search room":
			handleSearchRooms(scanner, manager)
		case "add room":
			handleAddRoom(scanner, manager)
		case "edit room":
			handleEditRoom(scanner, manager)
		case "delete room":
			handleDeleteRoom(scanner, manager)
		case "bookings":
			handleListBookings(manager)
		case "book":
			handleBook(scanner, manager)
		case "cancel booking":
			handleCancelBooking(scanner, manager)
		case "complete booking":
			handleCompleteBooking(scanner, manager)
		case "room bookings":
			handleRoomBookings(scanner, manager)
		case "users":
			handleListUsers(manager)
		case "delete user":
			handleDeleteUser(scanner, manager)
		case "dashboard":
			handleDashboard(manager)
		case "exit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
}

// printError formats validation and backend errors for the prompt.
func printError(err error) {
	var fe hotel.FieldErrors
	if errors.As(err, &fe) {
		fmt.Println("Please fix the following:")
		for _, line := range strings.Split(fe.Error(), "; ") {
			fmt.Printf("  • %s\n", line)
		}
		return
	}
	fmt.Printf("Error: %v\n", err)
}

func handleLogin(sc *bufio.Scanner, mgr *hotel.Manager) {
	fmt.Print("Username: ")
	if !sc.Scan() {
		return
	}
	username := strings.TrimSpace(sc.Text())

	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}

	user, err := mgr.Login(context.Background(), username, password)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Signed in as %s (%s)\n", user.Username, user.Role)
}

func handleRegister(sc *bufio.Scanner, mgr *hotel.Manager) {
	fmt.Print("Username: ")
	if !sc.Scan() {
		return
	}
	username := strings.TrimSpace(sc.Text())

	fmt.Print("Email: ")
	if !sc.Scan() {
		return
	}
	email := strings.TrimSpace(sc.Text())

	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}

	form := hotel.RegistrationForm{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	}
	if err := mgr.Register(context.Background(), form); err != nil {
		printError(err)
		return
	}
	fmt.Printf("Account created for %s. Use 'login' to sign in.\n", username)
}

func handleLogout(mgr *hotel.Manager) {
	if mgr.Session().State() != hotel.StateAuthenticated {
		fmt.Println("Not signed in.")
		return
	}
	if err := mgr.Logout(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Signed out.")
}

func handleWhoami(mgr *hotel.Manager) {
	user, ok := mgr.Session().User()
	if !ok {
		fmt.Println("Not signed in.")
		return
	}
	fmt.Printf("%-10s %s\n", "Username:", user.Username)
	fmt.Printf("%-10s %s\n", "Email:", user.Email)
	fmt.Printf("%-10s %s\n", "Role:", user.Role)
}

func handleProfile(sc *bufio.Scanner, mgr *hotel.Manager) {
	user, ok := mgr.Session().User()
	if !ok {
		fmt.Println("Not signed in.")
		return
	}

	fmt.Printf("Username [%s]: ", user.Username)
	if !sc.Scan() {
		return
	}
	username := strings.TrimSpace(sc.Text())
	if username == "" {
		username = user.Username
	}

	fmt.Printf("Email [%s]: ", user.Email)
	if !sc.Scan() {
		return
	}
	email := strings.TrimSpace(sc.Text())
	if email == "" {
		email = user.Email
	}

	fmt.Print("Change password? (y/N): ")
	if !sc.Scan() {
		return
	}
	form := hotel.ProfileForm{Username: username, Email: email}

	if strings.EqualFold(strings.TrimSpace(sc.Text()), "y") {
		var err error
		form.CurrentPassword, err = readPassword("Current password: ")
		if err != nil {
			fmt.Printf("Error reading password: %v\n", err)
			return
		}
		form.NewPassword, err = readPassword("New password: ")
		if err != nil {
			fmt.Printf("Error reading password: %v\n", err)
			return
		}
		form.ConfirmPassword, err = readPassword("Confirm new password: ")
		if err != nil {
			fmt.Printf("Error reading password: %v\n", err)
			return
		}
	}

	updated, err := mgr.UpdateProfile(context.Background(), form)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Profile updated for %s\n", updated.Username)
}

func printRoomTable(rooms []*hotel.Room) {
	fmt.Printf("%-5s %-12s %-25s %-12s %s\n", "ID", "Number", "Type", "Price", "Available")
	fmt.Println(strings.Repeat("-", 70))
	for _, r := range rooms {
		availStr := "Yes"
		if !r.Available {
			availStr = "No"
		}
		fmt.Printf("%-5d %-12s %-25s %-12s %s\n",
			r.ID,
			truncateString(r.RoomNumber, 12),
			truncateString(r.Type, 25),
			hotel.FormatCurrency(r.Price),
			availStr)
	}
}

func handleListRooms(mgr *hotel.Manager) {
	rooms, err := mgr.ListRooms(context.Background())
	if err != nil {
		printError(err)
		return
	}
	if len(rooms) == 0 {
		fmt.Println("No rooms configured.")
		return
	}
	printRoomTable(rooms)
}

func handleSearchRooms(sc *bufio.Scanner, mgr *hotel.Manager) {
	fmt.Print("Query: ")
	if !sc.Scan() {
		return
	}
	query := strings.TrimSpace(sc.Text())

	rooms, err := mgr.SearchRooms(context.Background(), query)
	if err != nil {
		printError(err)
		return
	}
	if len(rooms) == 0 {
		fmt.Printf("No rooms found matching '%s'.\n", query)
		return
	}
	fmt.Printf("Found %d room(s) matching '%s':\n", len(rooms), query)
	printRoomTable(rooms)
}

// promptRoomForm gathers the room fields, showing current values when
// editing an existing room.
func promptRoomForm(sc *bufio.Scanner, current *hotel.Room) (hotel.RoomForm, bool) {
	var form hotel.RoomForm
	if current != nil {
		form = hotel.RoomForm{
			RoomNumber: current.RoomNumber,
			Type:       current.Type,
			Price:      current.Price,
			Available:  current.Available,
		}
	}

	if current != nil {
		fmt.Printf("Room number [%s]: ", current.RoomNumber)
	} else {
		fmt.Print("Room number: ")
	}
	if !sc.Scan() {
		return form, false
	}
	if v := strings.TrimSpace(sc.Text()); v != "" {
		form.RoomNumber = v
	}

	if current != nil {
		fmt.Printf("Room type [%s]: ", current.Type)
	} else {
		fmt.Print("Room type: ")
	}
	if !sc.Scan() {
		return form, false
	}
	if v := strings.TrimSpace(sc.Text()); v != "" {
		form.Type = v
	}

	if current != nil {
		fmt.Printf("Price per night [%s]: ", hotel.FormatCurrency(current.Price))
	} else {
		fmt.Print("Price per night: ")
	}
	if !sc.Scan() {
		return form, false
	}
	if v := strings.TrimSpace(sc.Text()); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fmt.Printf("Invalid price: %s\n", v)
			return form, false
		}
		form.Price = price
	}

	fmt.Print("Available? (Y/n): ")
	if !sc.Scan() {
		return form, false
	}
	form.Available = !strings.EqualFold(strings.TrimSpace(sc.Text()), "n")

	return form, true
}

func handleAddRoom(sc *bufio.Scanner, mgr *hotel.Manager) {
	fmt.Printf("Common room types: %s, ...\n", strings.Join(hotel.DefaultRoomTypes[:8], ", "))
	form, ok := promptRoomForm(sc, nil)
	if !ok {
		return
	}
	room, err := mgr.CreateRoom(context.Background(), form)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Added room %s (ID %d) at %s per night\n", room.RoomNumber, room.ID, hotel.FormatCurrency(room.Price))
}

func handleEditRoom(sc *bufio.Scanner, mgr *hotel.Manager) {
	id, ok := promptID(sc, "Room ID: ")
	if !ok {
		return
	}

	current, err := mgr.GetRoom(context.Background(), id)
	if err != nil {
		printError(err)
		return
	}

	form, ok := promptRoomForm(sc, current)
	if !ok {
		return
	}
	room, err := mgr.UpdateRoom(context.Background(), id, form)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Updated room %s (ID %d)\n", room.RoomNumber, room.ID)
}

func handleDeleteRoom(sc *bufio.Scanner, mgr *hotel.Manager) {
	id, ok := promptID(sc, "Room ID: ")
	if !ok {
		return
	}
	if err := mgr.DeleteRoom(context.Background(), id); err != nil {
		printError(err)
		return
	}
	fmt.Printf("Deleted room %d\n", id)
}

func handleListBookings(mgr *hotel.Manager) {
	bookings, err := mgr.ListBookings(context.Background())
	if err != nil {
		printError(err)
		return
	}
	if len(bookings) == 0 {
		fmt.Println("No bookings.")
		return
	}

	fmt.Printf("%-5s %-15s %-15s %-12s %-12s %-8s %-12s %s\n",
		"ID", "Guest", "Room", "Check-in", "Check-out", "Nights", "Total", "Status")
	fmt.Println(strings.Repeat("-", 100))

	for _, b := range bookings {
		fmt.Printf("%-5d %-15s %-15s %-12s %-12s %-8d %-12s %s\n",
			b.ID,
			truncateString(b.GuestName(), 15),
			truncateString(b.RoomLabel(), 15),
			b.CheckInDate.String(),
			b.CheckOutDate.String(),
			b.Nights(),
			hotel.FormatCurrency(b.TotalPrice()),
			b.Status)
	}
}

func handleBook(sc *bufio.Scanner, mgr *hotel.Manager) {
	user, ok := mgr.Session().User()
	if !ok {
		fmt.Println("Not signed in.")
		return
	}

	rooms, err := mgr.AvailableRooms(context.Background())
	if err != nil {
		printError(err)
		return
	}
	if len(rooms) == 0 {
		fmt.Println("No rooms are currently available.")
		return
	}
	fmt.Println("Available rooms:")
	printRoomTable(rooms)

	roomID, ok := promptID(sc, "Room ID: ")
	if !ok {
		return
	}

	form := hotel.BookingForm{RoomID: roomID}

	// ADMIN may place a booking on behalf of another guest.
	if user.Role == hotel.RoleAdmin {
		fmt.Printf("User ID (press Enter to book for yourself): ")
		if !sc.Scan() {
			return
		}
		if v := strings.TrimSpace(sc.Text()); v != "" {
			userID, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				fmt.Printf("Invalid user ID: %s\n", v)
				return
			}
			form.UserID = userID
		}
	}

	checkIn, ok := promptDate(sc, "Check-in date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	checkOut, ok := promptDate(sc, "Check-out date (YYYY-MM-DD): ")
	if !ok {
		return
	}
	form.CheckIn = checkIn
	form.CheckOut = checkOut

	// Preview the stay before committing.
	if nightlyRate, found := roomRate(rooms, roomID); found && hotel.IsValidStayRange(checkIn.Time, checkOut.Time) {
		nights := hotel.NightsBetween(checkIn.Time, checkOut.Time)
		total := hotel.TotalPrice(checkIn.Time, checkOut.Time, nightlyRate)
		fmt.Printf("%d night(s) at %s = %s\n", nights, hotel.FormatCurrency(nightlyRate), hotel.FormatCurrency(total))
	}

	booking, err := mgr.CreateBooking(context.Background(), form)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Booking %d confirmed: %s to %s\n", booking.ID, booking.CheckInDate, booking.CheckOutDate)
}

func roomRate(rooms []*hotel.Room, id int64) (float64, bool) {
	for _, r := range rooms {
		if r.ID == id {
			return r.Price, true
		}
	}
	return 0, false
}

func handleCancelBooking(sc *bufio.Scanner, mgr *hotel.Manager) {
	id, ok := promptID(sc, "Booking ID: ")
	if !ok {
		return
	}
	if err := mgr.CancelBooking(context.Background(), id); err != nil {
		printError(err)
		return
	}
	fmt.Printf("Booking %d cancelled\n", id)
}

func handleCompleteBooking(sc *bufio.Scanner, mgr *hotel.Manager) {
	id, ok := promptID(sc, "Booking ID: ")
	if !ok {
		return
	}
	booking, err := mgr.SetBookingStatus(context.Background(), id, hotel.StatusCompleted)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Booking %d marked %s\n", booking.ID, booking.Status)
}

func handleRoomBookings(sc *bufio.Scanner, mgr *hotel.Manager) {
	id, ok := promptID(sc, "Room ID: ")
	if !ok {
		return
	}
	bookings, err := mgr.ListRoomBookings(context.Background(), id)
	if err != nil {
		printError(err)
		return
	}
	if len(bookings) == 0 {
		fmt.Printf("No bookings for room %d.\n", id)
		return
	}

	fmt.Printf("%-5s %-15s %-14s %-14s %-8s %s\n", "ID", "Guest", "Check-in", "Check-out", "Nights", "Status")
	fmt.Println(strings.Repeat("-", 70))
	for _, b := range bookings {
		fmt.Printf("%-5d %-15s %-14s %-14s %-8d %s\n",
			b.ID,
			truncateString(b.GuestName(), 15),
			hotel.FormatDate(b.CheckInDate.Time),
			hotel.FormatDate(b.CheckOutDate.Time),
			b.Nights(),
			b.Status)
	}
}

func handleDeleteUser(sc *bufio.Scanner, mgr *hotel.Manager) {
	id, ok := promptID(sc, "User ID: ")
	if !ok {
		return
	}
	user, err := mgr.DeleteUser(context.Background(), id)
	if err != nil {
		printError(err)
		return
	}
	fmt.Printf("Deleted user %s (ID %d)\n", user.Username, user.ID)
}

func handleListUsers(mgr *hotel.Manager) {
	users, err := mgr.ListUsers(context.Background())
	if err != nil {
		printError(err)
		return
	}
	if len(users) == 0 {
		fmt.Println("No users registered.")
		return
	}

	fmt.Printf("%-5s %-20s %-30s %s\n", "ID", "Username", "Email", "Role")
	fmt.Println(strings.Repeat("-", 65))
	for _, u := range users {
		fmt.Printf("%-5d %-20s %-30s %s\n", u.ID, truncateString(u.Username, 20), truncateString(u.Email, 30), u.Role)
	}
}

func handleDashboard(mgr *hotel.Manager) {
	data, err := mgr.Dashboard(context.Background())
	if err != nil {
		printError(err)
		return
	}
	m := data.Metrics

	fmt.Println("Hotel Overview")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("%-20s %d\n", "Total rooms:", m.TotalRooms)
	fmt.Printf("%-20s %d\n", "Available rooms:", m.AvailableRooms)
	fmt.Printf("%-20s %s\n", "Occupancy:", hotel.FormatPercent(m.OccupancyRate))
	fmt.Printf("%-20s %d\n", "Total bookings:", m.TotalBookings)
	fmt.Printf("%-20s %d\n", "Active:", m.ActiveCount)
	fmt.Printf("%-20s %d\n", "Completed:", m.CompletedCount)
	fmt.Printf("%-20s %d\n", "Cancelled:", m.CancelledCount)
	fmt.Printf("%-20s %s\n", "Revenue:", hotel.FormatCurrency(m.Revenue))

	if len(data.Recent) == 0 {
		return
	}
	fmt.Println("\nRecent bookings:")
	fmt.Printf("%-5s %-15s %-15s %-12s %s\n", "ID", "Guest", "Room", "Check-in", "Status")
	fmt.Println(strings.Repeat("-", 60))
	for _, b := range data.Recent {
		fmt.Printf("%-5d %-15s %-15s %-12s %s\n",
			b.ID,
			truncateString(b.GuestName(), 15),
			truncateString(b.RoomLabel(), 15),
			b.CheckInDate.String(),
			b.Status)
	}
}

func promptID(sc *bufio.Scanner, prompt string) (int64, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return 0, false
	}
	raw := strings.TrimSpace(sc.Text())
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Printf("Invalid ID: %s\n", raw)
		return 0, false
	}
	return id, true
}

func promptDate(sc *bufio.Scanner, prompt string) (hotel.Date, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return hotel.Date{}, false
	}
	raw := strings.TrimSpace(sc.Text())
	date, err := hotel.ParseDate(raw)
	if err != nil {
		fmt.Printf("Invalid date: %s (expected YYYY-MM-DD)\n", raw)
		return hotel.Date{}, false
	}
	return date, true
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
