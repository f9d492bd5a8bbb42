package hotel

import "sort"

// Metrics are values derived from room and booking lists on demand; none
// of them are stored anywhere.
type Metrics struct {
	TotalRooms     int
	AvailableRooms int
	TotalBookings  int
	ActiveCount    int
	CompletedCount int
	CancelledCount int
	Revenue        float64
	OccupancyRate  float64
}

// AggregateMetrics computes booking counts per status, revenue over
// COMPLETED bookings, and the occupancy rate
// (totalRooms - availableRooms) / totalRooms * 100 in a single pass.
// An empty room list yields 0% occupancy. Neither slice is mutated.
func AggregateMetrics(bookings []*Booking, rooms []*Room) Metrics {
	m := Metrics{
		TotalRooms:    len(rooms),
		TotalBookings: len(bookings),
	}
	for _, r := range rooms {
		if r.Available {
			m.AvailableRooms++
		}
	}
	for _, b := range bookings {
		switch b.Status {
		case StatusBooked:
			m.ActiveCount++
		case StatusCompleted:
			m.CompletedCount++
			m.Revenue += b.TotalPrice()
		case StatusCancelled:
			m.CancelledCount++
		}
	}
	if m.TotalRooms > 0 {
		m.OccupancyRate = float64(m.TotalRooms-m.AvailableRooms) / float64(m.TotalRooms) * 100
	}
	return m
}

// RecentBookings returns up to n bookings with the highest IDs, newest
// first. The input slice keeps its order.
func RecentBookings(bookings []*Booking, n int) []*Booking {
	if n <= 0 {
		return nil
	}
	recent := make([]*Booking, len(bookings))
	copy(recent, bookings)
	sort.Slice(recent, func(i, j int) bool { return recent[i].ID > recent[j].ID })
	if n > len(recent) {
		n = len(recent)
	}
	return recent[:n]
}
