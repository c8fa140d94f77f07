package readmodel

type DashboardRM struct {
	TotalRooms          int64   `json:"total_rooms"`
	TotalUnits          int64   `json:"total_units"`
	ActiveReservations  int64   `json:"active_reservations"`
	TotalUsers          int64   `json:"total_users"`
	MonthlyRevenueCents int64   `json:"monthly_revenue_cents"`
	OccupancyRate       float64 `json:"occupancy_rate"`
}

type RoomTypeStatsRM struct {
	RoomType        string `json:"room_type"`
	RoomCount       int64  `json:"room_count"`
	UnitCount       int64  `json:"unit_count"`
	ReservedTonight int64  `json:"reserved_tonight"`
	AvgPriceCents   int64  `json:"avg_price_cents"`
}

type ReservationStatsRM struct {
	CountsByStatus    map[string]int64 `json:"counts_by_status"`
	TotalRevenueCents int64            `json:"total_revenue_cents"`
}
