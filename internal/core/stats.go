package core

type (
	// StatsSummary mirrors the summary block of GET /api/stats.
	StatsSummary struct {
		TotalReceipts     int     `json:"totalReceipts"`
		TotalAmount       float64 `json:"totalAmount"`
		TotalKDV          float64 `json:"totalKdv"`
		ThisMonthReceipts int     `json:"thisMonthReceipts"`
	}

	// MonthlyStat is one row of the per-month aggregate table. The mixed
	// snake/camel tags are the backend's, not ours.
	MonthlyStat struct {
		Month        string  `json:"month"`
		Count        int     `json:"count"`
		TotalAmount  float64 `json:"total_amount"`
		TopKDVAmount float64 `json:"topKdvAmount"`
		NetAmount    float64 `json:"netAmount"`
	}

	// UserStat is one row of the per-user aggregate list.
	UserStat struct {
		TelegramUsername string  `json:"telegram_username"`
		FirstName        string  `json:"first_name"`
		LastName         string  `json:"last_name"`
		ReceiptCount     int     `json:"receipt_count"`
		TotalAmount      float64 `json:"total_amount"`
	}

	// Stats is the full aggregate document the dashboard renders. Decoded
	// with explicit types so a malformed payload fails at the boundary
	// instead of rendering blanks.
	Stats struct {
		Summary        StatsSummary  `json:"summary"`
		RecentReceipts []Receipt     `json:"recentReceipts"`
		MonthlyStats   []MonthlyStat `json:"monthlyStats"`
		UserStats      []UserStat    `json:"userStats"`
	}
)

// DisplayName resolves the aggregate row's user the same way Receipt does.
func (u UserStat) DisplayName() string {
	r := Receipt{TelegramUsername: u.TelegramUsername, FirstName: u.FirstName, LastName: u.LastName}
	return r.DisplayName()
}
