package domain

import "time"

type (
	// Order rows are read-only here: checkout is a stub and the rows
	// are created elsewhere.
	Order struct {
		OrderID     string
		UserID      string
		Status      string
		TotalAmount float64
		CreatedAt   time.Time
	}

	Review struct {
		ReviewID  string
		ProductID string
		UserID    string
		Rating    int
		Title     string
		Comment   string
		Approved  bool
		CreatedAt time.Time
	}

	// DashboardSummary is the per-identity account overview.
	DashboardSummary struct {
		RecentOrders  []Order
		OrderCount    int
		TotalSpent    float64
		CartCount     int
		WishlistCount int
	}
)
