package analytics

import (
	"sort"
	"time"

	"glowcart/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary is the admin dashboard's aggregate view. All figures are derived
// on demand from orders and profiles; nothing here is stored.
type Summary struct {
	Revenue   RevenueStats  `json:"revenue"`
	Orders    OrderStats    `json:"orders"`
	Products  ProductStats  `json:"products"`
	Customers CustomerStats `json:"customers"`
}

type RevenueStats struct {
	Total     decimal.Decimal `json:"total"`
	ThisMonth decimal.Decimal `json:"thisMonth"`
	LastMonth decimal.Decimal `json:"lastMonth"`
	// GrowthPct is month-over-month revenue growth in percent; zero when
	// last month had no revenue.
	GrowthPct decimal.Decimal `json:"growth"`
	// AvgOrderValue is total revenue over delivered orders; zero when none
	// are delivered.
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
}

type OrderStats struct {
	Total     int             `json:"total"`
	Recent    int             `json:"recent"`
	Pending   int             `json:"pending"`
	Delivered int             `json:"delivered"`
	Cancelled int             `json:"cancelled"`
	GrowthPct decimal.Decimal `json:"growth"`
}

type ProductStats struct {
	MostPopular []ProductSales `json:"mostPopular"`
}

// ProductSales accumulates sold quantity and revenue per product across
// all orders.
type ProductSales struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type CustomerStats struct {
	Total        int `json:"total"`
	NewThisMonth int `json:"newThisMonth"`
	Returning    int `json:"returning"`
}

// Compute derives the dashboard summary. Only delivered orders count
// toward revenue; cancelled orders still count in the order totals.
// rangeDays bounds the "recent" window. Pure: no clock access, no side
// effects.
func Compute(orders []domain.Order, customers []domain.Profile, now time.Time, rangeDays int) Summary {
	rangeStart := now.Add(-time.Duration(rangeDays) * 24 * time.Hour)
	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	var (
		revenue   RevenueStats
		stats     OrderStats
		thisCount int
		lastCount int
	)
	revenue.Total = decimal.Zero
	revenue.ThisMonth = decimal.Zero
	revenue.LastMonth = decimal.Zero

	sales := make(map[string]*ProductSales)
	byCustomer := make(map[string]int)

	for _, o := range orders {
		stats.Total++
		byCustomer[o.UserID]++
		if !o.CreatedAt.Before(rangeStart) {
			stats.Recent++
		}

		inThisMonth := !o.CreatedAt.Before(thisMonthStart)
		inLastMonth := !o.CreatedAt.Before(lastMonthStart) && o.CreatedAt.Before(thisMonthStart)
		if inThisMonth {
			thisCount++
		}
		if inLastMonth {
			lastCount++
		}

		switch o.Status {
		case domain.OrderStatusPending:
			stats.Pending++
		case domain.OrderStatusDelivered:
			stats.Delivered++
			revenue.Total = revenue.Total.Add(o.TotalAmount)
			if inThisMonth {
				revenue.ThisMonth = revenue.ThisMonth.Add(o.TotalAmount)
			}
			if inLastMonth {
				revenue.LastMonth = revenue.LastMonth.Add(o.TotalAmount)
			}
		case domain.OrderStatusCancelled:
			stats.Cancelled++
		}

		for _, item := range o.Items {
			ps, ok := sales[item.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: item.ProductID, Title: item.Title, Revenue: decimal.Zero}
				sales[item.ProductID] = ps
			}
			ps.Quantity += item.Quantity
			lineRevenue := domain.PriceOrZero(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
			ps.Revenue = ps.Revenue.Add(lineRevenue)
		}
	}

	revenue.GrowthPct = growthPct(revenue.ThisMonth, revenue.LastMonth)
	if stats.Delivered > 0 {
		revenue.AvgOrderValue = revenue.Total.Div(decimal.NewFromInt(int64(stats.Delivered))).Round(2)
	} else {
		revenue.AvgOrderValue = decimal.Zero
	}
	stats.GrowthPct = growthPct(decimal.NewFromInt(int64(thisCount)), decimal.NewFromInt(int64(lastCount)))

	custStats := CustomerStats{Total: len(customers)}
	for _, c := range customers {
		if !c.CreatedAt.Before(thisMonthStart) {
			custStats.NewThisMonth++
		}
	}
	for _, n := range byCustomer {
		if n > 1 {
			custStats.Returning++
		}
	}

	return Summary{
		Revenue:   revenue,
		Orders:    stats,
		Products:  ProductStats{MostPopular: topSales(sales, 5)},
		Customers: custStats,
	}
}

func growthPct(current, previous decimal.Decimal) decimal.Decimal {
	if previous.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

func topSales(sales map[string]*ProductSales, limit int) []ProductSales {
	out := make([]ProductSales, 0, len(sales))
	for _, ps := range sales {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Title < out[j].Title
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
