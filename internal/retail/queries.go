//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package retail

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pgEdge/pgedge-retail-report/internal/db"
)

// PaymentMethodCount is the number of transactions paid one way.
type PaymentMethodCount struct {
	PaymentMethod string
	Transactions  int64
}

// CityPaymentCount is the number of transactions per city and payment method.
type CityPaymentCount struct {
	City          string
	PaymentMethod string
	Transactions  int64
}

// StoreTypeProduct is the number of items of one product sold by a store type.
type StoreTypeProduct struct {
	StoreType string
	Product   string
	ItemsSold int64
}

// YearlySales is the items sold and revenue of one year.
type YearlySales struct {
	Year      int
	ItemsSold int64
	TotalCost float64
}

// SeasonalSales is the revenue of one season of one year.
type SeasonalSales struct {
	Year      int
	Season    string
	TotalCost float64
}

// YearlyPaymentCount is the number of transactions per year and payment method.
type YearlyPaymentCount struct {
	Year          int
	PaymentMethod string
	Transactions  int64
}

// CityCount is the number of transactions in one city.
type CityCount struct {
	City         string
	Transactions int64
}

// Buyer is a customer's total spend.
type Buyer struct {
	CustomerName string
	TotalCost    float64
}

// CityPromotionSales is the revenue per city and promotion.
type CityPromotionSales struct {
	City      string
	Promotion string
	TotalCost float64
}

// TopBuyersLimit is the number of customers TopBuyers returns.
const TopBuyersLimit = 10

func collect[T any](ctx context.Context, conn db.DB, sql string, args ...any) ([]T, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[T])
}

// PaymentMethodDistribution counts transactions per payment method.
func PaymentMethodDistribution(ctx context.Context, conn db.DB) ([]PaymentMethodCount, error) {
	return collect[PaymentMethodCount](ctx, conn, `
        SELECT payment_method, COUNT(*) AS transactions
        FROM retail_transactions
        GROUP BY payment_method
        ORDER BY transactions DESC, payment_method
    `)
}

// PaymentMethodsByCity counts transactions per city and payment method.
func PaymentMethodsByCity(ctx context.Context, conn db.DB) ([]CityPaymentCount, error) {
	return collect[CityPaymentCount](ctx, conn, `
        SELECT city, payment_method, COUNT(*) AS transactions
        FROM retail_transactions
        GROUP BY city, payment_method
        ORDER BY city, transactions DESC, payment_method
    `)
}

// ProductSalesByStoreType sums items sold per store type and product.
func ProductSalesByStoreType(ctx context.Context, conn db.DB) ([]StoreTypeProduct, error) {
	return collect[StoreTypeProduct](ctx, conn, `
        SELECT store_type, product, SUM(total_items)::bigint AS items_sold
        FROM retail_transactions
        GROUP BY store_type, product
        ORDER BY store_type, product
    `)
}

// TopProductByStoreType returns the best selling product of each store
// type. Ties go to the product name that sorts first.
func TopProductByStoreType(ctx context.Context, conn db.DB) ([]StoreTypeProduct, error) {
	sales, err := ProductSalesByStoreType(ctx, conn)
	if err != nil {
		return nil, err
	}
	return TopPerGroup(sales,
		func(s StoreTypeProduct) string { return s.StoreType },
		func(a, b StoreTypeProduct) bool {
			if a.ItemsSold != b.ItemsSold {
				return a.ItemsSold > b.ItemsSold
			}
			return a.Product < b.Product
		}), nil
}

// YearlySalesTotals sums items and revenue per year.
func YearlySalesTotals(ctx context.Context, conn db.DB) ([]YearlySales, error) {
	return collect[YearlySales](ctx, conn, `
        SELECT EXTRACT(YEAR FROM order_date)::int AS year,
               SUM(total_items)::bigint AS items_sold,
               ROUND(SUM(total_cost)::numeric, 2)::float8 AS total_cost
        FROM retail_transactions
        GROUP BY 1
        ORDER BY 1
    `)
}

// SeasonalSalesTotals sums revenue per year and season.
func SeasonalSalesTotals(ctx context.Context, conn db.DB) ([]SeasonalSales, error) {
	return collect[SeasonalSales](ctx, conn, `
        SELECT EXTRACT(YEAR FROM order_date)::int AS year,
               season,
               ROUND(SUM(total_cost)::numeric, 2)::float8 AS total_cost
        FROM retail_transactions
        GROUP BY 1, 2
        ORDER BY 1, 2
    `)
}

// YearlyPaymentTrends counts transactions per year and payment method.
func YearlyPaymentTrends(ctx context.Context, conn db.DB) ([]YearlyPaymentCount, error) {
	return collect[YearlyPaymentCount](ctx, conn, `
        SELECT EXTRACT(YEAR FROM order_date)::int AS year,
               payment_method,
               COUNT(*) AS transactions
        FROM retail_transactions
        GROUP BY 1, 2
        ORDER BY 1, 3 DESC, 2
    `)
}

// CitySales counts transactions per city, busiest first.
func CitySales(ctx context.Context, conn db.DB) ([]CityCount, error) {
	return collect[CityCount](ctx, conn, `
        SELECT city, COUNT(*) AS transactions
        FROM retail_transactions
        GROUP BY city
        ORDER BY transactions DESC, city
    `)
}

// TopBuyers returns the customers with the highest total spend. Equal
// totals keep the order in which the customers first appear in the load.
func TopBuyers(ctx context.Context, conn db.DB) ([]Buyer, error) {
	return collect[Buyer](ctx, conn, `
        SELECT customer_name,
               ROUND(SUM(total_cost)::numeric, 2)::float8 AS total_cost
        FROM retail_transactions
        GROUP BY customer_name
        ORDER BY 2 DESC, MIN(id)
        LIMIT $1
    `, TopBuyersLimit)
}

// PromotionSalesByCity sums revenue per city and promotion.
func PromotionSalesByCity(ctx context.Context, conn db.DB) ([]CityPromotionSales, error) {
	return collect[CityPromotionSales](ctx, conn, `
        SELECT city, promotion,
               ROUND(SUM(total_cost)::numeric, 2)::float8 AS total_cost
        FROM retail_transactions
        GROUP BY city, promotion
        ORDER BY city, 3, promotion
    `)
}
