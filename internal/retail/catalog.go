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
	"strconv"

	"github.com/pgEdge/pgedge-retail-report/internal/charts"
	"github.com/pgEdge/pgedge-retail-report/internal/db"
	"github.com/pgEdge/pgedge-retail-report/internal/report"
)

func count(n int64) string {
	return strconv.FormatInt(n, 10)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func year(y int) string {
	return strconv.Itoa(y)
}

// query adapts a typed query and its presentation into a catalog entry.
func query[T any](def report.Definition, run func(context.Context, db.DB) ([]T, error), present func(def report.Definition, rows []T) report.Output) report.Definition {
	def.Run = func(ctx context.Context, conn db.DB) (report.Output, error) {
		rows, err := run(ctx, conn)
		if err != nil {
			return report.Output{}, err
		}
		return present(def, rows), nil
	}
	return def
}

func chartFor(def report.Definition) charts.Spec {
	return charts.Spec{
		Name:  def.Name,
		Title: def.Title,
		Kind:  def.Kind,
	}
}

// Catalog returns the report queries in presentation order.
func Catalog() []report.Definition {
	return []report.Definition{
		query(report.Definition{
			Name:        "payment_method_distribution",
			Title:       "Payment Method Distribution",
			Description: "Number of transactions per payment method",
			Kind:        charts.KindBar,
		}, PaymentMethodDistribution, func(def report.Definition, rows []PaymentMethodCount) report.Output {
			out := report.Output{
				Table: report.Table{Header: []string{"Payment_Method", "Payment_Count"}},
				Chart: chartFor(def),
			}
			values := make([]float64, len(rows))
			for i, r := range rows {
				out.Table.Rows = append(out.Table.Rows, []string{r.PaymentMethod, count(r.Transactions)})
				out.Chart.Categories = append(out.Chart.Categories, r.PaymentMethod)
				values[i] = float64(r.Transactions)
			}
			out.Chart.Series = []charts.Series{{Name: "Payment_Count", Values: values}}
			out.Chart.XLabel = "Payment_Method"
			out.Chart.YLabel = "Payment_Count"
			out.Chart.Thousands = true
			return out
		}),

		query(report.Definition{
			Name:        "payment_methods_by_city",
			Title:       "Payment Methods by City",
			Description: "Number of transactions per city and payment method",
			Kind:        charts.KindGroupedBar,
		}, PaymentMethodsByCity, func(def report.Definition, rows []CityPaymentCount) report.Output {
			out := report.Output{
				Table: report.Table{Header: []string{"City", "Payment_Method", "Payment_Count"}},
				Chart: chartFor(def),
			}
			for _, r := range rows {
				out.Table.Rows = append(out.Table.Rows, []string{r.City, r.PaymentMethod, count(r.Transactions)})
			}
			out.Chart.Categories, out.Chart.Series = charts.Pivot(rows,
				func(r CityPaymentCount) string { return r.City },
				func(r CityPaymentCount) string { return r.PaymentMethod },
				func(r CityPaymentCount) float64 { return float64(r.Transactions) })
			out.Chart.YLabel = "Payment_Count"
			out.Chart.Thousands = true
			return out
		}),

		query(report.Definition{
			Name:        "top_product_by_store_type",
			Title:       "Top Product by Store Type",
			Description: "Best selling product of each store type by items sold",
			Kind:        charts.KindHorizontalBar,
		}, TopProductByStoreType, func(def report.Definition, rows []StoreTypeProduct) report.Output {
			out := report.Output{
				Table: report.Table{Header: []string{"Store_Type", "Product", "Total_Sold"}},
				Chart: chartFor(def),
			}
			values := make([]float64, len(rows))
			for i, r := range rows {
				out.Table.Rows = append(out.Table.Rows, []string{r.StoreType, r.Product, count(r.ItemsSold)})
				out.Chart.Categories = append(out.Chart.Categories, r.StoreType)
				out.Chart.Labels = append(out.Chart.Labels, r.Product+" "+charts.Thousands(float64(r.ItemsSold)))
				values[i] = float64(r.ItemsSold)
			}
			out.Chart.Series = []charts.Series{{Name: "Total_Sold", Values: values}}
			return out
		}),

		query(report.Definition{
			Name:        "yearly_sales",
			Title:       "Yearly Sales",
			Description: "Items sold and revenue per year",
			Kind:        charts.KindLine,
		}, YearlySalesTotals, func(def report.Definition, rows []YearlySales) report.Output {
			out := report.Output{
				Table: report.Table{Header: []string{"Order_Year", "Item_sales", "Item_cost"}},
				Chart: chartFor(def),
			}
			items := make([]float64, len(rows))
			cost := make([]float64, len(rows))
			for i, r := range rows {
				out.Table.Rows = append(out.Table.Rows, []string{year(r.Year), count(r.ItemsSold), money(r.TotalCost)})
				out.Chart.Categories = append(out.Chart.Categories, year(r.Year))
				items[i] = float64(r.ItemsSold)
				cost[i] = r.TotalCost
			}
			out.Chart.Series = []charts.Series{
				{Name: "Items Sold", Values: items},
				{Name: "Total Cost", Values: cost},
			}
			out.Chart.XLabel = "Order_Year"
			out.Chart.Thousands = true
			return out
		}),

		query(report.Definition{
			Name:        "seasonal_sales",
			Title:       "Season-wise Sales per Year",
			Description: "Revenue per year and season",
			Kind:        charts.KindGroupedBar,
		}, SeasonalSalesTotals, func(def report.Definition, rows []SeasonalSales) report.Output {
			out := report.Output{
				Table: report.Table{Header: []string{"Order_Year", "Season", "Item_cost"}},
				Chart: chartFor(def),
			}
			for _, r := range rows {
				out.Table.Rows = append(out.Table.Rows, []string{year(r.Year), r.Season, money(r.TotalCost)})
			}
			out.Chart.Categories, out.Chart.Series = charts.Pivot(rows,
				func(r SeasonalSales) string { return year(r.Year) },
				func(r SeasonalSales) string { return r.Season },
				func(r SeasonalSales) float64 { return r.TotalCost })
			out.Chart.YLabel = "Item_cost"
			out.Chart.Thousands = true
			return out
		}),

		query(report.Definition{
			Name:        "yearly_payment_trends",
			Title:       "Yearly Payment Method Trends",
			Description: "Number of transactions per year and payment method",
			Kind:        charts.KindLine,
		}, YearlyPaymentTrends, func(def report.Definition, rows []YearlyPaymentCount) report.Output {
			out := report.Output{
				Table: report.Table{Header: []string{"Order_Year", "Payment_Method", "Payment_count"}},
				Chart: chartFor(def),
			}
			for _, r := range rows {
				out.Table.Rows = append(out.Table.Rows, []string{year(r.Year), r.PaymentMethod, count(r.Transactions)})
			}
			out.Chart.Categories, out.Chart.Series = charts.Pivot(rows,
				func(r YearlyPaymentCount) string { return year(r.Year) },
				func(r YearlyPaymentCount) string { return r.PaymentMethod },
				func(r YearlyPaymentCount) float64 { return float64(r.Transactions) })
			out.Chart.XLabel = "Order_Year"
			out.Chart.YLabel = "Payment_count"
			out.Chart.Thousands = true
			return out
		}),

		query(report.Definition{
			Name:        "city_sales",
			Title:       "Citywise Sales",
			Description: "Number of transactions per city, busiest first",
			Kind:        charts.KindHorizontalBar,
		}, CitySales, func(def report.Definition, rows []CityCount) report.Output {
			out := report.Output{
				Table: report.Table{Header: []string{"City", "Sales"}},
				Chart: chartFor(def),
			}
			values := make([]float64, len(rows))
			for i, r := range rows {
				out.Table.Rows = append(out.Table.Rows, []string{r.City, count(r.Transactions)})
				out.Chart.Categories = append(out.Chart.Categories, r.City)
				values[i] = float64(r.Transactions)
			}
			out.Chart.Series = []charts.Series{{Name: "Sales", Values: values}}
			return out
		}),

		query(report.Definition{
			Name:        "top_buyers",
			Title:       "Top 10 Buyers",
			Description: "Customers with the highest total spend",
			Kind:        charts.KindHorizontalBar,
		}, TopBuyers, func(def report.Definition, rows []Buyer) report.Output {
			out := report.Output{
				Table: report.Table{Header: []string{"Customer_Name", "Sales"}},
				Chart: chartFor(def),
			}
			values := make([]float64, len(rows))
			for i, r := range rows {
				out.Table.Rows = append(out.Table.Rows, []string{r.CustomerName, money(r.TotalCost)})
				out.Chart.Categories = append(out.Chart.Categories, r.CustomerName)
				out.Chart.Labels = append(out.Chart.Labels, charts.Money(r.TotalCost))
				values[i] = r.TotalCost
			}
			out.Chart.Series = []charts.Series{{Name: "Sales", Values: values}}
			return out
		}),

		query(report.Definition{
			Name:        "promotion_sales_by_city",
			Title:       "Promotion Sales per City",
			Description: "Revenue per city and promotion",
			Kind:        charts.KindGroupedBar,
		}, PromotionSalesByCity, func(def report.Definition, rows []CityPromotionSales) report.Output {
			out := report.Output{
				Table: report.Table{Header: []string{"City", "Promotion", "Promotion_sales"}},
				Chart: chartFor(def),
			}
			for _, r := range rows {
				out.Table.Rows = append(out.Table.Rows, []string{r.City, r.Promotion, money(r.TotalCost)})
			}
			out.Chart.Categories, out.Chart.Series = charts.Pivot(rows,
				func(r CityPromotionSales) string { return r.City },
				func(r CityPromotionSales) string { return r.Promotion },
				func(r CityPromotionSales) float64 { return r.TotalCost })
			out.Chart.YLabel = "Promotion_sales"
			out.Chart.Thousands = true
			return out
		}),
	}
}

func init() {
	for _, def := range Catalog() {
		report.Register(def)
	}
}
