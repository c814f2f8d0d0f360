package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecocart/storefront/internal/catalog/domain"
)

// Seed loads the storefront catalog into an empty products table.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var n int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return nil
	}

	repo := NewProductRepo(pool)
	for _, p := range catalogSeed {
		if _, err := repo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}
	return nil
}

func inr(amount int64) domain.Money {
	return domain.Money{Currency: "INR", Amount: amount}
}

var catalogSeed = []domain.Product{
	{ID: "1", Name: "Bamboo Toothbrush Set", Price: inr(299), Stock: 25, ImageRef: "https://images.unsplash.com/photo-1607613009820-a29f7bb81c04?w=300", Category: "Personal Care"},
	{ID: "2", Name: "Reusable Water Bottle", Price: inr(499), Stock: 18, ImageRef: "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=300", Category: "Lifestyle"},
	{ID: "3", Name: "Organic Cotton Tote Bag", Price: inr(199), Stock: 30, ImageRef: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=300", Category: "Bags"},
	{ID: "4", Name: "Solar Power Bank", Price: inr(1799), Stock: 12, ImageRef: "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=300", Category: "Electronics"},
	{ID: "5", Name: "Beeswax Food Wraps", Price: inr(399), Stock: 22, ImageRef: "https://images.unsplash.com/photo-1586201375761-83865001e31c?w=300", Category: "Kitchen"},
	{ID: "6", Name: "Stainless Steel Straws", Price: inr(149), Stock: 35, ImageRef: "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=300", Category: "Kitchen"},
	{ID: "7", Name: "Cork Yoga Mat", Price: inr(2499), Stock: 8, ImageRef: "https://images.unsplash.com/photo-1506629905607-d5f42a50b25c?w=300", Category: "Fitness"},
	{ID: "8", Name: "Recycled Notebook Set", Price: inr(349), Stock: 28, ImageRef: "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=300", Category: "Stationery"},
	{ID: "9", Name: "Hemp Backpack", Price: inr(1799), Stock: 14, ImageRef: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=300", Category: "Bags"},
	{ID: "10", Name: "Organic Shampoo Bar", Price: inr(249), Stock: 26, ImageRef: "https://images.unsplash.com/photo-1556228578-dd339f8f0265?w=300", Category: "Personal Care"},
	{ID: "11", Name: "Wooden Phone Stand", Price: inr(399), Stock: 20, ImageRef: "https://images.unsplash.com/photo-1434749071564-6cf342b5b0d6?w=300", Category: "Electronics"},
	{ID: "12", Name: "Biodegradable Phone Case", Price: inr(499), Stock: 16, ImageRef: "https://images.unsplash.com/photo-1574944985070-8f3ebc6b79d2?w=300", Category: "Electronics"},
	{ID: "13", Name: "Organic Tea Sampler", Price: inr(599), Stock: 19, ImageRef: "https://images.unsplash.com/photo-1544787219-7f47ccb76574?w=300", Category: "Food & Beverage"},
	{ID: "14", Name: "Compostable Plates Set", Price: inr(299), Stock: 32, ImageRef: "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=300", Category: "Kitchen"},
	{ID: "15", Name: "Natural Deodorant", Price: inr(199), Stock: 24, ImageRef: "https://images.unsplash.com/photo-1556228578-8c89e6adf883?w=300", Category: "Personal Care"},
	{ID: "16", Name: "Recycled Denim Jacket", Price: inr(2999), Stock: 11, ImageRef: "https://images.unsplash.com/photo-1551028719-00167b16eac5?w=300", Category: "Clothing"},
	{ID: "17", Name: "Plant-Based Protein Powder", Price: inr(899), Stock: 15, ImageRef: "https://images.unsplash.com/photo-1544716278-e513176f20a5?w=300", Category: "Food & Beverage"},
	{ID: "18", Name: "Bamboo Cutting Board", Price: inr(599), Stock: 21, ImageRef: "https://images.unsplash.com/photo-1556909114-b7ccfdc2b6cf?w=300", Category: "Kitchen"},
	{ID: "19", Name: "Solar Garden Lights", Price: inr(1499), Stock: 9, ImageRef: "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=300", Category: "Home & Garden"},
	{ID: "20", Name: "Eco-Friendly Laundry Pods", Price: inr(399), Stock: 27, ImageRef: "https://images.unsplash.com/photo-1556228578-8c89e6adf883?w=300", Category: "Home Care"},
}
