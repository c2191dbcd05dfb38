package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/satriapandu0417-art/cashier-epyepe/internal/domain"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultReadRange covers the expected columns:
// name | base price | category | image | stock | min stock | bundle buy qty | bundle price
const DefaultReadRange = "A:H"

type GoogleSheetsParser struct {
	service *sheets.Service
}

type Config struct {
	CredentialsJSON []byte
}

func New(cfg Config) (*GoogleSheetsParser, error) {
	ctx := context.Background()

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(cfg.CredentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &GoogleSheetsParser{
		service: service,
	}, nil
}

// ParseMenuItems reads a spreadsheet and converts its rows into menu items.
// The first row is assumed to be a header. Rows without a name or with an
// unparseable price are skipped rather than failing the whole import.
func (p *GoogleSheetsParser) ParseMenuItems(ctx context.Context, spreadsheetID, readRange string) ([]domain.MenuItem, error) {
	if readRange == "" {
		readRange = DefaultReadRange
	}

	resp, err := p.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("no data found in spreadsheet")
	}

	var items []domain.MenuItem

	// skip header
	for i := 1; i < len(resp.Values); i++ {
		row := resp.Values[i]
		if item, ok := parseRow(row); ok {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no valid menu items in spreadsheet")
	}

	return items, nil
}

func parseRow(row []interface{}) (domain.MenuItem, bool) {
	name := strings.TrimSpace(cell(row, 0))
	if name == "" {
		return domain.MenuItem{}, false
	}

	price, err := parseMoney(cell(row, 1))
	if err != nil || price <= 0 {
		return domain.MenuItem{}, false
	}

	item := domain.MenuItem{
		Name:      name,
		BasePrice: price,
		Category:  parseCategory(cell(row, 2)),
		Image:     strings.TrimSpace(cell(row, 3)),
	}

	if stock, err := parseInt(cell(row, 4)); err == nil && stock >= 0 {
		item.Stock = &stock
	}
	if minStock, err := parseInt(cell(row, 5)); err == nil && minStock >= 0 {
		item.MinStock = &minStock
	}

	buyQty, buyErr := parseInt(cell(row, 6))
	bundlePrice, priceErr := parseMoney(cell(row, 7))
	if buyErr == nil && priceErr == nil && buyQty >= 2 && bundlePrice >= 0 {
		item.Bundle = &domain.BundleConfig{
			Enabled:     true,
			BuyQuantity: buyQty,
			BundlePrice: bundlePrice,
		}
	}

	return item, true
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	return fmt.Sprintf("%v", row[i])
}

func parseCategory(raw string) domain.Category {
	c := domain.Category(strings.TrimSpace(raw))
	if domain.ValidCategory(c) {
		return c
	}
	return domain.CategoryOther
}

func parseMoney(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty value")
	}
	// sheets hand prices back as floats even when they are whole rupiah
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func parseInt(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty value")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
