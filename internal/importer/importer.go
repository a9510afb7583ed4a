package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"restaurant-ordering/internal/domain"
	menusvc "restaurant-ordering/internal/service/menu"
)

// Columns expected in the header row. Only category, name and base_price are
// mandatory on item rows.
const (
	colCategory       = "category"
	colName           = "name"
	colDescription    = "description"
	colBasePrice      = "base_price"
	colPriceOnRequest = "price_on_request"
	colAddonType      = "addon_type"
	colRequired       = "required"
	colMultiple       = "multiple"
	colOption         = "option"
	colOptionPrice    = "option_price"
	colOfferType      = "offer_type"
	colOfferValue     = "offer_value"
)

type ItemCreator interface {
	Create(ctx context.Context, in menusvc.CreateInput) (*domain.MenuItem, error)
}

type CategoryLookup interface {
	GetByKey(ctx context.Context, key string) (*domain.Category, error)
}

// CSVImporter reads menu CSV files. Each row carries at most one addon
// option; rows with an empty name continue the previous item.
type CSVImporter struct {
	reader     *csv.Reader
	items      ItemCreator
	categories CategoryLookup
	catIDs     map[string]string
}

func NewCSVImporter(r io.Reader, items ItemCreator, categories CategoryLookup) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:     csvr,
		items:      items,
		categories: categories,
		catIDs:     map[string]string{},
	}
}

type pendingItem struct {
	line        int
	categoryKey string
	input       menusvc.CreateInput
}

// Run parses every row and creates one menu item per item row. It stops at
// the first invalid row or rejected item.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{colCategory, colName, colBasePrice} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("missing column %q", required)
		}
	}

	var (
		current  *pendingItem
		imported int
	)
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)
		if blank(record) {
			continue
		}

		if name := pick(record, index, colName); name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current, err = newPendingItem(line, record, index)
			if err != nil {
				return imported, err
			}
		} else if current == nil {
			return imported, fmt.Errorf("line %d: continuation row before any item", line)
		}

		if err := addOption(current, line, record, index); err != nil {
			return imported, err
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, p *pendingItem) error {
	categoryID, err := i.categoryID(ctx, p.categoryKey)
	if err != nil {
		return fmt.Errorf("line %d: category %q: %w", p.line, p.categoryKey, err)
	}
	p.input.CategoryID = categoryID
	if _, err := i.items.Create(ctx, p.input); err != nil {
		return fmt.Errorf("line %d: create %q: %w", p.line, p.input.Name, err)
	}
	return nil
}

func (i *CSVImporter) categoryID(ctx context.Context, key string) (string, error) {
	if id, ok := i.catIDs[key]; ok {
		return id, nil
	}
	cat, err := i.categories.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	i.catIDs[key] = cat.ID
	return cat.ID, nil
}

func newPendingItem(line int, record []string, index map[string]int) (*pendingItem, error) {
	p := &pendingItem{
		line:        line,
		categoryKey: pick(record, index, colCategory),
		input: menusvc.CreateInput{
			Name:        pick(record, index, colName),
			Description: pick(record, index, colDescription),
		},
	}
	if p.categoryKey == "" {
		return nil, fmt.Errorf("line %d: category is required", line)
	}
	base, err := parseMoney(pick(record, index, colBasePrice))
	if err != nil {
		return nil, fmt.Errorf("line %d: base_price: %w", line, err)
	}
	p.input.BasePrice = base
	p.input.IsPriceBasedOnRequest, err = parseBool(pick(record, index, colPriceOnRequest))
	if err != nil {
		return nil, fmt.Errorf("line %d: price_on_request: %w", line, err)
	}

	switch offerType := strings.ToLower(pick(record, index, colOfferType)); offerType {
	case "":
	case "percent", "flat":
		value, err := parseMoney(pick(record, index, colOfferValue))
		if err != nil {
			return nil, fmt.Errorf("line %d: offer_value: %w", line, err)
		}
		p.input.Offer = &menusvc.OfferInput{IsEnabled: true, IsPercentage: offerType == "percent", DiscountValue: value}
	default:
		return nil, fmt.Errorf("line %d: unknown offer_type %q", line, offerType)
	}
	return p, nil
}

// addOption appends the row's option. A new addon_type title opens a new
// type; an empty one continues the last type of the item.
func addOption(p *pendingItem, line int, record []string, index map[string]int) error {
	title := pick(record, index, colAddonType)
	option := pick(record, index, colOption)
	if title == "" && option == "" {
		return nil
	}

	types := p.input.AddonTypes
	if title != "" && (len(types) == 0 || types[len(types)-1].Title != title) {
		required, err := parseBool(pick(record, index, colRequired))
		if err != nil {
			return fmt.Errorf("line %d: required: %w", line, err)
		}
		multiple, err := parseBool(pick(record, index, colMultiple))
		if err != nil {
			return fmt.Errorf("line %d: multiple: %w", line, err)
		}
		types = append(types, menusvc.AddonTypeInput{
			Title:                 title,
			IsSelectionRequired:   required,
			AllowsMultipleOptions: multiple,
		})
	}
	if len(types) == 0 {
		return fmt.Errorf("line %d: option %q has no addon_type", line, option)
	}
	if option != "" {
		price, err := parseMoney(pick(record, index, colOptionPrice))
		if err != nil {
			return fmt.Errorf("line %d: option_price: %w", line, err)
		}
		last := &types[len(types)-1]
		last.Options = append(last.Options, menusvc.AddonOptionInput{Name: option, PriceDelta: price})
	}
	p.input.AddonTypes = types
	return nil
}

func parseMoney(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "", "no", "n":
		return false, nil
	case "yes", "y":
		return true, nil
	}
	return strconv.ParseBool(raw)
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
