package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"glowcart/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

type csvRow struct {
	ID       string
	Title    string
	Price    string
	ImageURL string
	Gallery  []string
	Intro    string
	HowToUse string
	Shade    string
	Finish   string
	Size     string
	Color    string
}

// Run parses CSV rows and upserts products. Continuation rows carrying
// only a gallery URL attach to the preceding product.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *csvRow
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

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.Title != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows (extra gallery images) belong to the current product.
		if current != nil && len(row.Gallery) > 0 {
			current.Gallery = append(current.Gallery, row.Gallery...)
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

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Title == "" || row.Price == "" {
		return fmt.Errorf("invalid product row (missing required fields) for title %q", row.Title)
	}
	if row.ID != "" && len(row.ID) != 36 {
		return fmt.Errorf("invalid id for title %q: %s", row.Title, row.ID)
	}
	if _, err := domain.ParsePrice(row.Price); err != nil {
		return fmt.Errorf("invalid price for title %q: %w", row.Title, err)
	}

	p := domain.Product{
		ID:       row.ID,
		Title:    row.Title,
		Price:    row.Price,
		ImageURL: row.ImageURL,
		Gallery:  row.Gallery,
		Intro:    row.Intro,
		HowToUse: row.HowToUse,
		Shade:    row.Shade,
		Finish:   row.Finish,
		Size:     row.Size,
		Color:    row.Color,
	}

	if _, err := i.productRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Title, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	id := pick(record, index, "id")
	title := pick(record, index, "title")
	galleryURL := pick(record, index, "gallery.url")

	if title == "" && galleryURL == "" {
		return nil
	}

	row := &csvRow{
		ID:       id,
		Title:    title,
		Price:    pick(record, index, "price"),
		ImageURL: pick(record, index, "image.url"),
		Intro:    pick(record, index, "intro"),
		HowToUse: pick(record, index, "howToUse"),
		Shade:    pick(record, index, "shade"),
		Finish:   pick(record, index, "finish"),
		Size:     pick(record, index, "size"),
		Color:    pick(record, index, "color"),
	}
	if galleryURL != "" {
		row.Gallery = []string{galleryURL}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
