package sheetcal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/models"
	"github.com/ukaji3/sheetcal-go/pkg/sheetcal/parser"
)

type namedTable struct {
	name  string
	table models.Table
}

// ExtractFile extracts records from every sheet of an .xlsx workbook or
// from a .csv/.tsv file. Sheets that fail are reported as
// *ExtractionError values joined into the returned error, next to a
// workbook holding the sheets that succeeded.
func ExtractFile(ctx context.Context, path string, opts Options) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	bookName := filepath.Base(path)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		defer f.Close()
		return ExtractWorkbook(ctx, f, bookName, opts)
	case ".csv", ".tsv":
		comma := ','
		if ext == ".tsv" {
			comma = '\t'
		}
		return extractDelimited(ctx, path, bookName, comma, opts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ExtractWorkbook extracts records from an open workbook. Sheets are read
// in workbook order, then extracted concurrently.
func ExtractWorkbook(ctx context.Context, f *excelize.File, bookName string, opts Options) (*models.WorkbookData, error) {
	log := opts.logger()

	sheetList := f.GetSheetList()
	if opts.Sheet != "" {
		if idx, _ := f.GetSheetIndex(opts.Sheet); idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, opts.Sheet)
		}
		sheetList = []string{opts.Sheet}
	}

	var (
		tables []namedTable
		errs   []error
	)
	for _, sheetName := range sheetList {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err := parser.ReadSheet(f, sheetName)
		if err != nil {
			log.Warn().Err(err).Str("sheet", sheetName).Msg("failed to read sheet")
			errs = append(errs, NewExtractionError(sheetName, ComponentRead, err))
			continue
		}
		tables = append(tables, namedTable{name: sheetName, table: table})
	}

	wb, err := extractTables(ctx, bookName, tables, opts)
	if err != nil {
		return nil, err
	}
	return wb.WorkbookData, errors.Join(append(errs, wb.errs...)...)
}

func extractDelimited(ctx context.Context, path, bookName string, comma rune, opts Options) (*models.WorkbookData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sheetName := strings.TrimSuffix(bookName, filepath.Ext(bookName))
	table, err := parser.ReadCSV(file, comma)
	if err != nil {
		return nil, NewExtractionError(sheetName, ComponentRead, err)
	}

	wb, err := extractTables(ctx, bookName, []namedTable{{name: sheetName, table: table}}, opts)
	if err != nil {
		return nil, err
	}
	return wb.WorkbookData, errors.Join(wb.errs...)
}

type extractResult struct {
	*models.WorkbookData
	errs []error
}

// extractTables runs one extraction per table under the worker limit.
// Only context cancellation aborts the run; per-table failures are
// collected.
func extractTables(ctx context.Context, bookName string, tables []namedTable, opts Options) (*extractResult, error) {
	log := opts.logger()
	ex := New(opts)

	res := &extractResult{
		WorkbookData: &models.WorkbookData{
			BookName: bookName,
			Sheets:   make(map[string]models.SheetData, len(tables)),
		},
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for _, nt := range tables {
		if opts.ShouldSkipSparse() {
			if region, dense := parser.DetectTable(nt.table, ex.opts.Tables); !dense {
				log.Debug().
					Str("sheet", nt.name).
					Str("range", region.Range).
					Float64("density", region.Density).
					Msg("skipping sparse sheet")
				continue
			}
		}

		nt := nt
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			label := nt.name
			if opts.Label != "" {
				label = opts.Label
			}
			sheet, err := ex.ExtractTable(nt.table, label)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn().Err(err).Str("sheet", nt.name).Msg("failed to extract sheet")
				res.errs = append(res.errs, NewExtractionError(nt.name, ComponentExtract, err))
				return nil
			}
			res.Sheets[nt.name] = sheet
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
