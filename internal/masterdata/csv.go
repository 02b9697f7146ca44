package masterdata

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
)

// Entity names shared by cache keys and the CSV import surface.
const (
	entityMetalTypes           = "metal_types"
	entityMetalColors          = "metal_colors"
	entityMetalPurities        = "metal_purities"
	entityGemstoneTypes        = "gemstone_types"
	entityDiamondClarityColors = "diamond_clarity_colors"
	entityCategories           = "categories"
	entityTags                 = "tags"
	entityBadges               = "badges"
)

// shapeSeparator joins multi-value cells inside one CSV column.
const shapeSeparator = "|"

// RowError describes one rejected CSV row.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportInput carries one uploaded CSV document.
type ImportInput struct {
	Entity string
	Data   []byte
}

// ImportResult reports a successful all-or-nothing apply.
type ImportResult struct {
	Entity      string `json:"entity"`
	RowsApplied int    `json:"rowsApplied"`
}

var csvHeadersByEntity = map[enums.ImportEntity][]string{
	enums.ImportEntityMetalTypes:          {"name", "slug", "is_active"},
	enums.ImportEntityMetalColors:         {"name", "slug", "is_active"},
	enums.ImportEntityMetalPurities:       {"metal_type_slug", "name", "slug", "fineness", "is_active"},
	enums.ImportEntityGemstoneTypes:       {"name", "slug", "shapes", "is_active"},
	enums.ImportEntityDiamondClarityColor: {"clarity", "color", "slug", "is_active"},
}

// ImportCSV validates and applies a full-table CSV upload. The whole file is
// validated first; a single bad row rejects the entire upload, and the apply
// replaces the previous table contents inside one transaction.
func (s *service) ImportCSV(ctx context.Context, input ImportInput) (*ImportResult, error) {
	entity, err := enums.ParseImportEntity(input.Entity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported import entity")
	}

	records, err := readCSV(input.Data)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "csv file is empty")
	}

	header, rows := records[0], records[1:]
	columns, err := validateHeader(entity, header)
	if err != nil {
		return nil, err
	}

	applied := 0
	txErr := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		count, err := s.applyImport(ctx, tx, entity, columns, rows)
		if err != nil {
			return err
		}
		applied = count
		return nil
	})
	if txErr != nil {
		if pkgerrors.As(txErr) != nil {
			return nil, txErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "apply csv import")
	}

	s.invalidate(ctx, entity.String())
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"entity": entity.String(), "rows": applied}), "csv import applied")
	return &ImportResult{Entity: entity.String(), RowsApplied: applied}, nil
}

// ExportCSV renders the current table contents using the import column set, so
// an export can be edited and re-imported as-is.
func (s *service) ExportCSV(ctx context.Context, entityName string) ([]byte, error) {
	entity, err := enums.ParseImportEntity(entityName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported export entity")
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeadersByEntity[entity]); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv header")
	}

	switch entity {
	case enums.ImportEntityMetalTypes:
		rows, err := s.repo.AllMetalTypes(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: export metal types")
		}
		for _, row := range rows {
			if err := writer.Write([]string{row.Name, row.Slug, strconv.FormatBool(row.IsActive)}); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
			}
		}

	case enums.ImportEntityMetalColors:
		rows, err := s.repo.AllMetalColors(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: export metal colors")
		}
		for _, row := range rows {
			if err := writer.Write([]string{row.Name, row.Slug, strconv.FormatBool(row.IsActive)}); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
			}
		}

	case enums.ImportEntityMetalPurities:
		rows, err := s.repo.AllMetalPurities(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: export metal purities")
		}
		types, err := s.repo.AllMetalTypes(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: export metal types")
		}
		slugByID := make(map[string]string, len(types))
		for _, t := range types {
			slugByID[t.ID.String()] = t.Slug
		}
		for _, row := range rows {
			record := []string{
				slugByID[row.MetalTypeID.String()],
				row.Name,
				row.Slug,
				row.Fineness.StringFixed(3),
				strconv.FormatBool(row.IsActive),
			}
			if err := writer.Write(record); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
			}
		}

	case enums.ImportEntityGemstoneTypes:
		rows, err := s.repo.AllGemstoneTypes(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: export gemstone types")
		}
		for _, row := range rows {
			record := []string{row.Name, row.Slug, strings.Join(row.Shapes, shapeSeparator), strconv.FormatBool(row.IsActive)}
			if err := writer.Write(record); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
			}
		}

	case enums.ImportEntityDiamondClarityColor:
		rows, err := s.repo.AllDiamondClarityColors(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: export diamond clarity colors")
		}
		for _, row := range rows {
			record := []string{row.Clarity, row.Color, row.Slug, strconv.FormatBool(row.IsActive)}
			if err := writer.Write(record); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write csv row")
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flush csv")
	}
	return buf.Bytes(), nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed csv")
		}
		records = append(records, record)
	}
	return records, nil
}

// validateHeader checks the uploaded columns against the expected set and
// returns a column-name -> index mapping.
func validateHeader(entity enums.ImportEntity, header []string) (map[string]int, error) {
	expected := csvHeadersByEntity[entity]
	expectedSet := make(map[string]struct{}, len(expected))
	for _, col := range expected {
		expectedSet[col] = struct{}{}
	}

	columns := make(map[string]int, len(header))
	var unknown []string
	for i, raw := range header {
		col := strings.ToLower(strings.TrimSpace(raw))
		if _, ok := expectedSet[col]; !ok {
			unknown = append(unknown, col)
			continue
		}
		columns[col] = i
	}

	var missing []string
	for _, col := range expected {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 || len(unknown) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "csv header mismatch").
			WithDetails(map[string]any{"missingColumns": missing, "unknownColumns": unknown})
	}
	return columns, nil
}

func (s *service) applyImport(ctx context.Context, tx *gorm.DB, entity enums.ImportEntity, columns map[string]int, rows [][]string) (int, error) {
	switch entity {
	case enums.ImportEntityMetalTypes:
		parsed, rowErrs := parseSimpleRows(columns, rows)
		if len(rowErrs) > 0 {
			return 0, rowValidationError(rowErrs)
		}
		out := make([]models.MetalType, len(parsed))
		for i, p := range parsed {
			out[i] = models.MetalType{Name: p.name, Slug: p.slug, IsActive: p.isActive}
		}
		if err := ReplaceAll(ctx, tx, out); err != nil {
			return 0, err
		}
		return len(out), nil

	case enums.ImportEntityMetalColors:
		parsed, rowErrs := parseSimpleRows(columns, rows)
		if len(rowErrs) > 0 {
			return 0, rowValidationError(rowErrs)
		}
		out := make([]models.MetalColor, len(parsed))
		for i, p := range parsed {
			out[i] = models.MetalColor{Name: p.name, Slug: p.slug, IsActive: p.isActive}
		}
		if err := ReplaceAll(ctx, tx, out); err != nil {
			return 0, err
		}
		return len(out), nil

	case enums.ImportEntityMetalPurities:
		return s.applyPurityImport(ctx, tx, columns, rows)

	case enums.ImportEntityGemstoneTypes:
		return applyGemstoneImport(ctx, tx, columns, rows)

	case enums.ImportEntityDiamondClarityColor:
		return applyClarityColorImport(ctx, tx, columns, rows)
	}
	return 0, pkgerrors.New(pkgerrors.CodeValidation, "unsupported import entity")
}

type simpleRow struct {
	name     string
	slug     string
	isActive bool
}

func parseSimpleRows(columns map[string]int, rows [][]string) ([]simpleRow, []RowError) {
	var rowErrs []RowError
	seenSlugs := map[string]int{}
	parsed := make([]simpleRow, 0, len(rows))

	for i, record := range rows {
		rowNum := i + 2 // 1-based, header is row 1
		name := cell(record, columns["name"])
		slug := cell(record, columns["slug"])
		if name == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "name", Message: "name is required"})
		}
		if slug == "" {
			slug = Slugify(name)
		}
		if slug == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "slug", Message: "slug is required"})
		} else if prev, dup := seenSlugs[slug]; dup {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "slug", Message: fmt.Sprintf("duplicate slug %q (also on row %d)", slug, prev)})
		} else {
			seenSlugs[slug] = rowNum
		}

		active, err := parseBoolCell(cell(record, columns["is_active"]))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "is_active", Message: err.Error()})
		}
		parsed = append(parsed, simpleRow{name: name, slug: slug, isActive: active})
	}
	return parsed, rowErrs
}

func (s *service) applyPurityImport(ctx context.Context, tx *gorm.DB, columns map[string]int, rows [][]string) (int, error) {
	metalTypes, err := s.repo.WithTx(tx).AllMetalTypes(ctx)
	if err != nil {
		return 0, err
	}
	typeBySlug := make(map[string]models.MetalType, len(metalTypes))
	for _, t := range metalTypes {
		typeBySlug[t.Slug] = t
	}

	var rowErrs []RowError
	seenSlugs := map[string]int{}
	out := make([]models.MetalPurity, 0, len(rows))

	for i, record := range rows {
		rowNum := i + 2
		typeSlug := cell(record, columns["metal_type_slug"])
		name := cell(record, columns["name"])
		slug := cell(record, columns["slug"])
		if name == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "name", Message: "name is required"})
		}
		if slug == "" {
			slug = Slugify(name)
		}
		if slug == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "slug", Message: "slug is required"})
		} else if prev, dup := seenSlugs[slug]; dup {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "slug", Message: fmt.Sprintf("duplicate slug %q (also on row %d)", slug, prev)})
		} else {
			seenSlugs[slug] = rowNum
		}

		metalType, ok := typeBySlug[typeSlug]
		if !ok {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "metal_type_slug", Message: fmt.Sprintf("unknown metal type %q", typeSlug)})
		}

		fineness, err := decimal.NewFromString(cell(record, columns["fineness"]))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "fineness", Message: "fineness must be a decimal number"})
		} else if fineness.LessThanOrEqual(decimal.Zero) || fineness.GreaterThan(decimal.NewFromInt(100)) {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "fineness", Message: "fineness must be between 0 and 100"})
		}

		active, err := parseBoolCell(cell(record, columns["is_active"]))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "is_active", Message: err.Error()})
		}

		out = append(out, models.MetalPurity{
			MetalTypeID: metalType.ID,
			Name:        name,
			Slug:        slug,
			Fineness:    fineness,
			IsActive:    active,
		})
	}

	if len(rowErrs) > 0 {
		return 0, rowValidationError(rowErrs)
	}
	if err := ReplaceAll(ctx, tx, out); err != nil {
		return 0, err
	}
	return len(out), nil
}

func applyGemstoneImport(ctx context.Context, tx *gorm.DB, columns map[string]int, rows [][]string) (int, error) {
	var rowErrs []RowError
	seenSlugs := map[string]int{}
	out := make([]models.GemstoneType, 0, len(rows))

	for i, record := range rows {
		rowNum := i + 2
		name := cell(record, columns["name"])
		slug := cell(record, columns["slug"])
		if name == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "name", Message: "name is required"})
		}
		if slug == "" {
			slug = Slugify(name)
		}
		if slug == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "slug", Message: "slug is required"})
		} else if prev, dup := seenSlugs[slug]; dup {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "slug", Message: fmt.Sprintf("duplicate slug %q (also on row %d)", slug, prev)})
		} else {
			seenSlugs[slug] = rowNum
		}

		var shapes []string
		if raw := cell(record, columns["shapes"]); raw != "" {
			for _, shape := range strings.Split(raw, shapeSeparator) {
				if trimmed := strings.TrimSpace(shape); trimmed != "" {
					shapes = append(shapes, trimmed)
				}
			}
		}

		active, err := parseBoolCell(cell(record, columns["is_active"]))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "is_active", Message: err.Error()})
		}
		out = append(out, models.GemstoneType{Name: name, Slug: slug, Shapes: shapes, IsActive: active})
	}

	if len(rowErrs) > 0 {
		return 0, rowValidationError(rowErrs)
	}
	if err := ReplaceAll(ctx, tx, out); err != nil {
		return 0, err
	}
	return len(out), nil
}

func applyClarityColorImport(ctx context.Context, tx *gorm.DB, columns map[string]int, rows [][]string) (int, error) {
	var rowErrs []RowError
	seenSlugs := map[string]int{}
	out := make([]models.DiamondClarityColor, 0, len(rows))

	for i, record := range rows {
		rowNum := i + 2
		clarity := cell(record, columns["clarity"])
		color := cell(record, columns["color"])
		slug := cell(record, columns["slug"])
		if clarity == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "clarity", Message: "clarity is required"})
		}
		if color == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "color", Message: "color is required"})
		}
		if slug == "" {
			slug = Slugify(clarity + " " + color)
		}
		if slug == "" {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "slug", Message: "slug is required"})
		} else if prev, dup := seenSlugs[slug]; dup {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "slug", Message: fmt.Sprintf("duplicate slug %q (also on row %d)", slug, prev)})
		} else {
			seenSlugs[slug] = rowNum
		}

		active, err := parseBoolCell(cell(record, columns["is_active"]))
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowNum, Field: "is_active", Message: err.Error()})
		}
		out = append(out, models.DiamondClarityColor{Clarity: clarity, Color: color, Slug: slug, IsActive: active})
	}

	if len(rowErrs) > 0 {
		return 0, rowValidationError(rowErrs)
	}
	if err := ReplaceAll(ctx, tx, out); err != nil {
		return 0, err
	}
	return len(out), nil
}

func rowValidationError(rowErrs []RowError) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "csv rows failed validation").
		WithDetails(map[string]any{"rowErrors": rowErrs})
}

func cell(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func parseBoolCell(raw string) (bool, error) {
	if raw == "" {
		return true, nil
	}
	value, err := strconv.ParseBool(strings.ToLower(raw))
	if err != nil {
		return false, fmt.Errorf("is_active must be true or false")
	}
	return value, nil
}
