package masterdata

import (
	"strings"
	"testing"

	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
)

func TestValidateHeader(t *testing.T) {
	t.Run("acceptsAnyColumnOrder", func(t *testing.T) {
		columns, err := validateHeader(enums.ImportEntityMetalTypes, []string{"slug", "is_active", "name"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if columns["name"] != 2 || columns["slug"] != 0 {
			t.Fatalf("unexpected column mapping %v", columns)
		}
	})

	t.Run("reportsMissingAndUnknown", func(t *testing.T) {
		_, err := validateHeader(enums.ImportEntityMetalTypes, []string{"name", "colour"})
		if err == nil {
			t.Fatal("expected header validation error")
		}
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation code, got %v", err)
		}
		details, ok := typed.Details().(map[string]any)
		if !ok {
			t.Fatalf("expected details map, got %T", typed.Details())
		}
		missing := details["missingColumns"].([]string)
		unknown := details["unknownColumns"].([]string)
		if len(missing) != 2 {
			t.Fatalf("expected slug and is_active missing, got %v", missing)
		}
		if len(unknown) != 1 || unknown[0] != "colour" {
			t.Fatalf("expected colour unknown, got %v", unknown)
		}
	})
}

func TestParseSimpleRows(t *testing.T) {
	columns := map[string]int{"name": 0, "slug": 1, "is_active": 2}

	t.Run("validRows", func(t *testing.T) {
		rows, rowErrs := parseSimpleRows(columns, [][]string{
			{"Gold", "gold", "true"},
			{"Silver", "", "false"},
		})
		if len(rowErrs) != 0 {
			t.Fatalf("unexpected row errors: %v", rowErrs)
		}
		if rows[1].slug != "silver" {
			t.Fatalf("expected derived slug, got %q", rows[1].slug)
		}
		if rows[0].isActive != true || rows[1].isActive != false {
			t.Fatalf("unexpected is_active parsing: %+v", rows)
		}
	})

	t.Run("collectsAllErrors", func(t *testing.T) {
		_, rowErrs := parseSimpleRows(columns, [][]string{
			{"", "", "yes please"},
			{"Gold", "gold", "true"},
			{"Gold Again", "gold", "true"},
		})
		if len(rowErrs) != 4 {
			t.Fatalf("expected 4 row errors, got %d: %v", len(rowErrs), rowErrs)
		}
		// rows are 1-based and the header is row 1
		if rowErrs[0].Row != 2 {
			t.Fatalf("expected first error on row 2, got %d", rowErrs[0].Row)
		}
		last := rowErrs[len(rowErrs)-1]
		if last.Row != 4 || last.Field != "slug" {
			t.Fatalf("expected duplicate slug error on row 4, got %+v", last)
		}
	})
}

func TestParseBoolCell(t *testing.T) {
	if value, err := parseBoolCell(""); err != nil || value != true {
		t.Fatalf("empty cell should default to true, got %v %v", value, err)
	}
	if value, err := parseBoolCell("FALSE"); err != nil || value != false {
		t.Fatalf("expected false, got %v %v", value, err)
	}
	if _, err := parseBoolCell("maybe"); err == nil {
		t.Fatal("expected error for non-boolean cell")
	}
}

func TestReadCSVMalformed(t *testing.T) {
	_, err := readCSV([]byte("name,slug\n\"unterminated"))
	if err == nil {
		t.Fatal("expected error for malformed csv")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestCSVHeaderSetsCoverAllImportEntities(t *testing.T) {
	for _, entity := range []enums.ImportEntity{
		enums.ImportEntityMetalTypes,
		enums.ImportEntityMetalColors,
		enums.ImportEntityMetalPurities,
		enums.ImportEntityGemstoneTypes,
		enums.ImportEntityDiamondClarityColor,
	} {
		header, ok := csvHeadersByEntity[entity]
		if !ok || len(header) == 0 {
			t.Errorf("no csv header defined for %s", entity)
		}
		for _, col := range header {
			if col != strings.ToLower(col) {
				t.Errorf("%s header column %q must be lowercase", entity, col)
			}
		}
	}
}
