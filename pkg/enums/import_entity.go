package enums

import "fmt"

// ImportEntity names the master-data families that support CSV import/export.
type ImportEntity string

const (
	ImportEntityMetalTypes          ImportEntity = "metal_types"
	ImportEntityMetalColors         ImportEntity = "metal_colors"
	ImportEntityMetalPurities       ImportEntity = "metal_purities"
	ImportEntityGemstoneTypes       ImportEntity = "gemstone_types"
	ImportEntityDiamondClarityColor ImportEntity = "diamond_clarity_colors"
)

var validImportEntities = []ImportEntity{
	ImportEntityMetalTypes,
	ImportEntityMetalColors,
	ImportEntityMetalPurities,
	ImportEntityGemstoneTypes,
	ImportEntityDiamondClarityColor,
}

// String implements fmt.Stringer.
func (e ImportEntity) String() string {
	return string(e)
}

// IsValid reports whether the entity is recognized.
func (e ImportEntity) IsValid() bool {
	for _, candidate := range validImportEntities {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseImportEntity converts a raw string into an ImportEntity.
func ParseImportEntity(value string) (ImportEntity, error) {
	for _, candidate := range validImportEntities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid import entity %q", value)
}
