package infrastructure

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"gearguard-backend/models"

	"github.com/tidwall/gjson"
)

//go:embed table_schema.json
var tablesSchema []byte

// GetTable returns the definition of a logical table with the physical name from cfg
func GetTable(cfg *models.Config, name string) (models.TableDefinition, error) {
	tableJSON := gjson.GetBytes(tablesSchema, gjson.Escape(name))
	if !tableJSON.Exists() {
		return models.TableDefinition{}, fmt.Errorf("table schema not found for key: %s", name)
	}

	var def models.TableDefinition
	if err := json.Unmarshal([]byte(tableJSON.Raw), &def); err != nil {
		return models.TableDefinition{}, fmt.Errorf("failed to unmarshal schema JSON: %w", err)
	}
	if def.HashKey == "" {
		def.HashKey = "id"
	}

	def.TableName = cfg.TableName(name)
	return def, nil
}

// TableNames lists every logical table in the embedded schema, sorted
func TableNames() []string {
	var names []string
	gjson.ParseBytes(tablesSchema).ForEach(func(key, _ gjson.Result) bool {
		names = append(names, key.String())
		return true
	})
	sort.Strings(names)
	return names
}

// Definitions resolves the requested tables, or every known table when names is empty
func Definitions(cfg *models.Config, names []string) ([]models.TableDefinition, error) {
	if len(names) == 0 {
		names = TableNames()
	}

	defs := make([]models.TableDefinition, 0, len(names))
	for _, name := range names {
		def, err := GetTable(cfg, name)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}
