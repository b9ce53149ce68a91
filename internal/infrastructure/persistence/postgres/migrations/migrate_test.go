package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/schema"
)

func TestModelsHaveDistinctTables(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Models() {
		tabler, ok := m.(schema.Tabler)
		if !assert.True(t, ok, "%T must name its table", m) {
			continue
		}
		assert.False(t, seen[tabler.TableName()], "duplicate table %s", tabler.TableName())
		seen[tabler.TableName()] = true
	}
	assert.Len(t, seen, 3)
	assert.NotContains(t, seen, MigrationRecord{}.TableName())
}
