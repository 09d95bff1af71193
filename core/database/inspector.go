package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo is one live column of a table, lower-cased.
type ColumnInfo struct {
	Field string
	Type  string
}

// GetTableColumns lists the columns of tableName as the database reports
// them. SQLite returns no columns for a missing table; MySQL fails.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var (
		columns []ColumnInfo
		err     error
	)
	if db.Dialector.Name() == DriverSQLite {
		columns, err = sqliteColumns(db, tableName)
	} else {
		err = db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}

	for i := range columns {
		columns[i].Field = strings.ToLower(columns[i].Field)
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

func sqliteColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var rows []struct {
		Name string
		Type string
	}
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	columns := make([]ColumnInfo, 0, len(rows))
	for _, r := range rows {
		columns = append(columns, ColumnInfo{Field: r.Name, Type: r.Type})
	}
	return columns, nil
}

// MissingColumns returns the expected columns absent from tableName, in
// the order given. A missing SQLite table reports every expected column.
func MissingColumns(db *gorm.DB, tableName string, expected []string) ([]string, error) {
	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col.Field] = true
	}

	missing := []string{}
	for _, name := range expected {
		if !present[strings.ToLower(name)] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
