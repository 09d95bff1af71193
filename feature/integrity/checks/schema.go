package checks

import (
	"fmt"
	"sort"

	"booktracker/core/database"
	"booktracker/core/models"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema integrity check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the database schema using the GORM models as the source of truth.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models.All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		missing, err := database.MissingColumns(db, table, stmt.Schema.DBNames)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: missing, Status: "ok"}
		if len(missing) > 0 {
			sort.Strings(tbl.MissingColumns)
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}
