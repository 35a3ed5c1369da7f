package cmd

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tuanngo/material-management/internal/material"
)

var (
	migrateLegacyCmd = &cobra.Command{
		RunE:  runLegacyMigration,
		Use:   "migrate-legacy",
		Short: "Port the legacy one-file-per-material table into the JSON file-list schema",
		Long: `Copy rows from the legacy materials_old table, where every material carried
exactly one file in the file_type/file_path/file_name columns, into the current
materials table where a material holds an ordered JSON list of files. Runs only
when materials_old exists and materials is still empty.`,
	}
	dropOldTable bool
)

func init() {
	migrateLegacyCmd.Flags().BoolVar(&dropOldTable, "drop-old", false, "drop the legacy table after a successful port")
}

type legacyMaterial struct {
	ID           int64
	Title        string
	Subject      string
	Topic        sql.NullString
	DepartmentID int64
	UploaderID   int64
	FileType     string
	FilePath     string
	FileName     string
	CreatedAt    sql.NullTime
}

func runLegacyMigration(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}
	defer db.Close()

	var legacyExists bool
	err = db.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'materials_old')").
		Scan(&legacyExists)
	if err != nil {
		return fmt.Errorf("check legacy table: %w", err)
	}
	if !legacyExists {
		fmt.Println("no materials_old table found; nothing to migrate")
		return nil
	}

	var existing int64
	if err := db.QueryRow("SELECT COUNT(*) FROM materials").Scan(&existing); err != nil {
		return fmt.Errorf("count materials: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("materials table already holds %d rows; refusing to migrate twice", existing)
	}

	rows, err := db.Query(
		"SELECT id, title, subject, topic, department_id, uploader_id, file_type, file_path, file_name, created_at FROM materials_old ORDER BY id")
	if err != nil {
		return fmt.Errorf("read legacy rows: %w", err)
	}
	defer rows.Close()

	var legacy []legacyMaterial
	for rows.Next() {
		var m legacyMaterial
		if err := rows.Scan(&m.ID, &m.Title, &m.Subject, &m.Topic, &m.DepartmentID, &m.UploaderID,
			&m.FileType, &m.FilePath, &m.FileName, &m.CreatedAt); err != nil {
			return fmt.Errorf("scan legacy row: %w", err)
		}
		legacy = append(legacy, m)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate legacy rows: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	ported := 0
	for _, m := range legacy {
		files, err := json.Marshal([]material.FileDescriptor{{
			Category: m.FileType,
			Path:     m.FilePath,
			Name:     m.FileName,
		}})
		if err != nil {
			return fmt.Errorf("encode files for legacy material %d: %w", m.ID, err)
		}

		_, err = tx.Exec(
			"INSERT INTO materials (title, subject, topic, department_id, uploader_id, files, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()), COALESCE($7, now()))",
			m.Title, m.Subject, m.Topic, m.DepartmentID, m.UploaderID, files, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert material from legacy row %d: %w", m.ID, err)
		}
		ported++
	}

	if dropOldTable {
		if _, err := tx.Exec("DROP TABLE materials_old"); err != nil {
			return fmt.Errorf("drop legacy table: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	fmt.Printf("ported %d legacy materials\n", ported)
	if dropOldTable {
		fmt.Println("dropped materials_old")
	}
	return nil
}
