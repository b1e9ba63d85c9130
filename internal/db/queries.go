package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"tenderscan/internal/errors"
	"tenderscan/internal/tender"
)

// Upsert inserts or replaces the record for a tender ID. Two documents
// resolving to the same ID overwrite each other (last write wins); the
// original created_at is preserved on overwrite.
func Upsert(db *sql.DB, t *tender.Tender) error {
	now := time.Now().Unix()
	createdAt := t.CreatedAt
	if createdAt == 0 {
		createdAt = now
	}

	quantitiesJSON, err := toNullJSON(t.Quantities)
	if err != nil {
		return errors.NewInternal(err)
	}
	standardsJSON, err := toNullJSON(t.Standards)
	if err != nil {
		return errors.NewInternal(err)
	}
	itemsJSON, err := toNullJSON(t.ItemDescriptions)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO tenders (
			tender_id, source_file, project_name, ministry,
			delivery_deadline, warranty, voltage, quantities_json,
			standards_json, item_descriptions_json, technical_specs,
			spec_count, run_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tender_id) DO UPDATE SET
			source_file = excluded.source_file,
			project_name = excluded.project_name,
			ministry = excluded.ministry,
			delivery_deadline = excluded.delivery_deadline,
			warranty = excluded.warranty,
			voltage = excluded.voltage,
			quantities_json = excluded.quantities_json,
			standards_json = excluded.standards_json,
			item_descriptions_json = excluded.item_descriptions_json,
			technical_specs = excluded.technical_specs,
			spec_count = excluded.spec_count,
			run_id = excluded.run_id,
			updated_at = excluded.updated_at
	`

	_, err = db.Exec(query,
		t.TenderID, toNullString(t.SourceFile), toNullString(t.ProjectName),
		toNullString(t.Ministry), toNullString(t.DeliveryDeadline),
		toNullString(t.Warranty), toNullString(t.Voltage),
		quantitiesJSON, standardsJSON, itemsJSON,
		toNullString(t.TechnicalSpecs), t.SpecCount, toNullString(t.RunID),
		createdAt, now,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	t.CreatedAt = createdAt
	t.UpdatedAt = now
	return nil
}

// GetByID retrieves a tender record by its ID.
func GetByID(db *sql.DB, tenderID string) (*tender.Tender, error) {
	query := `
		SELECT tender_id, source_file, project_name, ministry,
			delivery_deadline, warranty, voltage, quantities_json,
			standards_json, item_descriptions_json, technical_specs,
			spec_count, run_id, created_at, updated_at
		FROM tenders
		WHERE tender_id = ?
	`

	t, err := scanTender(db.QueryRow(query, tenderID))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(tenderID)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return t, nil
}

// List returns tender records ordered by most recently updated.
func List(db *sql.DB, limit, offset int) ([]*tender.Tender, error) {
	query := `
		SELECT tender_id, source_file, project_name, ministry,
			delivery_deadline, warranty, voltage, quantities_json,
			standards_json, item_descriptions_json, technical_specs,
			spec_count, run_id, created_at, updated_at
		FROM tenders
		ORDER BY updated_at DESC, tender_id
		LIMIT ? OFFSET ?
	`

	rows, err := db.Query(query, limit, offset)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var result []*tender.Tender
	for rows.Next() {
		t, err := scanTenderRows(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return result, nil
}

// Count returns the total number of tender records.
func Count(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM tenders").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// Delete removes a tender record.
func Delete(db *sql.DB, tenderID string) error {
	result, err := db.Exec("DELETE FROM tenders WHERE tender_id = ?", tenderID)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(tenderID)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanTender(row *sql.Row) (*tender.Tender, error) {
	return scanFields(row)
}

func scanTenderRows(rows *sql.Rows) (*tender.Tender, error) {
	return scanFields(rows)
}

func scanFields(s scanner) (*tender.Tender, error) {
	var (
		t                tender.Tender
		sourceFile       sql.NullString
		projectName      sql.NullString
		ministry         sql.NullString
		deliveryDeadline sql.NullString
		warranty         sql.NullString
		voltage          sql.NullString
		quantitiesJSON   sql.NullString
		standardsJSON    sql.NullString
		itemsJSON        sql.NullString
		technicalSpecs   sql.NullString
		runID            sql.NullString
	)

	err := s.Scan(
		&t.TenderID, &sourceFile, &projectName, &ministry,
		&deliveryDeadline, &warranty, &voltage, &quantitiesJSON,
		&standardsJSON, &itemsJSON, &technicalSpecs,
		&t.SpecCount, &runID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.SourceFile = sourceFile.String
	t.ProjectName = projectName.String
	t.Ministry = ministry.String
	t.DeliveryDeadline = deliveryDeadline.String
	t.Warranty = warranty.String
	t.Voltage = voltage.String
	t.TechnicalSpecs = technicalSpecs.String
	t.RunID = runID.String

	if err := fromNullJSON(quantitiesJSON, &t.Quantities); err != nil {
		return nil, err
	}
	if err := fromNullJSON(standardsJSON, &t.Standards); err != nil {
		return nil, err
	}
	if err := fromNullJSON(itemsJSON, &t.ItemDescriptions); err != nil {
		return nil, err
	}

	return &t, nil
}

// toNullJSON marshals a slice for storage; empty slices become SQL NULL.
func toNullJSON(v []string) (sql.NullString, error) {
	if len(v) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func fromNullJSON(ns sql.NullString, dest *[]string) error {
	if !ns.Valid {
		return nil
	}
	return json.Unmarshal([]byte(ns.String), dest)
}

// toNullString converts an empty string to SQL NULL.
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
