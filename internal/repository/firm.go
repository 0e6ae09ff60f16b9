package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// PostgresFirmRepository stores firmware releases in the firm table.
type PostgresFirmRepository struct {
	DB *sql.DB
}

// NewPostgresFirmRepository creates a new PostgresFirmRepository using the provided *sql.DB.
func NewPostgresFirmRepository(db *sql.DB) *PostgresFirmRepository {
	return &PostgresFirmRepository{DB: db}
}

const selectFirm = `
	SELECT id, hard_version, version_name, version_format, version_type, finger_level, url, "desc",
		update_time, rely_version_type, min, max, des_en, des_ko, des_sp
	FROM firm`

// ListFirms returns every release, newest first.
func (r *PostgresFirmRepository) ListFirms(ctx context.Context) ([]models.Firm, error) {
	rows, err := r.DB.QueryContext(ctx, selectFirm+` ORDER BY update_time DESC`)
	if err != nil {
		return nil, translate("ListFirms", err)
	}
	return scanFirms(rows, "ListFirms")
}

// ListFirmsByHardVersion returns the releases of one hardware type, newest first.
func (r *PostgresFirmRepository) ListFirmsByHardVersion(ctx context.Context, hardVersion int) ([]models.Firm, error) {
	rows, err := r.DB.QueryContext(ctx, selectFirm+` WHERE hard_version = $1 ORDER BY update_time DESC`, hardVersion)
	if err != nil {
		return nil, translate("ListFirmsByHardVersion", err)
	}
	return scanFirms(rows, "ListFirmsByHardVersion")
}

func scanFirms(rows *sql.Rows, op string) ([]models.Firm, error) {
	defer rows.Close()

	var firms []models.Firm
	for rows.Next() {
		var (
			f          models.Firm
			updateTime time.Time
			rely       sql.NullInt64
			minVer     sql.NullString
			maxVer     sql.NullString
		)
		if err := rows.Scan(
			&f.ID, &f.HardVersion, &f.VersionName, &f.VersionFormat, &f.VersionType, &f.FingerLevel, &f.URL, &f.Desc,
			&updateTime, &rely, &minVer, &maxVer, &f.DesEn, &f.DesKo, &f.DesSp,
		); err != nil {
			return nil, translate("scan", err)
		}
		f.UpdateTime = updateTime.Unix()
		if rely.Valid {
			v := int(rely.Int64)
			f.RelyVersionType = &v
		}
		if minVer.Valid {
			f.Min = &minVer.String
		}
		if maxVer.Valid {
			f.Max = &maxVer.String
		}
		firms = append(firms, f)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(op, err)
	}
	return firms, nil
}

// AddFirm inserts a release.
func (r *PostgresFirmRepository) AddFirm(ctx context.Context, in models.FirmInput) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO firm (hard_version, version_name, version_format, version_type, finger_level, url, "desc",
			update_time, rely_version_type, min, max, des_en, des_ko, des_sp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, firmArgs(in)...)
	if err != nil {
		return translate("AddFirm", err)
	}
	return nil
}

// UpdateFirm overwrites the release with firm.ID.
func (r *PostgresFirmRepository) UpdateFirm(ctx context.Context, firm models.Firm) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE firm SET hard_version = $1, version_name = $2, version_format = $3, version_type = $4,
			finger_level = $5, url = $6, "desc" = $7, update_time = $8, rely_version_type = $9,
			min = $10, max = $11, des_en = $12, des_ko = $13, des_sp = $14
		WHERE id = $15
	`, append(firmArgs(firm.FirmInput), firm.ID)...)
	if err != nil {
		return translate("UpdateFirm", err)
	}
	return affected("UpdateFirm", res)
}

// DeleteFirm removes the release with id.
func (r *PostgresFirmRepository) DeleteFirm(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM firm WHERE id = $1`, id)
	if err != nil {
		return translate("DeleteFirm", err)
	}
	return affected("DeleteFirm", res)
}

func firmArgs(in models.FirmInput) []any {
	return []any{
		in.HardVersion, in.VersionName, in.VersionFormat, in.VersionType, in.FingerLevel, in.URL, in.Desc,
		time.Unix(in.UpdateTime, 0).UTC(), in.RelyVersionType, in.Min, in.Max, in.DesEn, in.DesKo, in.DesSp,
	}
}
