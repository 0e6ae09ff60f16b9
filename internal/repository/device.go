package repository

import (
	"context"
	"database/sql"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// PostgresDeviceRepository stores the hardware catalog (device_type) and
// the software catalog (version_type).
type PostgresDeviceRepository struct {
	DB *sql.DB
}

// NewPostgresDeviceRepository creates a new PostgresDeviceRepository using the provided *sql.DB.
func NewPostgresDeviceRepository(db *sql.DB) *PostgresDeviceRepository {
	return &PostgresDeviceRepository{DB: db}
}

// ListDeviceHard returns every hardware type ordered by id.
func (r *PostgresDeviceRepository) ListDeviceHard(ctx context.Context) ([]models.DeviceHard, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, hard_version, name, category, has_ble, has_finger, has_stm32, "desc"
		FROM device_type ORDER BY id
	`)
	if err != nil {
		return nil, translate("ListDeviceHard", err)
	}
	defer rows.Close()

	var devices []models.DeviceHard
	for rows.Next() {
		var (
			d        models.DeviceHard
			category int
		)
		if err := rows.Scan(&d.ID, &d.HardVersion, &d.Name, &category, &d.HasBLE, &d.HasFinger, &d.HasSTM32, &d.Desc); err != nil {
			return nil, translate("scan", err)
		}
		d.Category = models.CategoryFromCode(category)
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("ListDeviceHard", err)
	}
	return devices, nil
}

// AddDeviceHard inserts a hardware type.
func (r *PostgresDeviceRepository) AddDeviceHard(ctx context.Context, in models.DeviceHardInput) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO device_type (hard_version, name, category, has_ble, has_finger, has_stm32, "desc")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, in.HardVersion, in.Name, in.Category.Code(), in.HasBLE, in.HasFinger, in.HasSTM32, in.Desc)
	if err != nil {
		return translate("AddDeviceHard", err)
	}
	return nil
}

// UpdateDeviceHard overwrites the hardware type with hard.ID.
func (r *PostgresDeviceRepository) UpdateDeviceHard(ctx context.Context, hard models.DeviceHard) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE device_type
		SET hard_version = $1, name = $2, category = $3, has_ble = $4, has_finger = $5, has_stm32 = $6, "desc" = $7
		WHERE id = $8
	`, hard.HardVersion, hard.Name, hard.Category.Code(), hard.HasBLE, hard.HasFinger, hard.HasSTM32, hard.Desc, hard.ID)
	if err != nil {
		return translate("UpdateDeviceHard", err)
	}
	return affected("UpdateDeviceHard", res)
}

// ListDeviceSoft returns every software type ordered by id.
func (r *PostgresDeviceRepository) ListDeviceSoft(ctx context.Context) ([]models.DeviceSoft, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM version_type ORDER BY id`)
	if err != nil {
		return nil, translate("ListDeviceSoft", err)
	}
	defer rows.Close()

	var types []models.DeviceSoft
	for rows.Next() {
		var s models.DeviceSoft
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, translate("scan", err)
		}
		types = append(types, s)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("ListDeviceSoft", err)
	}
	return types, nil
}

// AddDeviceSoft inserts a software type.
func (r *PostgresDeviceRepository) AddDeviceSoft(ctx context.Context, in models.DeviceSoftInput) error {
	if _, err := r.DB.ExecContext(ctx, `INSERT INTO version_type (name) VALUES ($1)`, in.Name); err != nil {
		return translate("AddDeviceSoft", err)
	}
	return nil
}

// UpdateDeviceSoft renames the software type with soft.ID.
func (r *PostgresDeviceRepository) UpdateDeviceSoft(ctx context.Context, soft models.DeviceSoft) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE version_type SET name = $1 WHERE id = $2`, soft.Name, soft.ID)
	if err != nil {
		return translate("UpdateDeviceSoft", err)
	}
	return affected("UpdateDeviceSoft", res)
}
