package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/FirmAdmin/internal/models"
	"github.com/atinyakov/FirmAdmin/internal/service"
)

var firmColumns = []string{
	"id", "hard_version", "version_name", "version_format", "version_type", "finger_level", "url", "desc",
	"update_time", "rely_version_type", "min", "max", "des_en", "des_ko", "des_sp",
}

func setupFirmMock(t *testing.T) (*PostgresFirmRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresFirmRepository(db), mock
}

func TestListFirms(t *testing.T) {
	repo, mock := setupFirmMock(t)

	newer := time.Unix(1700000200, 0).UTC()
	older := time.Unix(1700000100, 0).UTC()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM firm ORDER BY update_time DESC`)).
		WillReturnRows(sqlmock.NewRows(firmColumns).
			AddRow(2, 3, "1.1", "bin", 1, 0, "https://x/2", "", newer, int64(4), "1.0", "2.0", "en", "ko", "sp").
			AddRow(1, 3, "1.0", "bin", 1, 0, "https://x/1", "", older, nil, nil, nil, "", "", ""))

	got, err := repo.ListFirms(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, int64(1700000200), got[0].UpdateTime)
	require.NotNil(t, got[0].RelyVersionType)
	assert.Equal(t, 4, *got[0].RelyVersionType)
	require.NotNil(t, got[0].Min)
	assert.Equal(t, "1.0", *got[0].Min)
	require.NotNil(t, got[0].Max)
	assert.Equal(t, "2.0", *got[0].Max)
	assert.Equal(t, "sp", got[0].DesSp)

	assert.Nil(t, got[1].RelyVersionType)
	assert.Nil(t, got[1].Min)
	assert.Nil(t, got[1].Max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFirmsByHardVersion(t *testing.T) {
	repo, mock := setupFirmMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM firm WHERE hard_version = $1 ORDER BY update_time DESC`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(firmColumns))

	got, err := repo.ListFirmsByHardVersion(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddFirm(t *testing.T) {
	repo, mock := setupFirmMock(t)
	minVer := "1.0"
	in := models.FirmInput{
		HardVersion: 3, VersionName: "1.2", VersionFormat: "bin", VersionType: 1, FingerLevel: 2,
		URL: "https://x/fw", Desc: "d", UpdateTime: 1700000000, Min: &minVer, DesEn: "en",
	}
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO firm (hard_version, version_name`)).
		WithArgs(3, "1.2", "bin", 1, 2, "https://x/fw", "d", time.Unix(1700000000, 0).UTC(), nil, "1.0", nil, "en", "", "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.AddFirm(context.Background(), in))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFirm(t *testing.T) {
	repo, mock := setupFirmMock(t)
	rely := 2
	firm := models.Firm{ID: 9, FirmInput: models.FirmInput{HardVersion: 1, UpdateTime: 1700000000, RelyVersionType: &rely}}
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE firm SET hard_version = $1`)).
		WithArgs(1, "", "", 0, 0, "", "", time.Unix(1700000000, 0).UTC(), 2, nil, nil, "", "", "", 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateFirm(context.Background(), firm)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFirm(t *testing.T) {
	repo, mock := setupFirmMock(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM firm WHERE id = $1`)).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteFirm(context.Background(), 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}
