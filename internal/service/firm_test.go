package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

type mockFirmRepo struct {
	ListFunc       func(ctx context.Context) ([]models.Firm, error)
	ListByHardFunc func(ctx context.Context, hardVersion int) ([]models.Firm, error)
	AddFunc        func(ctx context.Context, in models.FirmInput) error
	UpdateFunc     func(ctx context.Context, firm models.Firm) error
	DeleteFunc     func(ctx context.Context, id int) error
}

func (m *mockFirmRepo) ListFirms(ctx context.Context) ([]models.Firm, error) {
	return m.ListFunc(ctx)
}
func (m *mockFirmRepo) ListFirmsByHardVersion(ctx context.Context, hardVersion int) ([]models.Firm, error) {
	return m.ListByHardFunc(ctx, hardVersion)
}
func (m *mockFirmRepo) AddFirm(ctx context.Context, in models.FirmInput) error {
	return m.AddFunc(ctx, in)
}
func (m *mockFirmRepo) UpdateFirm(ctx context.Context, firm models.Firm) error {
	return m.UpdateFunc(ctx, firm)
}
func (m *mockFirmRepo) DeleteFirm(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

func ptr[T any](v T) *T { return &v }

func TestFirm_Lists(t *testing.T) {
	firms := []models.Firm{{ID: 2}, {ID: 1}}
	var gotHard int
	svc := NewFirmService(&mockFirmRepo{
		ListFunc: func(context.Context) ([]models.Firm, error) { return firms, nil },
		ListByHardFunc: func(_ context.Context, hv int) ([]models.Firm, error) {
			gotHard = hv
			return nil, nil
		},
	})

	all, err := svc.ListFirms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, firms, all)

	forDevice, err := svc.ListFirmsForDevice(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, gotHard)
	assert.NotNil(t, forDevice)
	assert.Empty(t, forDevice)
}

func TestFirm_ListError(t *testing.T) {
	wantErr := errors.New("db down")
	svc := NewFirmService(&mockFirmRepo{
		ListFunc: func(context.Context) ([]models.Firm, error) { return nil, wantErr },
	})
	got, err := svc.ListFirms(context.Background())
	assert.ErrorIs(t, err, wantErr)
	assert.Nil(t, got)
}

func TestFirm_AddNormalizes(t *testing.T) {
	tests := []struct {
		name    string
		in      models.FirmInput
		wantMax *string
	}{
		{"dangling max dropped", models.FirmInput{Max: ptr("2.0")}, nil},
		{"kept with min", models.FirmInput{Min: ptr("1.0"), Max: ptr("2.0")}, ptr("2.0")},
		{"kept with rely type", models.FirmInput{RelyVersionType: ptr(1), Max: ptr("2.0")}, ptr("2.0")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stored models.FirmInput
			svc := NewFirmService(&mockFirmRepo{
				AddFunc: func(_ context.Context, in models.FirmInput) error { stored = in; return nil },
			})
			require.NoError(t, svc.AddFirm(context.Background(), tt.in))
			assert.Equal(t, tt.wantMax, stored.Max)
		})
	}
}

func TestFirm_UpdateAndDelete(t *testing.T) {
	var (
		updated   models.Firm
		deletedID int
	)
	svc := NewFirmService(&mockFirmRepo{
		UpdateFunc: func(_ context.Context, f models.Firm) error { updated = f; return nil },
		DeleteFunc: func(_ context.Context, id int) error { deletedID = id; return ErrNotFound },
	})

	require.NoError(t, svc.UpdateFirm(context.Background(), models.Firm{ID: 5, FirmInput: models.FirmInput{Max: ptr("3")}}))
	assert.Equal(t, 5, updated.ID)
	assert.Nil(t, updated.Max)

	err := svc.DeleteFirm(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 42, deletedID)
}
