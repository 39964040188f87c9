package services

import (
	"bytes"
	"testing"

	"rating-system/internal/entities"
	apperrors "rating-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestBuildTitlesReportAdminOnly(t *testing.T) {
	svc := NewReportService(newMockTitleRepo(), zap.NewNop())

	_, err := svc.BuildTitlesReport(anonymousCtx())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.BuildTitlesReport(ctxFor(20, entities.RoleModerator))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestBuildTitlesReport(t *testing.T) {
	titleRepo := newMockTitleRepo()
	titleRepo.addTitle("Дюна")
	titleRepo.addTitle("Солярис")
	svc := NewReportService(titleRepo, zap.NewNop())

	data, err := svc.BuildTitlesReport(ctxFor(30, entities.RoleAdmin))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Произведения")
	require.NoError(t, err)
	require.Len(t, rows, 3) // заголовок + два произведения
	assert.Equal(t, "ID", rows[0][0])
}
