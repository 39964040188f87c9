package services

import (
	"context"
	"fmt"
	"strings"

	"rating-system/internal/authz"
	"rating-system/internal/entities"
	"rating-system/internal/repositories"
	apperrors "rating-system/pkg/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const reportBatchSize = 500

type ReportServiceInterface interface {
	BuildTitlesReport(ctx context.Context) ([]byte, error)
}

type ReportService struct {
	titleRepo repositories.TitleRepositoryInterface
	logger    *zap.Logger
}

func NewReportService(titleRepo repositories.TitleRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{titleRepo: titleRepo, logger: logger}
}

// BuildTitlesReport выгружает весь каталог в xlsx. Только для админа.
func (s *ReportService) BuildTitlesReport(ctx context.Context) ([]byte, error) {
	actor := actorFromContext(ctx)
	if !authz.Can(actor, authz.ActionRetrieve, authz.ResourceReport, 0) {
		return nil, apperrors.ErrForbidden
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Произведения"
	file.SetSheetName("Sheet1", sheet)

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("стиль заголовка отчёта: %w", err)
	}

	headers := []interface{}{"ID", "Название", "Год", "Категория", "Жанры", "Рейтинг", "Описание"}
	if err := file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	if err := file.SetCellStyle(sheet, "A1", "G1", headerStyle); err != nil {
		return nil, err
	}
	if err := file.SetColWidth(sheet, "B", "B", 40); err != nil {
		return nil, err
	}
	if err := file.SetColWidth(sheet, "D", "E", 25); err != nil {
		return nil, err
	}
	if err := file.SetColWidth(sheet, "G", "G", 60); err != nil {
		return nil, err
	}

	row := 2
	filter := repositories.TitleFilter{Limit: reportBatchSize}
	for {
		titles, total, err := s.titleRepo.GetTitles(ctx, filter)
		if err != nil {
			return nil, err
		}

		for i := range titles {
			cell := fmt.Sprintf("A%d", row)
			if err := file.SetSheetRow(sheet, cell, titleReportRow(&titles[i])); err != nil {
				return nil, err
			}
			row++
		}

		filter.Offset += uint64(len(titles))
		if filter.Offset >= total || len(titles) == 0 {
			break
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("запись отчёта: %w", err)
	}

	s.logger.Info("отчёт по произведениям сформирован",
		zap.Int("rows", row-2), zap.Uint64("adminID", actor.ID))

	return buf.Bytes(), nil
}

func titleReportRow(t *entities.Title) *[]interface{} {
	var year interface{}
	if t.Year.Valid {
		year = t.Year.Int
	}

	var category string
	if t.Category != nil {
		category = t.Category.Name
	}

	genres := make([]string, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, g.Name)
	}

	var rating interface{}
	if t.Rating.Valid {
		rating = t.Rating.Int
	}

	return &[]interface{}{t.ID, t.Name, year, category, strings.Join(genres, ", "), rating, t.Description}
}
