package service

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/flora-console/internal/api"
	"github.com/mmeshcher/flora-console/internal/calendar"
	"github.com/mmeshcher/flora-console/internal/model"
	"github.com/mmeshcher/flora-console/internal/report"
)

// DefaultReportDays задаёт длину периода отчёта по умолчанию, включая сегодня.
const DefaultReportDays = 30

// Reports содержит данные страницы отчётов.
type Reports struct {
	Start    calendar.Date       `json:"start"`
	End      calendar.Date       `json:"end"`
	BranchID int64               `json:"branch_id,omitempty"`
	General  model.GeneralReport `json:"general"`
	Daily    []model.DailyIncome `json:"daily"`
}

// ReportRange дополняет незаданные границы периода: по умолчанию последние 30 дней.
func (s *Service) ReportRange(start, end calendar.Date, branchID int64) (api.ReportRange, error) {
	if end.IsZero() {
		end = calendar.DateOf(s.now(), s.loc)
	}
	if start.IsZero() {
		start = end.AddDays(-(DefaultReportDays - 1))
	}
	if start.After(end) {
		return api.ReportRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}
	return api.ReportRange{Start: start, End: end, BranchID: branchID}, nil
}

// Reports загружает сводный и дневной отчёты параллельно.
func (s *Service) Reports(ctx context.Context, r api.ReportRange) (*Reports, error) {
	res := &Reports{Start: r.Start, End: r.End, BranchID: r.BranchID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		general, err := s.api.GeneralReport(gctx, r)
		if err != nil {
			return err
		}
		res.General = *general
		return nil
	})
	g.Go(func() error {
		daily, err := s.api.DailyIncomeReport(gctx, r)
		res.Daily = daily
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// ExportReports выгружает отчёты периода в книгу xlsx.
func (s *Service) ExportReports(ctx context.Context, r api.ReportRange, w io.Writer) error {
	rep, err := s.Reports(ctx, r)
	if err != nil {
		return err
	}
	return report.WriteWorkbook(w, report.Data{
		Start:   rep.Start,
		End:     rep.End,
		General: rep.General,
		Daily:   rep.Daily,
	})
}
