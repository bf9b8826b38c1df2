package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmeshcher/flora-console/internal/calendar"
	"github.com/mmeshcher/flora-console/internal/model"
)

// ReportRange задаёт период отчёта. BranchID 0 означает все филиалы.
type ReportRange struct {
	Start    calendar.Date
	End      calendar.Date
	BranchID int64
}

func (r ReportRange) query() url.Values {
	q := url.Values{}
	q.Set("start", r.Start.String())
	q.Set("end", r.End.String())
	if r.BranchID > 0 {
		q.Set("branchId", strconv.FormatInt(r.BranchID, 10))
	}
	return q
}

// GeneralReport возвращает сводный отчёт за период.
func (c *Client) GeneralReport(ctx context.Context, r ReportRange) (*model.GeneralReport, error) {
	var rep model.GeneralReport
	if err := c.do(ctx, http.MethodGet, "/reports/general", r.query(), nil, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// DailyIncomeReport возвращает доход по дням периода.
func (c *Client) DailyIncomeReport(ctx context.Context, r ReportRange) ([]model.DailyIncome, error) {
	var days []model.DailyIncome
	if err := c.do(ctx, http.MethodGet, "/reports/daily-income", r.query(), nil, &days); err != nil {
		return nil, err
	}
	return days, nil
}
