package report

import "errors"

var (
	ErrMonthYearRequired      = errors.New("please select month and year")
	ErrCompanyRequired        = errors.New("company is required")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
