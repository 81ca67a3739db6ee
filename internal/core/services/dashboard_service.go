package services

import (
	"context"
	"time"

	"langson-benefits/internal/adapters/persistence/repositories"
	"langson-benefits/internal/core/domain"
)

// DashboardService aggregates counters for the staff dashboards and reports
type DashboardService struct {
	appRepo       *repositories.ApplicationRepository
	payoutRepo    *repositories.PayoutRepository
	programRepo   *repositories.ProgramRepository
	userRepo      *repositories.UserRepository
	complaintRepo *repositories.ComplaintRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	appRepo *repositories.ApplicationRepository,
	payoutRepo *repositories.PayoutRepository,
	programRepo *repositories.ProgramRepository,
	userRepo *repositories.UserRepository,
	complaintRepo *repositories.ComplaintRepository,
) *DashboardService {
	return &DashboardService{
		appRepo:       appRepo,
		payoutRepo:    payoutRepo,
		programRepo:   programRepo,
		userRepo:      userRepo,
		complaintRepo: complaintRepo,
	}
}

// ApplicationCounters breaks applications down by lifecycle state
type ApplicationCounters struct {
	Total          int64 `json:"total"`
	Pending        int64 `json:"pending"`
	UnderReview    int64 `json:"under_review"`
	Approved       int64 `json:"approved"`
	Rejected       int64 `json:"rejected"`
	Paid           int64 `json:"paid"`
	AdditionalInfo int64 `json:"additional_info_required"`
}

// DashboardStats is the admin dashboard payload
type DashboardStats struct {
	Applications      ApplicationCounters `json:"applications"`
	ApprovedAmount    float64             `json:"approved_amount"`
	DisbursedAmount   float64             `json:"disbursed_amount"`
	ActivePrograms    int                 `json:"active_programs"`
	Citizens          int64               `json:"citizens"`
	PendingComplaints int64               `json:"pending_complaints"`
	CompletedBatches  int64               `json:"completed_batches"`
}

// Stats builds the admin dashboard counters
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	counters, err := s.applicationCounters(ctx)
	if err != nil {
		return nil, err
	}
	stats.Applications = *counters

	if stats.ApprovedAmount, err = s.appRepo.SumSupportAmount(ctx, string(domain.StatusApproved)); err != nil {
		return nil, err
	}
	if stats.DisbursedAmount, err = s.payoutRepo.SumCompletedAmount(ctx); err != nil {
		return nil, err
	}
	if stats.CompletedBatches, err = s.payoutRepo.CountByStatus(ctx, domain.PayoutStatusCompleted); err != nil {
		return nil, err
	}
	if stats.Citizens, err = s.userRepo.CountByRole(ctx, string(domain.RoleCitizen)); err != nil {
		return nil, err
	}
	if stats.PendingComplaints, err = s.complaintRepo.CountByStatus(ctx, domain.ComplaintStatusPending); err != nil {
		return nil, err
	}

	active, err := s.programRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	stats.ActivePrograms = len(active)

	return stats, nil
}

// OfficerStats is the review queue payload for officers
type OfficerStats struct {
	Queue             ApplicationCounters `json:"queue"`
	PendingComplaints int64               `json:"pending_complaints"`
}

// OfficerStats builds the officer work queue counters
func (s *DashboardService) OfficerStats(ctx context.Context) (*OfficerStats, error) {
	counters, err := s.applicationCounters(ctx)
	if err != nil {
		return nil, err
	}

	pendingComplaints, err := s.complaintRepo.CountByStatus(ctx, domain.ComplaintStatusPending)
	if err != nil {
		return nil, err
	}

	return &OfficerStats{
		Queue:             *counters,
		PendingComplaints: pendingComplaints,
	}, nil
}

func (s *DashboardService) applicationCounters(ctx context.Context) (*ApplicationCounters, error) {
	c := &ApplicationCounters{}

	counts := []struct {
		dst    *int64
		status []string
	}{
		{&c.Total, nil},
		{&c.Pending, []string{string(domain.StatusPending)}},
		{&c.UnderReview, []string{string(domain.StatusUnderReview)}},
		{&c.Approved, []string{string(domain.StatusApproved)}},
		{&c.Rejected, []string{string(domain.StatusRejected)}},
		{&c.Paid, []string{string(domain.StatusPaid)}},
		{&c.AdditionalInfo, []string{string(domain.StatusAdditionalInfo)}},
	}
	for _, count := range counts {
		n, err := s.appRepo.CountByStatus(ctx, count.status...)
		if err != nil {
			return nil, err
		}
		*count.dst = n
	}
	return c, nil
}

// MonthlyReportRow is one month of the yearly report
type MonthlyReportRow struct {
	Month          int     `json:"month"`
	Total          int64   `json:"total"`
	Approved       int64   `json:"approved"`
	Rejected       int64   `json:"rejected"`
	Paid           int64   `json:"paid"`
	ApprovedAmount float64 `json:"approved_amount"`
}

// ProgramReportRow is one program's share of the yearly report
type ProgramReportRow struct {
	ProgramID   uint    `json:"program_id"`
	ProgramName string  `json:"program_name"`
	Total       int64   `json:"total"`
	Amount      float64 `json:"amount"`
}

// YearlyReport is the full report payload for one year
type YearlyReport struct {
	Year         int                 `json:"year"`
	Total        int64               `json:"total"`
	ApprovalRate float64             `json:"approval_rate"`
	ByStatus     map[string]int64    `json:"by_status"`
	ByProgram    []*ProgramReportRow `json:"by_program"`
	Months       []*MonthlyReportRow `json:"months"`
}

// BuildYearlyReport aggregates applications submitted in the given year.
// The aggregation is done in Go over one range query so the same code runs
// against MySQL in production and SQLite in tests.
func (s *DashboardService) BuildYearlyReport(ctx context.Context, year int) (*YearlyReport, error) {
	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, 0)

	apps, err := s.appRepo.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &YearlyReport{
		Year:     year,
		ByStatus: map[string]int64{},
		Months:   make([]*MonthlyReportRow, 12),
	}
	for i := range report.Months {
		report.Months[i] = &MonthlyReportRow{Month: i + 1}
	}

	byProgram := map[uint]*ProgramReportRow{}
	var decided, granted int64

	for _, app := range apps {
		report.Total++
		report.ByStatus[app.Status]++

		row := report.Months[int(app.CreatedAt.Month())-1]
		row.Total++

		settled := app.Status == string(domain.StatusApproved) || app.Status == string(domain.StatusPaid)
		switch domain.ApplicationStatus(app.Status) {
		case domain.StatusApproved:
			row.Approved++
		case domain.StatusRejected:
			row.Rejected++
		case domain.StatusPaid:
			row.Paid++
		}
		if settled && app.SupportAmount != nil {
			row.ApprovedAmount += *app.SupportAmount
		}
		if settled || app.Status == string(domain.StatusRejected) {
			decided++
			if settled {
				granted++
			}
		}

		prog := byProgram[app.ProgramID]
		if prog == nil {
			prog = &ProgramReportRow{ProgramID: app.ProgramID}
			if app.Program != nil {
				prog.ProgramName = app.Program.Name
			}
			byProgram[app.ProgramID] = prog
			report.ByProgram = append(report.ByProgram, prog)
		}
		prog.Total++
		if settled && app.SupportAmount != nil {
			prog.Amount += *app.SupportAmount
		}
	}

	if decided > 0 {
		report.ApprovalRate = float64(granted) / float64(decided)
	}
	return report, nil
}
