// Package stats exposes the analytical reports computed by the backend.
// The dashboard never aggregates data itself; it validates the report name,
// attaches the requesting employee and relays the backend's answer.
package stats

import (
	"context"
	"sort"

	"hoteldash/internal/core/apperror"
	appctx "hoteldash/internal/core/context"
	"hoteldash/internal/domain"
	"hoteldash/internal/domain/session"
)

// Reporter fetches report rows from the backend. The employee id rides in
// the request body because the backend re-checks access on its side.
type Reporter interface {
	GlobalReport(ctx context.Context, path string, eid int) ([]domain.Record, error)
	HotelReport(ctx context.Context, hid int, section string, eid int) ([]domain.Record, error)
}

// globalReports maps report names to backend paths.
var globalReports = map[string]string{
	"revenue":       "/dataops/most/revenue",
	"paymentmethod": "/dataops/paymentmethod",
	"leastrooms":    "/dataops/least/rooms",
	"capacity":      "/dataops/most/capacity",
	"reservations":  "/dataops/most/reservation",
	"profitmonth":   "/dataops/most/profitmonth",
}

// hotelReports holds the per-hotel report sections.
var hotelReports = map[string]bool{
	"handicaproom":   true,
	"leastreserve":   true,
	"mostcreditcard": true,
	"highestpaid":    true,
	"mostdiscount":   true,
	"roomtype":       true,
	"leastguests":    true,
}

// Service validates report requests and relays them to the backend.
type Service struct {
	reporter Reporter
	policy   *session.Policy
}

// NewService creates a stats service.
func NewService(reporter Reporter, policy *session.Policy) *Service {
	return &Service{reporter: reporter, policy: policy}
}

// GlobalReportNames returns the valid global report names, sorted.
func GlobalReportNames() []string {
	names := make([]string, 0, len(globalReports))
	for name := range globalReports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global runs a system-wide report. Only administrators may request these;
// the backend still verifies the employee on its own records.
func (s *Service) Global(ctx context.Context, report string) ([]domain.Record, error) {
	sess := appctx.GetSession(ctx)
	if sess == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}
	path, ok := globalReports[report]
	if !ok {
		return nil, apperror.NewNotFound("report", report)
	}
	if !s.policy.CanViewGlobalStats(sess.Position) {
		return nil, apperror.NewForbidden("Only administrators can view global statistics")
	}
	return s.reporter.GlobalReport(ctx, path, sess.EmployeeID)
}

// Hotel runs a per-hotel report. Access to the hotel is decided by the
// backend, which answers with a denial sentinel when the employee may not
// see it; that denial is surfaced as-is.
func (s *Service) Hotel(ctx context.Context, hid int, report string) ([]domain.Record, error) {
	sess := appctx.GetSession(ctx)
	if sess == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}
	if !hotelReports[report] {
		return nil, apperror.NewNotFound("report", report)
	}
	return s.reporter.HotelReport(ctx, hid, report, sess.EmployeeID)
}
