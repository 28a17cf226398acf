package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/teachflow/internal/models"
)

type DashboardStats struct {
	Date                 string          `json:"date"`
	TodayScheduled       int64           `json:"today_scheduled_classes"`
	ActiveStudents       int64           `json:"active_students"`
	MonthRevenue         decimal.Decimal `json:"month_revenue"`
	OverduePendingAmount decimal.Decimal `json:"overdue_pending_amount"`
	Currency             string          `json:"currency"`
}

type DashboardService struct {
	repos Repositories
	now   func() time.Time
}

func NewDashboardService(repos Repositories) *DashboardService {
	return &DashboardService{repos: repos, now: time.Now}
}

// DayRange returns the UTC bounds of the calendar day containing moment in location.
func DayRange(moment time.Time, location *time.Location) (time.Time, time.Time) {
	if location == nil {
		location = time.UTC
	}
	local := moment.In(location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start.UTC(), end.UTC()
}

// MonthRange returns the UTC bounds of the calendar month containing moment in location.
func MonthRange(moment time.Time, location *time.Location) (time.Time, time.Time) {
	if location == nil {
		location = time.UTC
	}
	local := moment.In(location)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, location)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start.UTC(), end.UTC()
}

func (service *DashboardService) Stats(caller Caller) (DashboardStats, error) {
	if err := requireCaller(caller); err != nil {
		return DashboardStats{}, err
	}
	location := caller.Location()
	now := service.now()

	dayStart, dayEnd := DayRange(now, location)
	todayScheduled, err := service.repos.Classes.CountByStatusBetween(caller.UserID, models.ClassStatusScheduled, dayStart, dayEnd)
	if err != nil {
		return DashboardStats{}, persistence("count today's classes", err)
	}

	activeStudents, err := service.repos.Students.CountByStatus(caller.UserID, models.StudentStatusActive)
	if err != nil {
		return DashboardStats{}, persistence("count active students", err)
	}

	monthStart, monthEnd := MonthRange(now, location)
	monthRevenue, err := service.repos.Payments.SumAmounts(caller.UserID, models.PaymentSumFilter{
		Status:       models.PaymentStatusReceived,
		ReceivedFrom: &monthStart,
		ReceivedTo:   &monthEnd,
	})
	if err != nil {
		return DashboardStats{}, persistence("sum month revenue", err)
	}

	nowUTC := now.UTC()
	overdue, err := service.repos.Payments.SumAmounts(caller.UserID, models.PaymentSumFilter{
		Status:   models.PaymentStatusPending,
		DueUntil: &nowUTC,
	})
	if err != nil {
		return DashboardStats{}, persistence("sum overdue payments", err)
	}

	return DashboardStats{
		Date:                 now.In(location).Format("2006-01-02"),
		TodayScheduled:       todayScheduled,
		ActiveStudents:       activeStudents,
		MonthRevenue:         monthRevenue.Round(2),
		OverduePendingAmount: overdue.Round(2),
		Currency:             caller.DefaultCurrency(),
	}, nil
}
