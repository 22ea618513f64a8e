package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"debentra/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Day returns an ISO date offset whole days from today.
func Day(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format("2006-01-02")
}

// CreateTestUser creates an admin user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("user%d@test.com", nextID()),
		Password: string(hash),
		Name:     "Test User",
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestSeries creates an approved series that resolves to active:
// released a month ago, maturing next year, lock-in 90 days out.
func CreateTestSeries(t *testing.T, db *gorm.DB) *models.Series {
	t.Helper()
	return CreateTestSeriesWithLockIn(t, db, 90)
}

// CreateTestSeriesWithLockIn creates an approved series whose lock-in date is
// lockInOffset days from today (negative for completed lock-ins).
func CreateTestSeriesWithLockIn(t *testing.T, db *gorm.DB, lockInOffset int) *models.Series {
	t.Helper()

	series := &models.Series{
		Name:           fmt.Sprintf("Test Series %d", nextID()),
		SeriesCode:     fmt.Sprintf("TS%03d", nextID()),
		IssueDate:      Day(-30),
		ReleaseDate:    Day(-30),
		MaturityDate:   Day(365),
		LockInDate:     Day(lockInOffset),
		FaceValue:      1_000,
		MinInvestment:  10_000,
		TargetAmount:   1_000_000,
		TotalIssueSize: 2_000_000,
		InterestRate:   12,
		ApprovalStatus: models.ApprovalApproved,
	}
	if err := db.Create(series).Error; err != nil {
		t.Fatalf("failed to create test series: %v", err)
	}
	return series
}

// CreateTestSeriesNoLockIn creates an approved active series with no lock-in
// date at all.
func CreateTestSeriesNoLockIn(t *testing.T, db *gorm.DB) *models.Series {
	t.Helper()

	series := CreateTestSeriesWithLockIn(t, db, 90)
	if err := db.Model(series).Update("lock_in_date", "").Error; err != nil {
		t.Fatalf("failed to clear lock-in date: %v", err)
	}
	series.LockInDate = ""
	return series
}

// CreateTestDraftSeries creates a series still pending approval.
func CreateTestDraftSeries(t *testing.T, db *gorm.DB) *models.Series {
	t.Helper()

	series := &models.Series{
		Name:           fmt.Sprintf("Draft Series %d", nextID()),
		SeriesCode:     fmt.Sprintf("DS%03d", nextID()),
		IssueDate:      Day(30),
		MaturityDate:   Day(395),
		LockInDate:     Day(120),
		FaceValue:      1_000,
		MinInvestment:  10_000,
		TargetAmount:   1_000_000,
		TotalIssueSize: 2_000_000,
		InterestRate:   11.5,
		ApprovalStatus: models.ApprovalPending,
	}
	if err := db.Create(series).Error; err != nil {
		t.Fatalf("failed to create draft series: %v", err)
	}
	return series
}

// CreateTestInvestor creates an active investor with a unique business key.
func CreateTestInvestor(t *testing.T, db *gorm.DB) *models.Investor {
	t.Helper()

	investor := &models.Investor{
		InvestorID: fmt.Sprintf("INV%04d", nextID()),
		Name:       "Test Investor",
		Email:      fmt.Sprintf("investor%d@test.com", nextID()),
		Status:     models.InvestorStatusActive,
		Active:     true,
	}
	if err := db.Create(investor).Error; err != nil {
		t.Fatalf("failed to create test investor: %v", err)
	}
	return investor
}
