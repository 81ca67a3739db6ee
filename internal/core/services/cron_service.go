package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"langson-benefits/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// staleReviewAge is how long an application may sit in under_review before
// the assigned officer gets a reminder.
const staleReviewAge = 7 * 24 * time.Hour

// CronService runs the scheduled housekeeping jobs
type CronService struct {
	cron          *cron.Cron
	programRepo   *repositories.ProgramRepository
	appRepo       *repositories.ApplicationRepository
	notifyService *NotificationService
}

// NewCronService creates a new cron service
func NewCronService(
	programRepo *repositories.ProgramRepository,
	appRepo *repositories.ApplicationRepository,
	notifyService *NotificationService,
) *CronService {
	return &CronService{
		cron:          cron.New(),
		programRepo:   programRepo,
		appRepo:       appRepo,
		notifyService: notifyService,
	}
}

// Start registers and starts all scheduled jobs
func (s *CronService) Start() error {
	// Expire programs shortly after midnight
	if _, err := s.cron.AddFunc("10 0 * * *", s.expirePrograms); err != nil {
		return err
	}
	// Morning reminder for reviews sitting too long
	if _, err := s.cron.AddFunc("0 8 * * *", s.remindStaleReviews); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron jobs scheduled")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// expirePrograms deactivates programs whose end_date has passed
func (s *CronService) expirePrograms() {
	ctx := context.Background()
	affected, err := s.programRepo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		log.Printf("⚠️ Program expiry job failed: %v", err)
		return
	}
	if affected > 0 {
		log.Printf("🕐 Deactivated %d expired programs", affected)
	}
}

// remindStaleReviews nudges officers about applications stuck in review
func (s *CronService) remindStaleReviews() {
	ctx := context.Background()
	apps, err := s.appRepo.ListStaleUnderReview(ctx, time.Now().Add(-staleReviewAge))
	if err != nil {
		log.Printf("⚠️ Stale review job failed: %v", err)
		return
	}

	for _, app := range apps {
		if app.AssignedOfficerID == nil {
			continue
		}
		s.notifyService.Notify(ctx, *app.AssignedOfficerID,
			"Hồ sơ chờ xử lý quá hạn",
			fmt.Sprintf("Hồ sơ %s đã ở trạng thái chờ bổ sung kết quả thẩm định hơn 7 ngày", app.Code),
			"reminder",
		)
	}
	if len(apps) > 0 {
		log.Printf("🕐 Sent %d stale review reminders", len(apps))
	}
}
