package cron

import (
	"log"
	"time"

	"github.com/resernova/resernova-api/db"
	"github.com/resernova/resernova-api/models"
	"github.com/robfig/cron/v3"
)

// staleUnverifiedAfter is how long an unverified account may linger
// before the nightly reaper removes it.
const staleUnverifiedAfter = 7 * 24 * time.Hour

// StartCronJobs initializes and starts the cron scheduler for account
// hygiene: expired one-time codes are cleared hourly, accounts that
// never verified are reaped nightly.
func StartCronJobs() {
	c := cron.New()
	if _, err := c.AddFunc("0 * * * *", clearExpiredOTPs); err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	if _, err := c.AddFunc("30 2 * * *", reapStaleUnverified); err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for account cleanup")
}

// clearExpiredOTPs blanks verification/reset codes past their expiry
// so a stale code can never be replayed.
func clearExpiredOTPs() {
	result := db.DB.Model(&models.User{}).
		Where("otp <> '' AND otp_expires_at < ?", time.Now()).
		Updates(map[string]interface{}{"otp": ""})
	if result.Error != nil {
		log.Printf("Error clearing expired OTPs: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Cleared %d expired one-time codes", result.RowsAffected)
	}
}

// reapStaleUnverified deletes accounts that registered but never
// verified within the grace window, along with the empty provider
// shells business signups create.
func reapStaleUnverified() {
	cutoff := time.Now().Add(-staleUnverifiedAfter)

	var stale []models.User
	if err := db.DB.Select("id").
		Where("is_verified = ? AND created_at < ?", false, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("Error finding stale unverified accounts: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	ids := make([]uint, 0, len(stale))
	for _, u := range stale {
		ids = append(ids, u.ID)
	}

	if err := db.DB.Where("user_id IN ?", ids).
		Delete(&models.Provider{}).Error; err != nil {
		log.Printf("Error removing provider shells: %v", err)
		return
	}
	result := db.DB.Where("id IN ?", ids).Delete(&models.User{})
	if result.Error != nil {
		log.Printf("Error reaping stale unverified accounts: %v", result.Error)
		return
	}
	log.Printf("Reaped %d stale unverified accounts", result.RowsAffected)
}
