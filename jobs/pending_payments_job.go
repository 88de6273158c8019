package jobs

import (
	"fmt"
	"log"
	"time"

	config "github.com/startovate/lms_platform/configs"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"github.com/startovate/lms_platform/notifications"
)

// NotifyStalePendingPayments mails the admin a digest of Easypaisa
// submissions that have sat unverified for more than a day.
func NotifyStalePendingPayments() {
	log.Println("Running job: NotifyStalePendingPayments...")

	cutoff := time.Now().Add(-24 * time.Hour)

	var stale []models.EasypaisaPayment
	err := database.DB.
		Preload("User").
		Preload("Course").
		Where("is_verified = ? AND created_at < ?", false, cutoff).
		Order("created_at").
		Find(&stale).Error
	if err != nil {
		log.Printf("Error checking for stale pending payments: %v", err)
		return
	}

	if len(stale) == 0 {
		return
	}

	adminEmail := config.Config("SUPERADMIN_EMAIL")
	if adminEmail == "" {
		log.Println("⚠️ SUPERADMIN_EMAIL not configured, skipping pending-payment digest.")
		return
	}

	body := fmt.Sprintf("<h1>Pending Payment Review</h1><p>%d Easypaisa submission(s) have been waiting more than 24 hours:</p><ul>", len(stale))
	for _, p := range stale {
		body += fmt.Sprintf("<li>%s: %s (txn %s, submitted %s)</li>",
			p.User.Name, p.Course.Title, p.TransactionID, p.CreatedAt.Format("Jan 2 15:04"))
	}
	body += "</ul>"

	go notifications.SendEmail("Admin", adminEmail, "Easypaisa payments awaiting verification", body)
}
