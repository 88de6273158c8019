package services

import (
	"bytes"
	"context"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	config "github.com/startovate/lms_platform/configs"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"github.com/startovate/lms_platform/notifications"
	"github.com/startovate/lms_platform/utils"
)

// CheckAndGenerateCertificate renders a completion certificate for a finished
// enrollment and stores the uploaded URL on the row. Runs in a goroutine off
// the progress-update path; failures are logged and retried on the next
// completion event, never surfaced to the student request.
func CheckAndGenerateCertificate(enrollment models.Enrollment) {
	if !enrollment.Completed || enrollment.CertificateURL != nil {
		return
	}
	if config.Config("CLOUDINARY_URL") == "" {
		log.Println("⚠️ Cloudinary not configured, skipping certificate generation.")
		return
	}

	var instructor models.User
	if err := database.DB.First(&instructor, "id = ?", enrollment.Course.InstructorID).Error; err != nil {
		log.Printf("🔥 Certificate: failed to load instructor: %v", err)
		return
	}

	htmlData, err := renderCertificateHTML(enrollment.Student.Name, instructor.Name, enrollment.Course.Title)
	if err != nil {
		log.Printf("🔥 Failed to render certificate HTML: %v", err)
		return
	}

	pdfBytes, err := printPDF(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate PDF: %v", err)
		return
	}

	uploadURL, err := uploadCertificatePDF(pdfBytes, enrollment.StudentID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate: %v", err)
		return
	}

	receipt := utils.GenerateReceiptNumber()
	enrollment.CertificateURL = &uploadURL
	enrollment.ReceiptNumber = &receipt
	if err := database.DB.Model(&models.Enrollment{}).
		Where("id = ?", enrollment.ID).
		Updates(map[string]interface{}{"certificate_url": uploadURL, "receipt_number": receipt}).Error; err != nil {
		log.Printf("🔥 Failed to save certificate URL for enrollment %s: %v", enrollment.ID, err)
		return
	}

	log.Printf("✅ Generated certificate for student %s, course %q.", enrollment.StudentID, enrollment.Course.Title)

	go notifications.SendEmail(
		enrollment.Student.Name,
		enrollment.Student.Email,
		"Your Course Certificate is Ready!",
		"<h1>Congratulations!</h1><p>You completed <b>"+enrollment.Course.Title+"</b>. Your certificate is ready: <a href='"+uploadURL+"'>Download</a></p>",
	)
}

func renderCertificateHTML(studentName, instructorName, courseTitle string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		InstructorName string
		CourseTitle    string
		CompletionDate string
	}{
		StudentName:    studentName,
		InstructorName: instructorName,
		CourseTitle:    courseTitle,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}
