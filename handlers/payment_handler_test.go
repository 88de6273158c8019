package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitEasypaisa(t *testing.T, app *fiber.App, token string, fields map[string]string, withFile bool) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if withFile {
		part, err := writer.CreateFormFile("screenshot", "receipt.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/easypaisa-submit", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestEasypaisaEndToEndApproval(t *testing.T) {
	chdirTemp(t)
	app := newTestApp(t)

	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	admin := createUser(t, models.RoleAdmin)
	course := createCourse(t, teacher, true)

	// Student submits a manual proof of payment.
	resp := submitEasypaisa(t, app, tokenFor(t, student), map[string]string{
		"courseId":      course.ID.String(),
		"fullName":      student.Name,
		"transactionId": "T1",
	}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// It shows up in the admin's pending list, unverified.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/payments/easypaisa-pending", tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody(t, resp)
	pending := out["payments"].([]interface{})
	require.Len(t, pending, 1)
	record := pending[0].(map[string]interface{})
	assert.Equal(t, false, record["is_verified"])
	assert.Equal(t, "T1", record["transaction_id"])

	// Admin approves: payment flips verified and exactly one enrollment exists.
	paymentID := record["id"].(string)
	resp = doJSON(t, app, http.MethodPut, "/api/v1/payments/easypaisa-approve/"+paymentID, tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payment models.EasypaisaPayment
	require.NoError(t, database.DB.First(&payment, "id = ?", paymentID).Error)
	assert.True(t, payment.IsVerified)

	var enrollments []models.Enrollment
	require.NoError(t, database.DB.Where("student_id = ? AND course_id = ?", student.ID, course.ID).Find(&enrollments).Error)
	require.Len(t, enrollments, 1)
	assert.Equal(t, 0, enrollments[0].Progress)
	assert.False(t, enrollments[0].Completed)
}

// Documents the known gap: approving an already-verified payment creates a
// duplicate enrollment row. There is no idempotency guard.
func TestEasypaisaDoubleApprovalCreatesDuplicateEnrollment(t *testing.T) {
	chdirTemp(t)
	app := newTestApp(t)

	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	admin := createUser(t, models.RoleAdmin)
	course := createCourse(t, teacher, true)

	payment := models.EasypaisaPayment{
		UserID:        student.ID,
		CourseID:      course.ID,
		FullName:      student.Name,
		TransactionID: "T2",
		ScreenshotURL: "/uploads/receipt.png",
	}
	require.NoError(t, database.DB.Create(&payment).Error)

	adminToken := tokenFor(t, admin)
	path := "/api/v1/payments/easypaisa-approve/" + payment.ID.String()
	resp := doJSON(t, app, http.MethodPut, path, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPut, path, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(2), count, "double approval currently duplicates the enrollment")
}

func TestEasypaisaSubmitValidation(t *testing.T) {
	chdirTemp(t)
	app := newTestApp(t)

	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	course := createCourse(t, teacher, true)
	token := tokenFor(t, student)

	// Missing transaction id.
	resp := submitEasypaisa(t, app, token, map[string]string{
		"courseId": course.ID.String(),
		"fullName": student.Name,
	}, true)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Missing screenshot.
	resp = submitEasypaisa(t, app, token, map[string]string{
		"courseId":      course.ID.String(),
		"fullName":      student.Name,
		"transactionId": "T3",
	}, false)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestApproveUnknownPaymentReturns404(t *testing.T) {
	app := newTestApp(t)
	admin := createUser(t, models.RoleAdmin)

	resp := doJSON(t, app, http.MethodPut, "/api/v1/payments/easypaisa-approve/00000000-0000-0000-0000-000000000000", tokenFor(t, admin), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPendingPaymentsRequiresAdmin(t *testing.T) {
	app := newTestApp(t)
	student := createUser(t, models.RoleStudent)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/payments/easypaisa-pending", tokenFor(t, student), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
