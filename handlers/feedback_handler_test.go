package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enrollStudent(t *testing.T, student models.User, course models.Course) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.Enrollment{
		StudentID: student.ID,
		CourseID:  course.ID,
	}).Error)
}

func TestSubmitFeedbackOnceOnly(t *testing.T) {
	app := newTestApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	course := createCourse(t, teacher, true)
	enrollStudent(t, student, course)
	token := tokenFor(t, student)

	body := map[string]interface{}{
		"courseId": course.ID.String(),
		"rating":   4,
		"comment":  "Solid course, good pacing.",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/feedback/submit", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Second submission for the same (student, course) pair hits the unique index.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/feedback/submit", token, body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decodeBody(t, resp)
	assert.Contains(t, out["error"], "already submitted")
}

func TestSubmitFeedbackValidation(t *testing.T) {
	app := newTestApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	course := createCourse(t, teacher, true)
	enrollStudent(t, student, course)
	token := tokenFor(t, student)

	cases := []map[string]interface{}{
		{"courseId": course.ID.String(), "rating": 0, "comment": "too low"},
		{"courseId": course.ID.String(), "rating": 6, "comment": "too high"},
		{"courseId": course.ID.String(), "rating": 3, "comment": strings.Repeat("x", 1001)},
	}
	for _, body := range cases {
		resp := doJSON(t, app, http.MethodPost, "/api/v1/feedback/submit", token, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestSubmitFeedbackRequiresEnrollment(t *testing.T) {
	app := newTestApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	course := createCourse(t, teacher, true)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/feedback/submit", tokenFor(t, student), map[string]interface{}{
		"courseId": course.ID.String(),
		"rating":   5,
		"comment":  "never took it",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCourseFeedbackAverageAndOwnership(t *testing.T) {
	app := newTestApp(t)
	teacher := createUser(t, models.RoleTeacher)
	otherTeacher := createUser(t, models.RoleTeacher)
	course := createCourse(t, teacher, true)

	for _, rating := range []int{2, 4} {
		student := createUser(t, models.RoleStudent)
		enrollStudent(t, student, course)
		require.NoError(t, database.DB.Create(&models.Feedback{
			StudentID:    student.ID,
			CourseID:     course.ID,
			InstructorID: teacher.ID,
			Rating:       rating,
			Comment:      "ok",
		}).Error)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/v1/feedback/course/"+course.ID.String(), tokenFor(t, teacher), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody(t, resp)
	assert.Equal(t, float64(3), out["averageRating"])
	assert.Equal(t, float64(2), out["count"])

	// Another teacher cannot read this course's feedback.
	resp = doJSON(t, app, http.MethodGet, "/api/v1/feedback/course/"+course.ID.String(), tokenFor(t, otherTeacher), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestFeedbackUpdateDeleteOwnership(t *testing.T) {
	app := newTestApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	other := createUser(t, models.RoleStudent)
	course := createCourse(t, teacher, true)
	enrollStudent(t, student, course)

	feedback := models.Feedback{
		StudentID:    student.ID,
		CourseID:     course.ID,
		InstructorID: teacher.ID,
		Rating:       3,
		Comment:      "fine",
	}
	require.NoError(t, database.DB.Create(&feedback).Error)
	path := "/api/v1/feedback/" + feedback.ID.String()

	resp := doJSON(t, app, http.MethodPut, path, tokenFor(t, other), map[string]interface{}{"rating": 1, "comment": "hijack"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, path, tokenFor(t, student), map[string]interface{}{"rating": 5, "comment": "revised"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Feedback
	require.NoError(t, database.DB.First(&stored, "id = ?", feedback.ID).Error)
	assert.Equal(t, 5, stored.Rating)

	resp = doJSON(t, app, http.MethodDelete, path, tokenFor(t, other), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, path, tokenFor(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.Feedback{}).Where("id = ?", feedback.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
