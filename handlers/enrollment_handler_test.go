package handlers_test

import (
	"net/http"
	"testing"

	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollDirectPath(t *testing.T) {
	app := newTestApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	course := createCourse(t, teacher, true)
	token := tokenFor(t, student)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/enroll", token, map[string]interface{}{
		"courseId": course.ID.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate enrollment is rejected.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/enroll", token, map[string]interface{}{
		"courseId": course.ID.String(),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	out := decodeBody(t, resp)
	assert.Equal(t, "Already enrolled", out["error"])
}

func TestEnrollRejectsUnapprovedCourse(t *testing.T) {
	app := newTestApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	course := createCourse(t, teacher, false)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/enroll", tokenFor(t, student), map[string]interface{}{
		"courseId": course.ID.String(),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAvailableCoursesExcludesEnrolled(t *testing.T) {
	app := newTestApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	enrolled := createCourse(t, teacher, true)
	open := createCourse(t, teacher, true)
	createCourse(t, teacher, false) // unapproved never shows

	require.NoError(t, database.DB.Create(&models.Enrollment{
		StudentID: student.ID,
		CourseID:  enrolled.ID,
	}).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/enroll/available", tokenFor(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody(t, resp)

	courses := out["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, open.ID.String(), courses[0].(map[string]interface{})["id"])
}

func TestMyCoursesListsEnrollments(t *testing.T) {
	app := newTestApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	course := createCourse(t, teacher, true)

	require.NoError(t, database.DB.Create(&models.Enrollment{
		StudentID: student.ID,
		CourseID:  course.ID,
	}).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/enroll/my-courses", tokenFor(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody(t, resp)

	enrollments := out["enrolledCourses"].([]interface{})
	require.Len(t, enrollments, 1)
	row := enrollments[0].(map[string]interface{})
	assert.Equal(t, float64(0), row["progress"])
	assert.Equal(t, course.Title, row["course"].(map[string]interface{})["title"])
}

func TestUpdateProgressOwnershipAndBounds(t *testing.T) {
	app := newTestApp(t)
	teacher := createUser(t, models.RoleTeacher)
	student := createUser(t, models.RoleStudent)
	other := createUser(t, models.RoleStudent)
	course := createCourse(t, teacher, true)

	enrollment := models.Enrollment{StudentID: student.ID, CourseID: course.ID}
	require.NoError(t, database.DB.Create(&enrollment).Error)

	path := "/api/v1/enroll/" + enrollment.ID.String() + "/progress"

	resp := doJSON(t, app, http.MethodPut, path, tokenFor(t, other), map[string]interface{}{"progress": 50})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, path, tokenFor(t, student), map[string]interface{}{"progress": 150})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, path, tokenFor(t, student), map[string]interface{}{"progress": 50})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Enrollment
	require.NoError(t, database.DB.First(&stored, "id = ?", enrollment.ID).Error)
	assert.Equal(t, 50, stored.Progress)
	assert.False(t, stored.Completed)
}
