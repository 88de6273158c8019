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

func TestCreateCanvasSeedsChecklist(t *testing.T) {
	app := newTestApp(t)
	student := createUser(t, models.RoleStudent)
	token := tokenFor(t, student)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/canvas", token, map[string]interface{}{
		"researchTitle": "Low-cost water sensing",
		"authorName":    "A. Researcher",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var canvas models.Canvas
	require.NoError(t, database.DB.Where("user_id = ?", student.ID).First(&canvas).Error)

	var components []models.CanvasComponent
	require.NoError(t, database.DB.Where("canvas_id = ?", canvas.ID).Order("position").Find(&components).Error)
	require.Len(t, components, len(models.DefaultComponents))
	for i, component := range components {
		assert.Equal(t, models.DefaultComponents[i], component.Name)
		assert.Equal(t, models.ComponentNotStarted, component.Status)
	}

	// One canvas per user.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/canvas", token, map[string]interface{}{
		"researchTitle": "Second attempt",
		"authorName":    "A. Researcher",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["error"], "already has a canvas")
}

func TestUpdateComponentStatus(t *testing.T) {
	app := newTestApp(t)
	student := createUser(t, models.RoleStudent)
	token := tokenFor(t, student)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/canvas", token, map[string]interface{}{
		"researchTitle": "Thermal imaging drones",
		"authorName":    "B. Researcher",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/v1/canvas/components/status", token, map[string]interface{}{
		"componentName": "Problem Identification",
		"status":        models.ComponentInProgress,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var component models.CanvasComponent
	require.NoError(t, database.DB.Where("name = ?", "Problem Identification").First(&component).Error)
	assert.Equal(t, models.ComponentInProgress, component.Status)

	// Status values outside the fixed set are rejected.
	resp = doJSON(t, app, http.MethodPut, "/api/v1/canvas/components/status", token, map[string]interface{}{
		"componentName": "Problem Identification",
		"status":        "done",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/v1/canvas/components/status", token, map[string]interface{}{
		"componentName": "No Such Component",
		"status":        models.ComponentCompleted,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTemplateLifecycle(t *testing.T) {
	app := newTestApp(t)
	student := createUser(t, models.RoleStudent)
	token := tokenFor(t, student)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/canvas", token, map[string]interface{}{
		"researchTitle": "Microplastic filters",
		"authorName":    "C. Researcher",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var canvas models.Canvas
	require.NoError(t, database.DB.Where("user_id = ?", student.ID).First(&canvas).Error)
	canvasID := canvas.ID.String()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/templates/start", token, map[string]interface{}{
		"canvasId":   canvasID,
		"templateId": "template1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Starting the same template again reuses the existing entry.
	resp = doJSON(t, app, http.MethodPost, "/api/v1/templates/start", token, map[string]interface{}{
		"canvasId":   canvasID,
		"templateId": "template1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	database.DB.Model(&models.TemplateEntry{}).Where("canvas_id = ?", canvas.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/templates/save", token, map[string]interface{}{
		"canvasId":   canvasID,
		"templateId": "template1",
		"answers": map[string]string{
			"why_0":        "Existing sensors are too expensive for field deployment.",
			"references_0": "Doe et al. 2024",
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/templates/"+canvasID+"/template1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decodeBody(t, resp)
	entry := out["template"].(map[string]interface{})
	content := entry["content"].(map[string]interface{})
	assert.Equal(t, "Doe et al. 2024", content["references_0"])

	resp = doJSON(t, app, http.MethodPut, "/api/v1/templates/"+canvasID+"/template1/complete", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.TemplateEntry
	require.NoError(t, database.DB.Where("canvas_id = ? AND template_id = ?", canvas.ID, "template1").First(&stored).Error)
	assert.True(t, stored.Completed)
}

func TestSaveTemplateRejectsUndeclaredFields(t *testing.T) {
	app := newTestApp(t)
	student := createUser(t, models.RoleStudent)
	token := tokenFor(t, student)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/canvas", token, map[string]interface{}{
		"researchTitle": "Soil carbon mapping",
		"authorName":    "D. Researcher",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var canvas models.Canvas
	require.NoError(t, database.DB.Where("user_id = ?", student.ID).First(&canvas).Error)
	canvasID := canvas.ID.String()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/templates/start", token, map[string]interface{}{
		"canvasId":   canvasID,
		"templateId": "template1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/templates/save", token, map[string]interface{}{
		"canvasId":   canvasID,
		"templateId": "template1",
		"answers":    map[string]string{"surprise_field": "nope"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/templates/save", token, map[string]interface{}{
		"canvasId":   canvasID,
		"templateId": "template1",
		"answers":    map[string]string{"why_0": strings.Repeat("a", models.MaxAnswerLength+1)},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/templates/start", token, map[string]interface{}{
		"canvasId":   canvasID,
		"templateId": "template99",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTemplateOwnership(t *testing.T) {
	app := newTestApp(t)
	owner := createUser(t, models.RoleStudent)
	intruder := createUser(t, models.RoleStudent)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/canvas", tokenFor(t, owner), map[string]interface{}{
		"researchTitle": "Offline speech models",
		"authorName":    "E. Researcher",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var canvas models.Canvas
	require.NoError(t, database.DB.Where("user_id = ?", owner.ID).First(&canvas).Error)

	resp = doJSON(t, app, http.MethodPost, "/api/v1/templates/start", tokenFor(t, intruder), map[string]interface{}{
		"canvasId":   canvas.ID.String(),
		"templateId": "template1",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/v1/templates/canvas/"+canvas.ID.String(), tokenFor(t, intruder), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
