package services

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/fumiama/go-docx"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
)

type exportQA struct {
	Question string
	Answer   string
}

// BuildCanvasDocument renders a canvas and its template answers into a Word
// document: title/author header, one section per component, steps in order
// with their checklist description and the declared Q/A rows.
func BuildCanvasDocument(canvas *models.Canvas) ([]byte, error) {
	var entries []models.TemplateEntry
	if err := database.DB.Where("canvas_id = ?", canvas.ID).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load template entries: %w", err)
	}

	// component -> step -> answered rows, in declared-field order
	grouped := make(map[string]map[int][]exportQA)
	for _, entry := range entries {
		def, ok := models.LookupTemplate(entry.TemplateID)
		if !ok {
			continue
		}
		if grouped[entry.ComponentName] == nil {
			grouped[entry.ComponentName] = make(map[int][]exportQA)
		}
		for _, field := range def.Fields {
			answer := "Not answered"
			if raw, ok := entry.Content[field]; ok {
				if s, ok := raw.(string); ok && s != "" {
					answer = s
				}
			}
			grouped[entry.ComponentName][entry.ChecklistStep] = append(
				grouped[entry.ComponentName][entry.ChecklistStep],
				exportQA{Question: field, Answer: answer},
			)
		}
	}

	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph()
	title.AddText(canvas.ResearchTitle).Size("40").Bold()
	author := doc.AddParagraph()
	author.AddText("Author: " + canvas.AuthorName).Size("24")
	doc.AddParagraph()

	componentOrder := componentNames(canvas, grouped)
	for _, componentName := range componentOrder {
		stepsMap := grouped[componentName]

		heading := doc.AddParagraph()
		heading.AddText(componentName).Size("32").Bold()

		var descriptions []models.StepDescription
		if err := database.DB.
			Where("component_name = ?", componentName).
			Order("step_number").
			Find(&descriptions).Error; err != nil {
			return nil, fmt.Errorf("load step descriptions: %w", err)
		}

		steps := orderedSteps(stepsMap, descriptions)
		for _, step := range steps {
			stepHeading := doc.AddParagraph()
			stepHeading.AddText(fmt.Sprintf("Step %d", step)).Size("28").Bold()

			for _, desc := range descriptions {
				if desc.StepNumber == step {
					p := doc.AddParagraph()
					p.AddText(desc.Description).Italic()
					break
				}
			}

			for _, qa := range stepsMap[step] {
				q := doc.AddParagraph()
				q.AddText(qa.Question + ":").Bold()
				a := doc.AddParagraph()
				a.AddText(qa.Answer)
			}
			doc.AddParagraph()
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}

// componentNames keeps the canvas checklist order and appends any answered
// component the checklist does not know about.
func componentNames(canvas *models.Canvas, grouped map[string]map[int][]exportQA) []string {
	seen := make(map[string]bool)
	var out []string
	for _, component := range canvas.Components {
		if grouped[component.Name] != nil {
			out = append(out, component.Name)
			seen[component.Name] = true
		}
	}
	var extra []string
	for name := range grouped {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func orderedSteps(stepsMap map[int][]exportQA, descriptions []models.StepDescription) []int {
	seen := make(map[int]bool)
	var steps []int
	for _, desc := range descriptions {
		if stepsMap[desc.StepNumber] != nil {
			steps = append(steps, desc.StepNumber)
			seen[desc.StepNumber] = true
		}
	}
	var extra []int
	for step := range stepsMap {
		if !seen[step] {
			extra = append(extra, step)
		}
	}
	sort.Ints(extra)
	return append(steps, extra...)
}
