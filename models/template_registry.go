package models

import "strconv"

// TemplateDefinition declares the field keys a template accepts. The frontend
// renders each template as a fixed table of inputs; the keys below mirror the
// row/column naming those tables post.
type TemplateDefinition struct {
	ID            string
	ComponentName string
	ChecklistStep int
	Fields        []string
}

// MaxAnswerLength bounds a single answer value.
const MaxAnswerLength = 5000

func numberedFields(prefix string, n int) []string {
	fields := make([]string, n)
	for i := range fields {
		fields[i] = prefix + "_" + strconv.Itoa(i)
	}
	return fields
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

var templateRegistry = map[string]TemplateDefinition{
	"template1": {
		ID:            "template1",
		ComponentName: "Problem Identification",
		ChecklistStep: 1,
		Fields:        concat(numberedFields("why", 5), numberedFields("references", 5)),
	},
	"template2": {
		ID:            "template2",
		ComponentName: "Problem Identification",
		ChecklistStep: 2,
		Fields:        concat(numberedFields("stakeholder", 5), numberedFields("impact", 5)),
	},
	"template3": {
		ID:            "template3",
		ComponentName: "Literature Search",
		ChecklistStep: 1,
		Fields:        concat(numberedFields("keyword", 6), numberedFields("database", 6), numberedFields("results", 6)),
	},
	"template4": {
		ID:            "template4",
		ComponentName: "Literature Search",
		ChecklistStep: 2,
		Fields:        concat(numberedFields("paper", 8), numberedFields("findings", 8), numberedFields("gap", 8)),
	},
	"template5": {
		ID:            "template5",
		ComponentName: "Existing Solutions",
		ChecklistStep: 1,
		Fields:        concat(numberedFields("solution", 5), numberedFields("strengths", 5), numberedFields("weaknesses", 5)),
	},
	"template6": {
		ID:            "template6",
		ComponentName: "Market Landscape",
		ChecklistStep: 1,
		Fields:        concat(numberedFields("competitor", 5), numberedFields("segment", 5), numberedFields("size", 5)),
	},
	"template7": {
		ID:            "template7",
		ComponentName: "Novelty",
		ChecklistStep: 1,
		Fields:        concat([]string{"novelty_statement"}, numberedFields("differentiator", 4)),
	},
	"template8": {
		ID:            "template8",
		ComponentName: "Research Question",
		ChecklistStep: 1,
		Fields:        concat(numberedFields("question", 3), numberedFields("hypothesis", 3)),
	},
	"template9": {
		ID:            "template9",
		ComponentName: "Research Methodology",
		ChecklistStep: 1,
		Fields:        concat(numberedFields("method", 4), numberedFields("justification", 4)),
	},
	"template10": {
		ID:            "template10",
		ComponentName: "Key Resources",
		ChecklistStep: 1,
		Fields:        concat(numberedFields("resource", 6), numberedFields("availability", 6)),
	},
	"template11": {
		ID:            "template11",
		ComponentName: "Funding",
		ChecklistStep: 1,
		Fields:        concat(numberedFields("source", 4), numberedFields("trl_level", 4), numberedFields("deadline", 4)),
	},
	"template12": {
		ID:            "template12",
		ComponentName: "Team Capacities",
		ChecklistStep: 1,
		Fields:        concat(numberedFields("member", 6), numberedFields("expertise", 6), numberedFields("role", 6)),
	},
	"template13": {
		ID:            "template13",
		ComponentName: "Research Outcome",
		ChecklistStep: 1,
		Fields:        concat(numberedFields("outcome", 4), numberedFields("metric", 4)),
	},
}

func LookupTemplate(templateID string) (TemplateDefinition, bool) {
	def, ok := templateRegistry[templateID]
	return def, ok
}

func (d TemplateDefinition) AllowsField(key string) bool {
	for _, f := range d.Fields {
		if f == key {
			return true
		}
	}
	return false
}
