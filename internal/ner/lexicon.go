package ner

import (
	"context"
	"regexp"
	"sort"
	"unicode/utf8"

	"medsumm/internal/model"
)

var vitalSignPattern = regexp.MustCompile(`(?i)\b(blood pressure|heart rate|pulse rate|pulse|respiratory rate|body temperature|temperature|oxygen saturation|spo2|body mass index|bmi|body weight|weight|height)\b`)

var labTestPattern = regexp.MustCompile(`(?i)\b(hemoglobin a1c|hba1c|hemoglobin|haemoglobin|fasting glucose|blood glucose|glucose|total cholesterol|cholesterol|ldl|hdl|triglycerides|creatinine|egfr|white blood cell count|wbc|red blood cell count|rbc|platelet count|platelets|sodium|potassium|tsh|alt|ast|bilirubin|urea|uric acid|vitamin d|ferritin|crp)\b`)

type lexicon struct {
	patterns []labeledPattern
}

type labeledPattern struct {
	label string
	re    *regexp.Regexp
}

// NewLexicon returns a pattern-based Recognizer for common vital signs and lab
// tests. It is used when no remote NER model is configured.
func NewLexicon() Recognizer {
	return &lexicon{patterns: []labeledPattern{
		{label: model.LabelVitalSign, re: vitalSignPattern},
		{label: model.LabelLabTest, re: labTestPattern},
	}}
}

func (l *lexicon) Extract(ctx context.Context, text string) ([]model.Entity, error) {
	var out []model.Entity
	for _, p := range l.patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			start := utf8.RuneCountInString(text[:loc[0]])
			out = append(out, model.Entity{
				Text:  text[loc[0]:loc[1]],
				Label: p.label,
				Start: start,
				End:   start + utf8.RuneCountInString(text[loc[0]:loc[1]]),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out, nil
}
