package fhir

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// referencePattern matches FHIR references in the format "ResourceType/id".
var referencePattern = regexp.MustCompile(`^[A-Z][a-zA-Z]+/[A-Za-z0-9\-\.]{1,64}$`)

// statusValues maps resource types to their valid status values per FHIR R4.
var statusValues = map[string][]string{
	ResourceObservation: {"registered", "preliminary", "final", "amended", "corrected", "cancelled", "entered-in-error", "unknown"},
}

// Issue severities and types, a subset of the FHIR value sets.
const (
	IssueSeverityError = "error"

	IssueTypeStructure   = "structure"
	IssueTypeRequired    = "required"
	IssueTypeValue       = "value"
	IssueTypeCodeInvalid = "code-invalid"
)

// Issue describes one validation problem.
type Issue struct {
	Severity    string   `json:"severity"`
	Code        string   `json:"code"`
	Diagnostics string   `json:"diagnostics"`
	Expression  []string `json:"expression,omitempty"`
}

// ValidationResult holds the results of a bundle validation.
type ValidationResult struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

func (r *ValidationResult) add(code, expr, format string, args ...any) {
	r.Valid = false
	r.Issues = append(r.Issues, Issue{
		Severity:    IssueSeverityError,
		Code:        code,
		Diagnostics: fmt.Sprintf(format, args...),
		Expression:  []string{expr},
	})
}

// Validator checks the bundles produced by NewBundle.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the bundle envelope, then each entry's resourceType,
// required fields, status value and reference format.
func (v *Validator) Validate(b *Bundle) *ValidationResult {
	result := &ValidationResult{Valid: true, Issues: []Issue{}}
	if b == nil {
		result.add(IssueTypeRequired, "Bundle", "bundle is required")
		return result
	}
	if b.ResourceType != ResourceBundle {
		result.add(IssueTypeValue, "resourceType", "resourceType must be 'Bundle'; got '%s'", b.ResourceType)
	}
	if b.Type != BundleTypeCollection {
		result.add(IssueTypeValue, "type", "bundle type must be '%s'; got '%s'", BundleTypeCollection, b.Type)
	}
	for i, e := range b.Entry {
		v.validateEntry(e, fmt.Sprintf("entry[%d].resource", i), result)
	}
	return result
}

func (v *Validator) validateEntry(e BundleEntry, path string, result *ValidationResult) {
	if len(e.Resource) == 0 {
		result.add(IssueTypeRequired, path, "resource is required")
		return
	}
	var resource map[string]any
	if err := json.Unmarshal(e.Resource, &resource); err != nil {
		result.add(IssueTypeStructure, path, "invalid JSON: %s", err.Error())
		return
	}

	rt, _ := resource["resourceType"].(string)
	switch rt {
	case ResourcePatient:
		if id, _ := resource["id"].(string); id == "" {
			result.add(IssueTypeRequired, path+".id", "Patient.id is required")
		}
	case ResourceObservation:
		v.validateStatus(rt, resource, path, result)
		code, _ := resource["code"].(map[string]any)
		if text, _ := code["text"].(string); text == "" {
			result.add(IssueTypeRequired, path+".code.text", "Observation.code.text is required")
		}
		subject, _ := resource["subject"].(map[string]any)
		ref, _ := subject["reference"].(string)
		if ref == "" {
			result.add(IssueTypeRequired, path+".subject.reference", "Observation.subject is required")
		} else if !ValidateReferenceFormat(ref) {
			result.add(IssueTypeValue, path+".subject.reference", "invalid reference format '%s'; expected 'ResourceType/id'", ref)
		}
	case "":
		result.add(IssueTypeRequired, path+".resourceType", "resourceType is required")
	default:
		result.add(IssueTypeValue, path+".resourceType", "unexpected resourceType '%s'", rt)
	}
}

func (v *Validator) validateStatus(rt string, resource map[string]any, path string, result *ValidationResult) {
	status, ok := resource["status"].(string)
	if !ok || status == "" {
		result.add(IssueTypeRequired, path+".status", "%s.status is required", rt)
		return
	}
	valid := statusValues[rt]
	for _, s := range valid {
		if s == status {
			return
		}
	}
	result.add(IssueTypeCodeInvalid, path+".status", "invalid status '%s' for %s; valid values: %s", status, rt, strings.Join(valid, ", "))
}

// ValidateReferenceFormat validates that a reference string matches "ResourceType/id".
func ValidateReferenceFormat(ref string) bool {
	return referencePattern.MatchString(ref)
}
