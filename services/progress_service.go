package services

import (
	"sykli-college-api/models"
)

// Wizard step IDs, in fixed order. The review step is the terminal gate and
// never reports itself complete.
const (
	StepInstructions     = 1
	StepPersonalInfo     = 2
	StepContactDetails   = 3
	StepEducationHistory = 4
	StepMotivation       = 5
	StepDocuments        = 6
	StepReview           = 7
)

// Render statuses for one wizard step.
const (
	StepStatusCurrent   = "current"
	StepStatusCompleted = "completed"
	StepStatusUpcoming  = "upcoming"
)

var stepKeys = map[int]string{
	StepInstructions:     "instructions",
	StepPersonalInfo:     "personal_info",
	StepContactDetails:   "contact_details",
	StepEducationHistory: "education_history",
	StepMotivation:       "motivation",
	StepDocuments:        "documents",
	StepReview:           "review",
}

// WizardStep is the render state of one step for the client.
type WizardStep struct {
	ID       int    `json:"id"`
	Key      string `json:"key"`
	Status   string `json:"status"`
	Complete bool   `json:"complete"`
	IsLocked bool   `json:"is_locked"`
}

// WizardProgress is the full derived wizard state for one application. It is
// computed purely from the application row and its documents; nothing is
// persisted.
type WizardProgress struct {
	CurrentStep       int          `json:"current_step"`
	MaxAllowedStep    int          `json:"max_allowed_step"`
	DocumentsComplete bool         `json:"documents_complete"`
	CanSubmit         bool         `json:"can_submit"`
	Steps             []WizardStep `json:"steps"`
}

// DocumentsComplete reports whether every required document type appears at
// least once among the uploads. Optional types never count toward or
// against completion.
func DocumentsComplete(docs []models.ApplicationDocument) bool {
	have := make(map[string]bool, len(docs))
	for _, d := range docs {
		have[d.DocumentType] = true
	}
	for _, required := range models.RequiredDocumentTypes {
		if !have[required] {
			return false
		}
	}
	return true
}

// StepComplete evaluates one step's completion predicate.
func StepComplete(app *models.Application, docs []models.ApplicationDocument, stepID int) bool {
	switch stepID {
	case StepInstructions:
		return true
	case StepPersonalInfo:
		return app.PersonalInfo != nil
	case StepContactDetails:
		return app.ContactDetails != nil
	case StepEducationHistory:
		return app.EducationHistory != nil
	case StepMotivation:
		return app.Motivation != nil
	case StepDocuments:
		return DocumentsComplete(docs)
	default:
		// review (and anything unknown) never reports complete
		return false
	}
}

// MaxAllowedStep scans steps 1..6 in order and unlocks the step after each
// completed one. Nothing beyond the first incomplete step is reachable.
func MaxAllowedStep(app *models.Application, docs []models.ApplicationDocument) int {
	maxAllowed := StepInstructions
	for step := StepInstructions; step <= StepDocuments; step++ {
		if !StepComplete(app, docs, step) {
			break
		}
		maxAllowed = step + 1
	}
	return maxAllowed
}

// ComputeWizardProgress derives the wizard state for an application.
// requestedStep <= 0 asks for the default step: step 1 for a fresh
// application (personal_info still null), otherwise the highest reachable
// step. An explicit request is clamped so the user cannot jump past the
// first incomplete step but can always revisit earlier ones.
func ComputeWizardProgress(app *models.Application, docs []models.ApplicationDocument, requestedStep int) WizardProgress {
	maxAllowed := MaxAllowedStep(app, docs)

	current := requestedStep
	if current <= 0 {
		if app.PersonalInfo == nil {
			current = StepInstructions
		} else {
			current = maxAllowed
		}
	}
	if current > maxAllowed {
		current = maxAllowed
	}
	if current < StepInstructions {
		current = StepInstructions
	}

	steps := make([]WizardStep, 0, StepReview)
	for id := StepInstructions; id <= StepReview; id++ {
		complete := StepComplete(app, docs, id)

		status := StepStatusUpcoming
		switch {
		case id == current:
			status = StepStatusCurrent
		case id < current || complete:
			status = StepStatusCompleted
		}

		steps = append(steps, WizardStep{
			ID:       id,
			Key:      stepKeys[id],
			Status:   status,
			Complete: complete,
			IsLocked: id > maxAllowed,
		})
	}

	return WizardProgress{
		CurrentStep:       current,
		MaxAllowedStep:    maxAllowed,
		DocumentsComplete: DocumentsComplete(docs),
		CanSubmit:         app.Status == models.ApplicationDraft && app.ReadyToSubmit(),
		Steps:             steps,
	}
}
