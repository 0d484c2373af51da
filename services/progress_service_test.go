package services

import (
	"testing"

	"sykli-college-api/models"
)

func docsOf(types ...string) []models.ApplicationDocument {
	docs := make([]models.ApplicationDocument, 0, len(types))
	for i, t := range types {
		docs = append(docs, models.ApplicationDocument{DocumentID: i + 1, DocumentType: t})
	}
	return docs
}

func draftApp() *models.Application {
	return &models.Application{Status: models.ApplicationDraft}
}

func fullDraftApp() *models.Application {
	app := draftApp()
	app.PersonalInfo = &models.PersonalInfo{FirstName: "Aino"}
	app.ContactDetails = &models.ContactDetails{Email: "aino@example.com"}
	app.EducationHistory = &models.EducationHistory{}
	app.Motivation = &models.Motivation{Statement: "I want to study here."}
	return app
}

func TestDocumentsComplete(t *testing.T) {
	tests := []struct {
		name string
		docs []models.ApplicationDocument
		want bool
	}{
		{"no documents", nil, false},
		{"partial", docsOf(models.DocPassport, models.DocTranscript), false},
		{"all four required", docsOf(models.DocPassport, models.DocTranscript, models.DocCertificate, models.DocCV), true},
		{
			"optional types do not substitute for required ones",
			docsOf(models.DocPassport, models.DocTranscript, models.DocCertificate, models.DocMotivationLetter, models.DocLanguageCert),
			false,
		},
		{
			"optional types alongside required set do not break completion",
			docsOf(models.DocPassport, models.DocTranscript, models.DocCertificate, models.DocCV, models.DocLanguageCert),
			true,
		},
		{
			"duplicate uploads of one type still count once",
			docsOf(models.DocPassport, models.DocPassport, models.DocTranscript, models.DocCertificate, models.DocCV),
			true,
		},
	}

	for _, tt := range tests {
		if got := DocumentsComplete(tt.docs); got != tt.want {
			t.Errorf("%s: DocumentsComplete() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMaxAllowedStepScan(t *testing.T) {
	// Completing each successive step unlocks exactly one more.
	app := draftApp()
	if got := MaxAllowedStep(app, nil); got != StepPersonalInfo {
		t.Fatalf("fresh application: MaxAllowedStep = %d, want %d", got, StepPersonalInfo)
	}

	app.PersonalInfo = &models.PersonalInfo{FirstName: "Aino"}
	if got := MaxAllowedStep(app, nil); got != StepContactDetails {
		t.Fatalf("after personal info: MaxAllowedStep = %d, want %d", got, StepContactDetails)
	}

	app.ContactDetails = &models.ContactDetails{Email: "aino@example.com"}
	if got := MaxAllowedStep(app, nil); got != StepEducationHistory {
		t.Fatalf("after contact details: MaxAllowedStep = %d, want %d", got, StepEducationHistory)
	}

	app.EducationHistory = &models.EducationHistory{}
	if got := MaxAllowedStep(app, nil); got != StepMotivation {
		t.Fatalf("after education history: MaxAllowedStep = %d, want %d", got, StepMotivation)
	}

	app.Motivation = &models.Motivation{Statement: "x"}
	if got := MaxAllowedStep(app, nil); got != StepDocuments {
		t.Fatalf("after motivation: MaxAllowedStep = %d, want %d", got, StepDocuments)
	}

	docs := docsOf(models.DocPassport, models.DocTranscript, models.DocCertificate, models.DocCV)
	if got := MaxAllowedStep(app, docs); got != StepReview {
		t.Fatalf("after documents: MaxAllowedStep = %d, want %d", got, StepReview)
	}
}

func TestIncompleteStepBlocksLaterData(t *testing.T) {
	// Contact details missing: later steps having data must not unlock
	// anything beyond the first incomplete step.
	app := draftApp()
	app.PersonalInfo = &models.PersonalInfo{FirstName: "Aino"}
	app.EducationHistory = &models.EducationHistory{}
	app.Motivation = &models.Motivation{Statement: "x"}
	docs := docsOf(models.DocPassport, models.DocTranscript, models.DocCertificate, models.DocCV)

	if got := MaxAllowedStep(app, docs); got != StepContactDetails {
		t.Errorf("MaxAllowedStep = %d, want %d (blocked at contact details)", got, StepContactDetails)
	}
}

func TestFreshApplicationDefaults(t *testing.T) {
	// personal_info still null, everything else populated, zero documents:
	// the default view is step 1 and navigation stops at the first
	// incomplete data step.
	app := draftApp()
	app.ContactDetails = &models.ContactDetails{Email: "aino@example.com"}
	app.EducationHistory = &models.EducationHistory{}
	app.Motivation = &models.Motivation{Statement: "x"}

	p := ComputeWizardProgress(app, nil, 0)
	if p.CurrentStep != StepInstructions {
		t.Errorf("CurrentStep = %d, want %d", p.CurrentStep, StepInstructions)
	}
	if p.MaxAllowedStep != StepPersonalInfo {
		t.Errorf("MaxAllowedStep = %d, want %d", p.MaxAllowedStep, StepPersonalInfo)
	}
	if p.CanSubmit {
		t.Error("CanSubmit = true for application missing personal_info")
	}
}

func TestDefaultStepResumesAtHighestReachable(t *testing.T) {
	app := fullDraftApp()
	p := ComputeWizardProgress(app, nil, 0)
	// Documents still missing, so the documents step is the frontier.
	if p.CurrentStep != StepDocuments {
		t.Errorf("CurrentStep = %d, want %d", p.CurrentStep, StepDocuments)
	}
}

func TestRequestedStepClamping(t *testing.T) {
	app := draftApp()
	app.PersonalInfo = &models.PersonalInfo{FirstName: "Aino"}
	// maxAllowed is 3 here

	p := ComputeWizardProgress(app, nil, StepDocuments)
	if p.CurrentStep != StepContactDetails {
		t.Errorf("jump ahead: CurrentStep = %d, want %d", p.CurrentStep, StepContactDetails)
	}

	// Revisiting an earlier completed step is always allowed.
	p = ComputeWizardProgress(app, nil, StepInstructions)
	if p.CurrentStep != StepInstructions {
		t.Errorf("revisit: CurrentStep = %d, want %d", p.CurrentStep, StepInstructions)
	}
}

func TestPartialDocumentsAsymmetry(t *testing.T) {
	// All four sub-documents filled, only passport+transcript uploaded: the
	// documents step is reachable but incomplete, review stays locked, and
	// submission is still permitted because documents are not part of the
	// submit precondition.
	app := fullDraftApp()
	docs := docsOf(models.DocPassport, models.DocTranscript)

	p := ComputeWizardProgress(app, docs, 0)
	if p.MaxAllowedStep != StepDocuments {
		t.Errorf("MaxAllowedStep = %d, want %d", p.MaxAllowedStep, StepDocuments)
	}
	if p.DocumentsComplete {
		t.Error("DocumentsComplete = true with only two required types uploaded")
	}
	if !p.CanSubmit {
		t.Error("CanSubmit = false despite all three core sub-documents being present")
	}

	review := p.Steps[StepReview-1]
	if !review.IsLocked {
		t.Error("review step unlocked while documents step is incomplete")
	}
}

func TestReviewStepNeverCompletes(t *testing.T) {
	app := fullDraftApp()
	docs := docsOf(models.DocPassport, models.DocTranscript, models.DocCertificate, models.DocCV)

	p := ComputeWizardProgress(app, docs, StepReview)
	review := p.Steps[StepReview-1]
	if review.Complete {
		t.Error("review step reported itself complete")
	}
	if review.Status != StepStatusCurrent {
		t.Errorf("review status = %q, want %q", review.Status, StepStatusCurrent)
	}
	if review.IsLocked {
		t.Error("review locked although every prior step is complete")
	}
}

func TestStepRenderStatuses(t *testing.T) {
	app := draftApp()
	app.PersonalInfo = &models.PersonalInfo{FirstName: "Aino"}

	p := ComputeWizardProgress(app, nil, StepContactDetails)

	for _, s := range p.Steps {
		switch {
		case s.ID < StepContactDetails:
			if s.Status != StepStatusCompleted {
				t.Errorf("step %d status = %q, want completed", s.ID, s.Status)
			}
		case s.ID == StepContactDetails:
			if s.Status != StepStatusCurrent {
				t.Errorf("step %d status = %q, want current", s.ID, s.Status)
			}
		default:
			if s.Status != StepStatusUpcoming {
				t.Errorf("step %d status = %q, want upcoming", s.ID, s.Status)
			}
			if !s.IsLocked {
				t.Errorf("step %d should be locked", s.ID)
			}
		}
	}
}

func TestCanSubmitOnlyFromDraft(t *testing.T) {
	app := fullDraftApp()
	app.Status = models.ApplicationSubmitted

	p := ComputeWizardProgress(app, nil, 0)
	if p.CanSubmit {
		t.Error("CanSubmit = true for an already submitted application")
	}
}
