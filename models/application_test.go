package models

import "testing"

func TestCanTransitionApplication(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{ApplicationDraft, ApplicationSubmitted, true},
		{ApplicationSubmitted, ApplicationUnderReview, true},
		{ApplicationSubmitted, ApplicationRejected, true},
		{ApplicationUnderReview, ApplicationOffer, true},
		{ApplicationOffer, ApplicationEnrolled, true},
		// backwards moves are never allowed
		{ApplicationSubmitted, ApplicationDraft, false},
		{ApplicationEnrolled, ApplicationOffer, false},
		{ApplicationRejected, ApplicationSubmitted, false},
		// no skipping review
		{ApplicationDraft, ApplicationOffer, false},
		{ApplicationDraft, ApplicationEnrolled, false},
		// unknown statuses
		{"", ApplicationSubmitted, false},
		{ApplicationDraft, "ARCHIVED", false},
	}

	for _, tt := range tests {
		if got := CanTransitionApplication(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransitionApplication(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestReadyToSubmit(t *testing.T) {
	pi := &PersonalInfo{FirstName: "Aino", LastName: "Korhonen"}
	cd := &ContactDetails{Email: "aino@example.com"}
	eh := &EducationHistory{Entries: []EducationEntry{{Institution: "Helsinki Upper Secondary"}}}

	tests := []struct {
		name string
		app  Application
		want bool
	}{
		{"all three present", Application{PersonalInfo: pi, ContactDetails: cd, EducationHistory: eh}, true},
		{"motivation not required", Application{PersonalInfo: pi, ContactDetails: cd, EducationHistory: eh, Motivation: nil}, true},
		{"missing personal info", Application{ContactDetails: cd, EducationHistory: eh}, false},
		{"missing contact details", Application{PersonalInfo: pi, EducationHistory: eh}, false},
		{"missing education history", Application{PersonalInfo: pi, ContactDetails: cd}, false},
		{"fresh draft", Application{}, false},
	}

	for _, tt := range tests {
		if got := tt.app.ReadyToSubmit(); got != tt.want {
			t.Errorf("%s: ReadyToSubmit() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
