package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"siri-memberfund/internal/adapters/persistence/models"
	"siri-memberfund/internal/core/domain"
)

func newContributionFixture() (*ContributionService, *fakeUserRepo, *fakeContributionRepo, *fakeFundMetaRepo) {
	users := newFakeUserRepo()
	contribs := &fakeContributionRepo{}
	meta := &fakeFundMetaRepo{}
	svc := NewContributionService(contribs, users, meta, testConfig())
	return svc, users, contribs, meta
}

func TestRecordContribution(t *testing.T) {
	svc, users, _, meta := newContributionFixture()
	users.users["m1"] = &models.User{ID: "m1", Name: "Test Member", Email: "m1@example.com", Role: "MEMBER"}

	entry, err := svc.Record(context.Background(), &RecordInput{UserID: "m1", Month: "2025-03"})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	if entry.Amount != 2000 {
		t.Errorf("amount = %.2f, want 2000", entry.Amount)
	}
	if entry.Kind != "CONTRIBUTION" {
		t.Errorf("kind = %s, want CONTRIBUTION", entry.Kind)
	}
	if entry.Status != "PAID" {
		t.Errorf("status = %s, want PAID", entry.Status)
	}
	if entry.ID == "" {
		t.Error("expected a generated entry ID")
	}
	if meta.meta.LastUpdated == 0 {
		t.Error("expected version stamp to advance")
	}
}

func TestRecordContributionOncePerCycle(t *testing.T) {
	svc, users, _, _ := newContributionFixture()
	users.users["m1"] = &models.User{ID: "m1", Name: "Test Member", Email: "m1@example.com", Role: "MEMBER"}

	if _, err := svc.Record(context.Background(), &RecordInput{UserID: "m1", Month: "2025-03"}); err != nil {
		t.Fatalf("first Record() error = %v", err)
	}

	_, err := svc.Record(context.Background(), &RecordInput{UserID: "m1", Month: "2025-03"})
	if !errors.Is(err, domain.ErrContributionExists) {
		t.Errorf("second Record() error = %v, want ErrContributionExists", err)
	}

	// A different cycle is fine
	if _, err := svc.Record(context.Background(), &RecordInput{UserID: "m1", Month: "2025-04"}); err != nil {
		t.Errorf("Record() for next cycle error = %v", err)
	}
}

func TestRecordContributionValidation(t *testing.T) {
	svc, users, _, _ := newContributionFixture()
	users.users["m1"] = &models.User{ID: "m1", Name: "Test Member", Email: "m1@example.com", Role: "MEMBER"}

	tests := []struct {
		name    string
		input   RecordInput
		wantErr error
	}{
		{"bad month format", RecordInput{UserID: "m1", Month: "March 2025"}, domain.ErrInvalidInput},
		{"missing month", RecordInput{UserID: "m1", Month: ""}, domain.ErrInvalidInput},
		{"unknown user", RecordInput{UserID: "ghost", Month: "2025-03"}, domain.ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), &tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Record() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInstallmentEntryDoesNotBlockContribution(t *testing.T) {
	svc, users, contribs, _ := newContributionFixture()
	users.users["m1"] = &models.User{ID: "m1", Name: "Test Member", Email: "m1@example.com", Role: "MEMBER"}

	// An installment entry in the same cycle is a different obligation
	contribs.entries = append(contribs.entries, &models.Contribution{
		ID: "inst-1", UserID: "m1", Month: "2025-03", Amount: 6000,
		Status: "PAID", Kind: "INSTALLMENT",
	})

	if _, err := svc.Record(context.Background(), &RecordInput{UserID: "m1", Month: "2025-03"}); err != nil {
		t.Errorf("Record() error = %v, want nil", err)
	}
}

func TestUserServiceCreatesSurnameCredential(t *testing.T) {
	users := newFakeUserRepo()
	meta := &fakeFundMetaRepo{}
	svc := NewUserService(users, meta)

	resp, err := svc.CreateMember(context.Background(), &CreateMemberInput{
		Name:       "Aravind Kumar",
		Email:      "Aravind@Example.com",
		JoinedDate: "2024-11-10",
	})
	if err != nil {
		t.Fatalf("CreateMember() error = %v", err)
	}

	if resp.Email != "aravind@example.com" {
		t.Errorf("email = %s, want lowercased", resp.Email)
	}
	if resp.Role != "MEMBER" {
		t.Errorf("role = %s, want MEMBER", resp.Role)
	}
	if got := resp.JoinedDate; got != time.Date(2024, 11, 10, 0, 0, 0, 0, time.UTC) {
		t.Errorf("joined date = %v", got)
	}

	stored := users.users[resp.ID]
	if stored.Password == "" || stored.Password == "kumar" {
		t.Error("expected a hashed credential, not empty or plaintext")
	}

	// Duplicate email is rejected
	_, err = svc.CreateMember(context.Background(), &CreateMemberInput{
		Name:  "Another Kumar",
		Email: "aravind@example.com",
	})
	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Errorf("duplicate CreateMember() error = %v, want ErrUserAlreadyExists", err)
	}
}

func TestUserServiceProtectsAdminAccount(t *testing.T) {
	users := newFakeUserRepo()
	meta := &fakeFundMetaRepo{}
	svc := NewUserService(users, meta)

	users.users["a1"] = &models.User{ID: "a1", Name: "Fund Administrator", Email: "admin@sirifund.local", Role: "ADMIN"}

	if err := svc.Delete(context.Background(), "a1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Delete(admin) error = %v, want ErrForbidden", err)
	}

	if err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrUserNotFound", err)
	}
}
