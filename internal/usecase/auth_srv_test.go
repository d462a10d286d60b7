package usecase_test

import (
	"context"
	"errors"
	"testing"

	"plantnet/internal/data/entity"
	"plantnet/internal/dto/request"
	"plantnet/internal/usecase"
)

func TestIssueAndVerifyCredential(t *testing.T) {
	f := newFixture(t, false)

	token, expiresAt, err := f.svc.Auth.IssueCredential(context.Background(), &request.IssueTokenRequest{Email: "A@Example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if token == "" || expiresAt.IsZero() {
		t.Fatalf("token=%q expiresAt=%v", token, expiresAt)
	}

	email, err := f.svc.Auth.VerifyCredential(token)
	if err != nil {
		t.Fatal(err)
	}
	if email != "a@example.com" {
		t.Errorf("email = %q, want a@example.com", email)
	}

	if _, err := f.svc.Auth.VerifyCredential(token + "x"); !errors.Is(err, usecase.ErrUnauthenticated) {
		t.Errorf("tampered token err = %v, want ErrUnauthenticated", err)
	}
}

func TestIssueCredentialRejectsBadEmail(t *testing.T) {
	f := newFixture(t, false)

	_, _, err := f.svc.Auth.IssueCredential(context.Background(), &request.IssueTokenRequest{Email: "not-an-email"})
	if !errors.Is(err, usecase.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAuthorize(t *testing.T) {
	f := newFixture(t, false)
	f.addUser("admin@example.com", entity.RoleAdmin)
	f.addUser("seller@example.com", entity.RoleSeller)
	f.addUser("customer@example.com", entity.RoleCustomer)

	tests := []struct {
		email      string
		capability usecase.Capability
		allowed    bool
	}{
		{"admin@example.com", usecase.CapabilityAdmin, true},
		{"admin@example.com", usecase.CapabilitySeller, false},
		{"seller@example.com", usecase.CapabilitySeller, true},
		{"seller@example.com", usecase.CapabilityAdmin, false},
		{"customer@example.com", usecase.CapabilitySeller, false},
		{"ghost@example.com", usecase.CapabilityAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.email+"/"+string(tt.capability), func(t *testing.T) {
			decision, err := f.svc.Auth.Authorize(context.Background(), tt.email, tt.capability)
			if err != nil {
				t.Fatal(err)
			}
			if decision.Allowed != tt.allowed {
				t.Errorf("allowed = %v, want %v (reason %q)", decision.Allowed, tt.allowed, decision.Reason)
			}
			if !decision.Allowed && decision.Reason == "" {
				t.Error("denied decision without reason")
			}
		})
	}
}

func TestAuthorizeSeesRoleChangeImmediately(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.addUser("admin@example.com", entity.RoleAdmin)
	f.addUser("a@example.com", entity.RoleCustomer)

	before, _ := f.svc.Auth.Authorize(ctx, "a@example.com", usecase.CapabilitySeller)
	if before.Allowed {
		t.Fatal("customer allowed as seller")
	}

	if err := f.svc.User.ApproveRoleChange(ctx, "admin@example.com", "a@example.com",
		&request.UpdateRoleRequest{Role: "seller"}); err != nil {
		t.Fatal(err)
	}

	after, err := f.svc.Auth.Authorize(ctx, "a@example.com", usecase.CapabilitySeller)
	if err != nil {
		t.Fatal(err)
	}
	if !after.Allowed {
		t.Errorf("seller capability denied after grant: %q", after.Reason)
	}
}
