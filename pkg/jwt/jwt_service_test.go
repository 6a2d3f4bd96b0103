package jwt

import (
	"errors"
	"testing"

	"github.com/fe46t78ujiniyh8/restaurant-management-system/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	service := NewJWTService()

	token := service.GenerateTokenUser("42", domain.RoleStaff)
	if token == "" {
		t.Fatal("empty token")
	}

	userID, role, err := service.GetUserIDByToken(token)
	if err != nil {
		t.Fatalf("GetUserIDByToken: %v", err)
	}
	if userID != "42" {
		t.Fatalf("user id = %q, want 42", userID)
	}
	if role != domain.RoleStaff {
		t.Fatalf("role = %q, want staff", role)
	}
}

func TestInvalidToken(t *testing.T) {
	service := NewJWTService()

	_, _, err := service.GetUserIDByToken("not.a.token")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}
