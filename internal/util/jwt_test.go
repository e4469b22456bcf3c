package util

import (
	"testing"
	"time"

	"quizhub_backend/internal/model"
)

func testUser() *model.User {
	return &model.User{
		BaseModel: model.BaseModel{ID: 42},
		Username:  "alex",
		Email:     "alex@example.com",
		FullName:  "Alex Nguyen",
		Roles:     []model.Role{{Name: model.RoleUser}, {Name: model.RoleAdmin}},
	}
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(testUser(), "secret", "issuer", "audience", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, "secret", "issuer", "audience")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "alex" {
		t.Errorf("Username = %q, want alex", claims.Username)
	}
	if len(claims.Roles) != 2 {
		t.Fatalf("Roles = %v, want two entries", claims.Roles)
	}
	if !claims.IsAdmin() {
		t.Error("IsAdmin() = false for a user holding the Admin role")
	}
	if claims.ID == "" {
		t.Error("token id (jti) not set")
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, _ := GenerateJWT(testUser(), "secret", "issuer", "audience", time.Hour)
	if _, err := ParseJWT(token, "other-secret", "issuer", "audience"); err == nil {
		t.Fatal("token accepted with the wrong secret")
	}
}

func TestParseJWTRejectsWrongIssuerOrAudience(t *testing.T) {
	token, _ := GenerateJWT(testUser(), "secret", "issuer", "audience", time.Hour)

	if _, err := ParseJWT(token, "secret", "someone-else", "audience"); err == nil {
		t.Fatal("token accepted with the wrong issuer")
	}
	if _, err := ParseJWT(token, "secret", "issuer", "other-app"); err == nil {
		t.Fatal("token accepted with the wrong audience")
	}
}

func TestParseJWTRejectsExpired(t *testing.T) {
	token, _ := GenerateJWT(testUser(), "secret", "issuer", "audience", -time.Minute)
	if _, err := ParseJWT(token, "secret", "issuer", "audience"); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestIsAdmin(t *testing.T) {
	plain := &Claims{Roles: []string{model.RoleUser}}
	if plain.IsAdmin() {
		t.Error("plain user reported as admin")
	}
	none := &Claims{}
	if none.IsAdmin() {
		t.Error("claims without roles reported as admin")
	}
}
