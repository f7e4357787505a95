package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sathwik/snapstack/pkg/snapstack/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)
	return r
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestPasswordHashing(t *testing.T) {
	password := "testpassword123"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if hash == password {
		t.Error("Hash should not equal plain password")
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword should return true for correct password")
	}

	if CheckPassword("wrongpassword", hash) {
		t.Error("CheckPassword should return false for incorrect password")
	}
}

func TestJWTToken(t *testing.T) {
	token, err := GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("Expected UserID 42, got %d", claims.UserID)
	}
}

func TestInvalidToken(t *testing.T) {
	_, err := ValidateToken("invalid-token")
	if err == nil {
		t.Error("Expected error for invalid token")
	}
}

func TestSignup(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	resp := postJSON(router, "/api/v1/signup", SignupRequest{
		Username: "ana",
		Email:    "ana@x.com",
		Password: "longpass1",
	})

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response["message"] != "signup successful" {
		t.Errorf("Expected signup confirmation, got %q", response["message"])
	}
	if response["token"] != "" {
		t.Error("Signup should not issue a token")
	}

	var user models.User
	if err := db.Where("username = ?", "ana").First(&user).Error; err != nil {
		t.Fatalf("Expected user row to exist: %v", err)
	}
	if user.PasswordHash == "longpass1" {
		t.Error("Password must not be stored in plaintext")
	}
}

func TestSignupInvalidBody(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	cases := []SignupRequest{
		{Username: "ana", Email: "not-an-email", Password: "longpass1"},
		{Username: "ana", Email: "ana@x.com", Password: "short"},
		{Email: "ana@x.com", Password: "longpass1"},
	}

	for _, body := range cases {
		resp := postJSON(router, "/api/v1/signup", body)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for %+v, got %d", body, resp.Code)
		}
	}
}

func TestSignupDuplicate(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	first := SignupRequest{Username: "ana", Email: "ana@x.com", Password: "longpass1"}
	if resp := postJSON(router, "/api/v1/signup", first); resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.Code)
	}

	// Same username, different email
	resp := postJSON(router, "/api/v1/signup", SignupRequest{
		Username: "ana", Email: "other@x.com", Password: "longpass1",
	})
	if resp.Code != http.StatusLengthRequired {
		t.Errorf("Expected status 411 for duplicate username, got %d", resp.Code)
	}

	// Same email, different username
	resp = postJSON(router, "/api/v1/signup", SignupRequest{
		Username: "bob", Email: "ana@x.com", Password: "longpass1",
	})
	if resp.Code != http.StatusLengthRequired {
		t.Errorf("Expected status 411 for duplicate email, got %d", resp.Code)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 user row, got %d", count)
	}
}

func TestSignupThenSignin(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	postJSON(router, "/api/v1/signup", SignupRequest{
		Username: "ana", Email: "ana@x.com", Password: "longpass1",
	})

	resp := postJSON(router, "/api/v1/signin", SigninRequest{
		Email: "ana@x.com", Password: "longpass1",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response["token"] == "" {
		t.Fatal("Expected token in signin response")
	}

	claims, err := ValidateToken(response["token"])
	if err != nil {
		t.Fatalf("Signin token should validate: %v", err)
	}

	var user models.User
	db.Where("username = ?", "ana").First(&user)
	if claims.UserID != user.ID {
		t.Errorf("Token id %d does not match created user %d", claims.UserID, user.ID)
	}
}

func TestSigninByUsername(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	postJSON(router, "/api/v1/signup", SignupRequest{
		Username: "ana", Email: "ana@x.com", Password: "longpass1",
	})

	resp := postJSON(router, "/api/v1/signin", SigninRequest{
		Username: "ana", Password: "longpass1",
	})
	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestSigninWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	postJSON(router, "/api/v1/signup", SignupRequest{
		Username: "ana", Email: "ana@x.com", Password: "longpass1",
	})

	resp := postJSON(router, "/api/v1/signin", SigninRequest{
		Email: "ana@x.com", Password: "wrongpass1",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", resp.Code)
	}

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response["message"] != "Incorrect Credentials" {
		t.Errorf("Wrong password on an existing user must report Incorrect Credentials, got %q", response["message"])
	}
}

func TestSigninUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	resp := postJSON(router, "/api/v1/signin", SigninRequest{
		Email: "nobody@x.com", Password: "longpass1",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("Expected status 401, got %d", resp.Code)
	}

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response["message"] != "User not found" {
		t.Errorf("Expected User not found, got %q", response["message"])
	}
}

func TestSigninMissingIdentifier(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	resp := postJSON(router, "/api/v1/signin", SigninRequest{Password: "longpass1"})
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without username or email, got %d", resp.Code)
	}
}

func TestMe(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	hash, _ := HashPassword("longpass1")
	user := models.User{Username: "ana", Email: "ana@x.com", PasswordHash: hash}
	db.Create(&user)
	token, _ := GenerateToken(user.ID)

	req, _ := http.NewRequest("GET", "/api/v1/me", nil)
	req.Header.Set("Authorization", token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var response UserResponse
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response.Username != "ana" || response.Email != "ana@x.com" {
		t.Errorf("Unexpected profile: %+v", response)
	}
}

func TestMeRequiresAuth(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("GET", "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 without token, got %d", resp.Code)
	}

	req, _ = http.NewRequest("GET", "/api/v1/me", nil)
	req.Header.Set("Authorization", "garbage")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for malformed token, got %d", resp.Code)
	}
}

func TestBearerPrefixRejected(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	hash, _ := HashPassword("longpass1")
	user := models.User{Username: "ana", Email: "ana@x.com", PasswordHash: hash}
	db.Create(&user)
	token, _ := GenerateToken(user.ID)

	// The header value is the bare token; a Bearer prefix is not stripped.
	req, _ := http.NewRequest("GET", "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for Bearer-prefixed header, got %d", resp.Code)
	}
}
