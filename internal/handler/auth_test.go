package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newMultipartRegisterRequest(t *testing.T, fields map[string]string, avatar []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			t.Fatalf("failed to write field %q: %v", name, err)
		}
	}
	if avatar != nil {
		fw, err := mw.CreateFormFile("avatar", "avatar.jpg")
		if err != nil {
			t.Fatalf("failed to create avatar part: %v", err)
		}
		if _, err := fw.Write(avatar); err != nil {
			t.Fatalf("failed to write avatar bytes: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestDecodeRegisterRequest_Multipart(t *testing.T) {
	req := newMultipartRegisterRequest(t, map[string]string{
		"username": "johndoe",
		"email":    "john@example.com",
		"fullName": "John Doe",
		"password": "password123",
	}, nil)

	decoded, file, header, err := decodeRegisterRequest(req)
	if err != nil {
		t.Fatalf("decodeRegisterRequest() error: %v", err)
	}
	if file != nil || header != nil {
		t.Errorf("expected no avatar file, got file=%v header=%v", file, header)
	}
	if decoded.Username != "johndoe" ||
		decoded.Email != "john@example.com" ||
		decoded.FullName != "John Doe" ||
		decoded.Password != "password123" {
		t.Errorf("multipart fields lost: got %+v", *decoded)
	}
}

func TestDecodeRegisterRequest_MultipartWithAvatar(t *testing.T) {
	avatar := []byte("fake image bytes")
	req := newMultipartRegisterRequest(t, map[string]string{
		"username": "johndoe",
		"email":    "john@example.com",
		"fullName": "John Doe",
		"password": "password123",
	}, avatar)

	decoded, file, header, err := decodeRegisterRequest(req)
	if err != nil {
		t.Fatalf("decodeRegisterRequest() error: %v", err)
	}
	if decoded.Username != "johndoe" {
		t.Errorf("username = %q, want %q", decoded.Username, "johndoe")
	}
	if file == nil || header == nil {
		t.Fatal("expected the avatar part to be returned")
	}
	defer file.Close()

	if header.Filename != "avatar.jpg" {
		t.Errorf("avatar filename = %q, want %q", header.Filename, "avatar.jpg")
	}
	got, err := io.ReadAll(file)
	if err != nil {
		t.Fatalf("failed to read avatar file: %v", err)
	}
	if !bytes.Equal(got, avatar) {
		t.Errorf("avatar bytes = %q, want %q", got, avatar)
	}
}

func TestDecodeRegisterRequest_JSON(t *testing.T) {
	body := `{"username":"johndoe","email":"john@example.com","fullName":"John Doe","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	decoded, file, _, err := decodeRegisterRequest(req)
	if err != nil {
		t.Fatalf("decodeRegisterRequest() error: %v", err)
	}
	if file != nil {
		t.Error("JSON body should never carry an avatar file")
	}
	if decoded.Username != "johndoe" || decoded.Email != "john@example.com" {
		t.Errorf("JSON fields lost: got %+v", *decoded)
	}
}

func TestDecodeRegisterRequest_URLEncodedForm(t *testing.T) {
	body := "username=johndoe&email=john%40example.com&fullName=John+Doe&password=password123"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	decoded, _, _, err := decodeRegisterRequest(req)
	if err != nil {
		t.Fatalf("decodeRegisterRequest() error: %v", err)
	}
	if decoded.Username != "johndoe" ||
		decoded.Email != "john@example.com" ||
		decoded.FullName != "John Doe" ||
		decoded.Password != "password123" {
		t.Errorf("form fields lost: got %+v", *decoded)
	}
}
