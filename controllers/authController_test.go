package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend/config"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func adminDoc(t *testing.T, password string) bson.D {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "username", Value: "admin"},
		{Key: "password", Value: hash},
		{Key: "createdAt", Value: primitive.NewDateTimeFromTime(time.Now())},
	}
}

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("wrong password creates no session", func(mt *mtest.T) {
		config.AdminCollection = mt.Coll
		config.SessionCollection = mt.Coll

		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, adminDoc(mt.T, "admin123")))

		r := gin.New()
		r.POST("/api/admin/login", Login)

		rr := postJSON(r, "/api/admin/login", gin.H{"password": "wrong-password"})

		if rr.Code != http.StatusUnauthorized {
			mt.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
		}

		// A rejected login must leave the sessions collection untouched.
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "insert" {
				mt.Error("failed login issued a session insert")
			}
		}
	})

	mt.Run("correct password returns a token", func(mt *mtest.T) {
		config.AdminCollection = mt.Coll
		config.SessionCollection = mt.Coll

		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, adminDoc(mt.T, "admin123")),
			mtest.CreateSuccessResponse(),
		)

		r := gin.New()
		r.POST("/api/admin/login", Login)

		rr := postJSON(r, "/api/admin/login", gin.H{"password": "admin123"})

		if rr.Code != http.StatusOK {
			mt.Fatalf("status = %d, want %d, body %s", rr.Code, http.StatusOK, rr.Body.String())
		}

		var resp struct {
			Success bool   `json:"success"`
			Token   string `json:"token"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			mt.Fatalf("invalid response body: %v", err)
		}
		if !resp.Success || resp.Token == "" {
			mt.Fatalf("response = %+v, want success with a token", resp)
		}
		if _, err := utils.ValidateToken(resp.Token); err != nil {
			mt.Errorf("issued token does not validate: %v", err)
		}

		sessionInserted := false
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "insert" {
				sessionInserted = true
			}
		}
		if !sessionInserted {
			mt.Error("successful login recorded no session")
		}
	})
}

func TestUpdatePasswordInvalidSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown or expired token yields 401", func(mt *mtest.T) {
		config.AdminCollection = mt.Coll
		config.SessionCollection = mt.Coll

		// The session query filters on expiresAt > now server-side, so an
		// expired record comes back as an empty batch.
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		r := gin.New()
		r.POST("/api/admin/update-password", UpdatePassword)

		rr := postJSON(r, "/api/admin/update-password", gin.H{
			"currentPassword": "admin123",
			"newPassword":     "stronger-password",
			"token":           "stale-token",
		})

		if rr.Code != http.StatusUnauthorized {
			mt.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
		}

		// Nothing may touch the credential after a failed session check.
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "update" {
				mt.Error("password update issued despite invalid session")
			}
		}
	})
}
