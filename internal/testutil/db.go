// Package testutil wires an in-memory database and signed-in requests for
// handler tests.
package testutil

import (
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"parms/internal/auth"
	"parms/internal/config"
	"parms/internal/database"
	"parms/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// OpenDB points database.DB at a fresh in-memory sqlite database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:parms_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func Config() *config.Config {
	return &config.Config{
		HTTPPort:      "0",
		JWTSecret:     strings.Repeat("s", 32),
		CORSOrigins:   "http://parms.test",
		PublicBaseURL: "http://parms.test",
		AgencyName:    "Republic of the Philippines",
		AgencyOffice:  "Property and Supply Management Office",
	}
}

func CreateUser(t *testing.T, name, email string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatal(err)
	}
	u := &models.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := database.DB.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func CreateLocation(t *testing.T, name string) *models.Location {
	t.Helper()
	l := &models.Location{Name: name}
	if err := database.DB.Create(l).Error; err != nil {
		t.Fatalf("create location: %v", err)
	}
	return l
}

func CreateCondition(t *testing.T, name string) *models.Condition {
	t.Helper()
	c := &models.Condition{Condition: name}
	if err := database.DB.Create(c).Error; err != nil {
		t.Fatalf("create condition: %v", err)
	}
	return c
}

func CreateProperty(t *testing.T, itemName string, loc *models.Location, cond *models.Condition, owner *models.User) *models.Property {
	t.Helper()
	p := &models.Property{
		PublicID:        fmt.Sprintf("00000000-0000-4000-8000-%012d", dbSeq.Add(1)),
		ItemName:        itemName,
		Quantity:        1,
		AcquisitionCost: decimal.NewFromInt(1000),
		Fund:            models.Funds[0],
		LocationID:      loc.ID,
		ConditionID:     cond.ID,
		UserID:          owner.ID,
	}
	p.PropertyNumber = "PN-" + p.PublicID[len(p.PublicID)-4:]
	p.QRCodeURL = "http://parms.test/p/" + p.PublicID
	if err := database.DB.Create(p).Error; err != nil {
		t.Fatalf("create property: %v", err)
	}
	return p
}

// Authorize signs req in as u through the token cookie.
func Authorize(t *testing.T, cfg *config.Config, req *http.Request, u *models.User) *http.Request {
	t.Helper()
	token, err := auth.GenerateToken(cfg.JWTSecret, u)
	if err != nil {
		t.Fatal(err)
	}
	req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: token})
	return req
}
