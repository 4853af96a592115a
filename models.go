package main

import (
	"time"

	"lg/smartbite-go-api/internal/energy"
)

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

/* ─── Request types ──────────────────────────────────────────────────── */

// goalRequest is the body for PATCH /api/profile/goal.
type goalRequest struct {
	Goal energy.Goal `json:"goal"`
}

// createMealRequest is the body for POST /api/meals. Calories is a pointer
// so a missing value can be told apart from 0. Image is an optional photo as
// a base64 data URL.
type createMealRequest struct {
	Name     string `json:"name"`
	Calories *int   `json:"calories"`
	Portion  string `json:"portion"`
	Image    string `json:"image"`
}
