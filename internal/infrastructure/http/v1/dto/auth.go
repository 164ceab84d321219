package dto

import "time"

// LoginRequest for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the employee it belongs to.
type LoginResponse struct {
	Token      string    `json:"token"`
	ExpiresAt  time.Time `json:"expiresAt"`
	EmployeeID int       `json:"employeeId"`
	Username   string    `json:"username"`
	Position   string    `json:"position"`
}

// SessionResponse for GET /auth/session.
type SessionResponse struct {
	EmployeeID int    `json:"employeeId"`
	Username   string `json:"username"`
	Position   string `json:"position"`
}
