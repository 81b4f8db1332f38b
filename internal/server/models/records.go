package models

import "time"

type SensitiveRecord struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	DataType  string `json:"data_type"`
	DataValue string `json:"data_value"`
}

type InternalNote struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Note           string    `json:"note"`
	IsConfidential bool      `json:"is_confidential"`
	CreatedAt      time.Time `json:"created_at"`
}
