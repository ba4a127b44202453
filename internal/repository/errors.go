// Package repository implements data access over database/sql for the
// train directory, schedules, seat counters, tickets and users. Every
// method returns errors wrapped with the kinds declared in package model
// so that handlers can classify them with errors.Is.
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/train-booking/internal/model"
)

// storageErr wraps a driver error as model.ErrStorage while keeping the
// driver message. sql.ErrNoRows becomes model.ErrNotFound.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", model.ErrNotFound, op)
	}
	return fmt.Errorf("%w: %s: %v", model.ErrStorage, op, err)
}

// nullString converts a nullable column into the pointer form used by the
// model structs.
func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
