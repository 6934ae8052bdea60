package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrVenueNotFound      = errors.New("venue not found")
	ErrSpecialistNotFound = errors.New("specialist not found")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrInvalidPlan        = errors.New("invalid subscription plan")
	ErrPushNotConfigured  = errors.New("FCM_SERVER_KEY not set")
)

// ValidationError lists the offending request fields. Nothing has been written when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// StoreError wraps any failed read or write against the relational store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// UploadError is returned when object storage rejects a photo upload.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// storeError wraps err for op, translating gorm.ErrRecordNotFound into notFound when given.
func storeError(op string, err error, notFound error) error {
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		err = notFound
	}
	return &StoreError{Op: op, Err: err}
}

// IsNotFound reports whether err wraps one of the not-found sentinels or gorm.ErrRecordNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrVenueNotFound) ||
		errors.Is(err, ErrSpecialistNotFound) ||
		errors.Is(err, ErrPhotoNotFound) ||
		errors.Is(err, gorm.ErrRecordNotFound)
}
