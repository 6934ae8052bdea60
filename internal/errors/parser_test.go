package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		context string
		code    string
	}{
		{name: "Nil error", err: nil, code: InternalServerError},
		{name: "Record not found", err: fmt.Errorf("load venue: %w", gorm.ErrRecordNotFound), context: "venue", code: VenueNotFound},
		{name: "Specialist sentinel", err: errors.New("update specialist: specialist not found: abc"), context: "specialist", code: SpecialistNotFound},
		{name: "Postgres duplicate", err: errors.New(`ERROR: duplicate key value violates unique constraint "venue_services_pkey" (SQLSTATE 23505)`), code: ResourceAlreadyExists},
		{name: "Postgres category FK", err: errors.New(`ERROR: insert or update on table "venues" violates foreign key constraint "fk_venues_category" (SQLSTATE 23503)`), code: VenueReferenceNotFound},
		{name: "SQLite FK", err: errors.New("FOREIGN KEY constraint failed"), code: VenueReferenceNotFound},
		{name: "SQLite not null", err: errors.New("NOT NULL constraint failed: venues.name"), code: ValidationRequired},
		{name: "Connection refused", err: errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), code: InternalExternalAPI},
		{name: "Unknown", err: errors.New("boom"), context: "venue", code: InternalDatabaseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.code, info.Code)
			assert.NotEmpty(t, info.Message)
		})
	}
}
