package model

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is stored as a native text[] on Postgres and as the array literal text elsewhere.
type StringList []string

// Value implements driver.Valuer using the Postgres array literal encoding.
func (s StringList) Value() (driver.Value, error) {
	return pq.StringArray(s).Value()
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(src interface{}) error {
	return (*pq.StringArray)(s).Scan(src)
}

// GormDataType keeps the schema parser from treating the slice as a relation.
func (StringList) GormDataType() string {
	return "text"
}

// GormDBDataType picks the column type per dialect.
func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// GeoPoint is a WGS84 point written as EWKT ("SRID=4326;POINT(lng lat)"). Postgres stores it in a
// geography column and returns hex EWKB, which Scan turns back into EWKT.
type GeoPoint string

func (GeoPoint) GormDataType() string {
	return "text"
}

func (GeoPoint) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "geography(Point,4326)"
	}
	return "text"
}

func (p GeoPoint) Value() (driver.Value, error) {
	return string(p), nil
}

func (p *GeoPoint) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*p = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into GeoPoint", src)
	}

	if strings.HasPrefix(raw, "SRID=") || strings.HasPrefix(raw, "POINT") {
		*p = GeoPoint(raw)
		return nil
	}
	ewkt, err := pointFromHexEWKB(raw)
	if err != nil {
		return err
	}
	*p = GeoPoint(ewkt)
	return nil
}

const (
	wkbPointType = 1
	wkbSRIDFlag  = 0x20000000
)

func pointFromHexEWKB(raw string) (string, error) {
	b, err := hex.DecodeString(raw)
	if err != nil || len(b) < 21 {
		return "", fmt.Errorf("invalid point EWKB %q", raw)
	}

	var order binary.ByteOrder = binary.BigEndian
	if b[0] == 1 {
		order = binary.LittleEndian
	}
	typ := order.Uint32(b[1:5])
	if typ&0xff != wkbPointType {
		return "", fmt.Errorf("EWKB geometry type %d is not a point", typ&0xff)
	}

	rest := b[5:]
	srid := uint32(4326)
	if typ&wkbSRIDFlag != 0 {
		if len(rest) < 20 {
			return "", fmt.Errorf("invalid point EWKB %q", raw)
		}
		srid = order.Uint32(rest[:4])
		rest = rest[4:]
	}
	if len(rest) < 16 {
		return "", fmt.Errorf("invalid point EWKB %q", raw)
	}
	x := math.Float64frombits(order.Uint64(rest[:8]))
	y := math.Float64frombits(order.Uint64(rest[8:16]))

	return fmt.Sprintf("SRID=%d;POINT(%s %s)", srid,
		strconv.FormatFloat(x, 'f', -1, 64), strconv.FormatFloat(y, 'f', -1, 64)), nil
}

// SocialLinks holds the public contact channels of a venue.
type SocialLinks struct {
	Phone     string `json:"phone"`
	WhatsApp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Website   string `json:"website"`
}

// DaySchedule is the opening window of one weekday ("09:00"-"20:00").
type DaySchedule struct {
	IsOpen bool   `json:"is_open"`
	Open   string `json:"open"`
	Close  string `json:"close"`
}

// WorkingHours is keyed by lowercase English weekday ("monday" ... "sunday").
type WorkingHours map[string]DaySchedule

var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

type Accessibility struct {
	Wheelchair      bool `json:"wheelchair"`
	Parking         bool `json:"parking"`
	WiFi            bool `json:"wifi"`
	AirConditioning bool `json:"air_conditioning"`
}

type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ExpertMember is the denormalised specialist summary kept on the venue row.
type ExpertMember struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}
