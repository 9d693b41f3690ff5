package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Date handles date-only fields in the YYYY-MM-DD wire format.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
	}
	d.Time = t
	return nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	case nil:
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// SubmissionMeta is the shared envelope of every lead-form record: the
// original request body is kept verbatim for auditability.
type SubmissionMeta struct {
	ID         int64           `db:"id"          json:"id"`
	RawPayload json.RawMessage `db:"raw_payload" json:"raw_payload,omitempty"`
	CreatedAt  time.Time       `db:"created_at"  json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"  json:"updated_at"`
}

func (m *SubmissionMeta) SetRawPayload(raw json.RawMessage) {
	m.RawPayload = raw
}

func (m *SubmissionMeta) GetRawPayload() json.RawMessage {
	return m.RawPayload
}

// RawPayloadSetter is implemented by all lead-form records.
type RawPayloadSetter interface {
	SetRawPayload(json.RawMessage)
}

// CustomerSupport stores data submitted via /api/customer-support.
type CustomerSupport struct {
	SubmissionMeta
	Name          string `db:"name"           json:"name"            validate:"omitempty,max=255"`
	Email         string `db:"email"          json:"email"           validate:"omitempty,email"`
	ContactNumber string `db:"contact_number" json:"contact_number"  validate:"required,max=64"`
	CompanyName   string `db:"company_name"   json:"company_name"    validate:"omitempty,max=255"`
	State         string `db:"state"          json:"state"           validate:"omitempty,max=128"`
	City          string `db:"city"           json:"city"            validate:"omitempty,max=128"`
	VehicleType   string `db:"vehicle_type"   json:"vehicle_type"    validate:"omitempty,max=255"`
	Message       string `db:"message"        json:"message"`
	Consent1      bool   `db:"consent1"       json:"consent1"`
	Consent2      bool   `db:"consent2"       json:"consent2"`
}

// RequestDemo stores data submitted via /api/request-demo.
type RequestDemo struct {
	SubmissionMeta
	Name             string   `db:"name"              json:"name"              validate:"omitempty,max=255"`
	CompanyName      string   `db:"company_name"      json:"company_name"      validate:"omitempty,max=255"`
	Designation      string   `db:"designation"       json:"designation"       validate:"omitempty,max=255"`
	ContactNumber    string   `db:"contact_number"    json:"contact_number"    validate:"omitempty,max=64"`
	AlternateNumber  string   `db:"alternate_number"  json:"alternate_number"  validate:"omitempty,max=64"`
	Email            string   `db:"email"             json:"email"             validate:"omitempty,email"`
	Address          string   `db:"address"           json:"address"`
	City             string   `db:"city"              json:"city"              validate:"omitempty,max=128"`
	State            string   `db:"state"             json:"state"             validate:"omitempty,max=128"`
	VehicleTypes     []string `db:"vehicle_types"     json:"vehicle_types"`
	VehicleOther     string   `db:"vehicle_other"     json:"vehicle_other"     validate:"omitempty,max=255"`
	Applications     []string `db:"applications"      json:"applications"`
	ApplicationOther string   `db:"application_other" json:"application_other" validate:"omitempty,max=255"`
	FleetSize        string   `db:"fleet_size"        json:"fleet_size"        validate:"omitempty,max=128"`
	Timeline         string   `db:"timeline"          json:"timeline"          validate:"omitempty,max=128"`
	ProcurementMode  string   `db:"procurement_mode"  json:"procurement_mode"  validate:"omitempty,max=128"`
	AdditionalInfo   string   `db:"additional_info"   json:"additional_info"`
	Consent          bool     `db:"consent"           json:"consent"`
	RequestedDate    *Date    `db:"requested_date"    json:"requested_date,omitempty"`
}

// DealershipEnquiry stores data submitted via /api/dealership-enquiry.
type DealershipEnquiry struct {
	SubmissionMeta
	Name               string   `db:"name"                json:"name"                validate:"omitempty,max=255"`
	CompanyName        string   `db:"company_name"        json:"company_name"        validate:"omitempty,max=255"`
	Address            string   `db:"address"             json:"address"`
	City               string   `db:"city"                json:"city"                validate:"omitempty,max=128"`
	State              string   `db:"state"               json:"state"               validate:"omitempty,max=128"`
	Pincode            string   `db:"pincode"             json:"pincode"             validate:"omitempty,max=20"`
	ContactNumber      string   `db:"contact_number"      json:"contact_number"      validate:"omitempty,max=64"`
	AlternateNumber    string   `db:"alternate_number"    json:"alternate_number"    validate:"omitempty,max=64"`
	Email              string   `db:"email"               json:"email"               validate:"omitempty,email"`
	Website            string   `db:"website"             json:"website"             validate:"omitempty,max=255"`
	CurrentBusiness    string   `db:"current_business"    json:"current_business"    validate:"omitempty,max=255"`
	Experience         *int     `db:"experience"          json:"experience,omitempty" validate:"omitempty,gte=0"`
	ProposedTerritory  string   `db:"proposed_territory"  json:"proposed_territory"  validate:"omitempty,max=255"`
	FirmTurnover       *int64   `db:"firm_turnover"       json:"firm_turnover,omitempty"`
	InvestmentCapacity *int64   `db:"investment_capacity" json:"investment_capacity,omitempty"`
	Infrastructure     []string `db:"infrastructure"      json:"infrastructure"`
	ReasonForInterest  string   `db:"reason_for_interest" json:"reason_for_interest"`
	OtherInfo          string   `db:"other_info"          json:"other_info"`
}

// CustomerFeedback stores feedback submitted via /api/feedback.
type CustomerFeedback struct {
	SubmissionMeta
	Name                   string         `db:"name"                     json:"name"            validate:"omitempty,max=255"`
	CompanyName            string         `db:"company_name"             json:"company_name"    validate:"omitempty,max=255"`
	ContactNumber          string         `db:"contact_number"           json:"contact_number"  validate:"omitempty,max=64"`
	Email                  string         `db:"email"                    json:"email"           validate:"omitempty,email"`
	State                  string         `db:"state"                    json:"state"           validate:"omitempty,max=128"`
	City                   string         `db:"city"                     json:"city"            validate:"omitempty,max=128"`
	ModelName              string         `db:"model_name"               json:"model_name"      validate:"omitempty,max=255"`
	VehicleType            string         `db:"vehicle_type"             json:"vehicle_type"    validate:"omitempty,max=255"`
	VehicleOther           string         `db:"vehicle_other"            json:"vehicle_other"   validate:"omitempty,max=255"`
	VehiclePerformance     map[string]any `db:"vehicle_performance"      json:"vehicle_performance"`
	SalesServiceExperience map[string]any `db:"sales_service_experience" json:"sales_service_experience"`
	OpenFeedback           map[string]any `db:"open_feedback"            json:"open_feedback"`
}

// TestDriveBooking stores bookings submitted via /api/testdrive-booking.
type TestDriveBooking struct {
	SubmissionMeta
	Name                 string   `db:"name"                   json:"name"                   validate:"omitempty,max=255"`
	CompanyName          string   `db:"company_name"           json:"company_name"           validate:"omitempty,max=255"`
	ContactNumber        string   `db:"contact_number"         json:"contact_number"         validate:"omitempty,max=64"`
	Email                string   `db:"email"                  json:"email"                  validate:"omitempty,email"`
	State                string   `db:"state"                  json:"state"                  validate:"omitempty,max=128"`
	City                 string   `db:"city"                   json:"city"                   validate:"omitempty,max=128"`
	VehicleTypes         []string `db:"vehicle_types"          json:"vehicle_types"`
	VehicleOther         string   `db:"vehicle_other"          json:"vehicle_other"          validate:"omitempty,max=255"`
	TimeSlot             string   `db:"time_slot"              json:"time_slot"              validate:"omitempty,max=128"`
	BusinessSegment      string   `db:"business_segment"       json:"business_segment"       validate:"omitempty,max=255"`
	BusinessSegmentOther string   `db:"business_segment_other" json:"business_segment_other" validate:"omitempty,max=255"`
	Consent              bool     `db:"consent"                json:"consent"`
	TestDriveDate        *Date    `db:"test_drive_date"        json:"test_drive_date,omitempty"`
}

// DownloadBrochure stores requests submitted via /api/download-brochure.
type DownloadBrochure struct {
	SubmissionMeta
	Name          string `db:"name"           json:"name"           validate:"omitempty,max=255"`
	CompanyName   string `db:"company_name"   json:"company_name"   validate:"omitempty,max=255"`
	ContactNumber string `db:"contact_number" json:"contact_number" validate:"omitempty,max=64"`
	Email         string `db:"email"          json:"email"          validate:"omitempty,email"`
}
