package repository

import (
	"context"
	"encoding/json"
	"errors"

	"evcms/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The six lead-form tables share the exact same access pattern (public
// create, admin list/get/update/delete), so the read-side plumbing lives in
// one generic helper; only the insert/update column lists are per-table.
type enquiryTable[T any] struct {
	db    *pgxpool.Pool
	table string
}

func (t enquiryTable[T]) List(ctx context.Context, limit, offset int) ([]*T, int, error) {
	var total int
	if err := t.db.QueryRow(ctx, `SELECT COUNT(*) FROM `+t.table).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := t.db.Query(ctx,
		`SELECT * FROM `+t.table+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (t enquiryTable[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	rows, err := t.db.Query(ctx, `SELECT * FROM `+t.table+` WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	rec, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (t enquiryTable[T]) Delete(ctx context.Context, id int64) error {
	tag, err := t.db.Exec(ctx, `DELETE FROM `+t.table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// returning runs an INSERT/UPDATE ... RETURNING * statement.
func (t enquiryTable[T]) returning(ctx context.Context, q string, args ...interface{}) (*T, error) {
	rows, err := t.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	rec, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translateErr(err)
	}
	return rec, nil
}

func mustJSON(v interface{}) []byte {
	if v == nil {
		return []byte("null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return b
}

// --- customer_support ---

type CustomerSupportRepo struct {
	enquiryTable[models.CustomerSupport]
}

func NewCustomerSupportRepo(db *pgxpool.Pool) *CustomerSupportRepo {
	return &CustomerSupportRepo{enquiryTable[models.CustomerSupport]{db: db, table: "customer_support"}}
}

const customerSupportCols = `name, email, contact_number, company_name, state, city,
	vehicle_type, message, consent1, consent2, raw_payload`

func (r *CustomerSupportRepo) Create(ctx context.Context, rec *models.CustomerSupport) (*models.CustomerSupport, error) {
	q := `INSERT INTO customer_support (` + customerSupportCols + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11::jsonb) RETURNING *`
	return r.returning(ctx, q,
		rec.Name, rec.Email, rec.ContactNumber, rec.CompanyName, rec.State, rec.City,
		rec.VehicleType, rec.Message, rec.Consent1, rec.Consent2, []byte(rec.RawPayload),
	)
}

func (r *CustomerSupportRepo) Update(ctx context.Context, id int64, rec *models.CustomerSupport) (*models.CustomerSupport, error) {
	q := `UPDATE customer_support SET
		name=$1, email=$2, contact_number=$3, company_name=$4, state=$5, city=$6,
		vehicle_type=$7, message=$8, consent1=$9, consent2=$10, updated_at=NOW()
		WHERE id=$11 RETURNING *`
	return r.returning(ctx, q,
		rec.Name, rec.Email, rec.ContactNumber, rec.CompanyName, rec.State, rec.City,
		rec.VehicleType, rec.Message, rec.Consent1, rec.Consent2, id,
	)
}

// --- request_demo ---

type RequestDemoRepo struct {
	enquiryTable[models.RequestDemo]
}

func NewRequestDemoRepo(db *pgxpool.Pool) *RequestDemoRepo {
	return &RequestDemoRepo{enquiryTable[models.RequestDemo]{db: db, table: "request_demo"}}
}

func (r *RequestDemoRepo) Create(ctx context.Context, rec *models.RequestDemo) (*models.RequestDemo, error) {
	q := `INSERT INTO request_demo (
			name, company_name, designation, contact_number, alternate_number, email,
			address, city, state, vehicle_types, vehicle_other, applications,
			application_other, fleet_size, timeline, procurement_mode, additional_info,
			consent, requested_date, raw_payload
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10::jsonb,$11,$12::jsonb,$13,$14,$15,$16,$17,$18,$19,$20::jsonb)
		RETURNING *`
	return r.returning(ctx, q,
		rec.Name, rec.CompanyName, rec.Designation, rec.ContactNumber, rec.AlternateNumber, rec.Email,
		rec.Address, rec.City, rec.State, mustJSON(rec.VehicleTypes), rec.VehicleOther, mustJSON(rec.Applications),
		rec.ApplicationOther, rec.FleetSize, rec.Timeline, rec.ProcurementMode, rec.AdditionalInfo,
		rec.Consent, rec.RequestedDate, []byte(rec.RawPayload),
	)
}

func (r *RequestDemoRepo) Update(ctx context.Context, id int64, rec *models.RequestDemo) (*models.RequestDemo, error) {
	q := `UPDATE request_demo SET
		name=$1, company_name=$2, designation=$3, contact_number=$4, alternate_number=$5,
		email=$6, address=$7, city=$8, state=$9, vehicle_types=$10::jsonb, vehicle_other=$11,
		applications=$12::jsonb, application_other=$13, fleet_size=$14, timeline=$15,
		procurement_mode=$16, additional_info=$17, consent=$18, requested_date=$19, updated_at=NOW()
		WHERE id=$20 RETURNING *`
	return r.returning(ctx, q,
		rec.Name, rec.CompanyName, rec.Designation, rec.ContactNumber, rec.AlternateNumber,
		rec.Email, rec.Address, rec.City, rec.State, mustJSON(rec.VehicleTypes), rec.VehicleOther,
		mustJSON(rec.Applications), rec.ApplicationOther, rec.FleetSize, rec.Timeline,
		rec.ProcurementMode, rec.AdditionalInfo, rec.Consent, rec.RequestedDate, id,
	)
}

// --- dealership_enquiry ---

type DealershipEnquiryRepo struct {
	enquiryTable[models.DealershipEnquiry]
}

func NewDealershipEnquiryRepo(db *pgxpool.Pool) *DealershipEnquiryRepo {
	return &DealershipEnquiryRepo{enquiryTable[models.DealershipEnquiry]{db: db, table: "dealership_enquiry"}}
}

func (r *DealershipEnquiryRepo) Create(ctx context.Context, rec *models.DealershipEnquiry) (*models.DealershipEnquiry, error) {
	q := `INSERT INTO dealership_enquiry (
			name, company_name, address, city, state, pincode, contact_number,
			alternate_number, email, website, current_business, experience,
			proposed_territory, firm_turnover, investment_capacity, infrastructure,
			reason_for_interest, other_info, raw_payload
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16::jsonb,$17,$18,$19::jsonb)
		RETURNING *`
	return r.returning(ctx, q,
		rec.Name, rec.CompanyName, rec.Address, rec.City, rec.State, rec.Pincode, rec.ContactNumber,
		rec.AlternateNumber, rec.Email, rec.Website, rec.CurrentBusiness, rec.Experience,
		rec.ProposedTerritory, rec.FirmTurnover, rec.InvestmentCapacity, mustJSON(rec.Infrastructure),
		rec.ReasonForInterest, rec.OtherInfo, []byte(rec.RawPayload),
	)
}

func (r *DealershipEnquiryRepo) Update(ctx context.Context, id int64, rec *models.DealershipEnquiry) (*models.DealershipEnquiry, error) {
	q := `UPDATE dealership_enquiry SET
		name=$1, company_name=$2, address=$3, city=$4, state=$5, pincode=$6,
		contact_number=$7, alternate_number=$8, email=$9, website=$10,
		current_business=$11, experience=$12, proposed_territory=$13, firm_turnover=$14,
		investment_capacity=$15, infrastructure=$16::jsonb, reason_for_interest=$17,
		other_info=$18, updated_at=NOW()
		WHERE id=$19 RETURNING *`
	return r.returning(ctx, q,
		rec.Name, rec.CompanyName, rec.Address, rec.City, rec.State, rec.Pincode,
		rec.ContactNumber, rec.AlternateNumber, rec.Email, rec.Website,
		rec.CurrentBusiness, rec.Experience, rec.ProposedTerritory, rec.FirmTurnover,
		rec.InvestmentCapacity, mustJSON(rec.Infrastructure), rec.ReasonForInterest,
		rec.OtherInfo, id,
	)
}

// --- customer_feedback ---

type CustomerFeedbackRepo struct {
	enquiryTable[models.CustomerFeedback]
}

func NewCustomerFeedbackRepo(db *pgxpool.Pool) *CustomerFeedbackRepo {
	return &CustomerFeedbackRepo{enquiryTable[models.CustomerFeedback]{db: db, table: "customer_feedback"}}
}

func (r *CustomerFeedbackRepo) Create(ctx context.Context, rec *models.CustomerFeedback) (*models.CustomerFeedback, error) {
	q := `INSERT INTO customer_feedback (
			name, company_name, contact_number, email, state, city, model_name,
			vehicle_type, vehicle_other, vehicle_performance, sales_service_experience,
			open_feedback, raw_payload
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10::jsonb,$11::jsonb,$12::jsonb,$13::jsonb)
		RETURNING *`
	return r.returning(ctx, q,
		rec.Name, rec.CompanyName, rec.ContactNumber, rec.Email, rec.State, rec.City, rec.ModelName,
		rec.VehicleType, rec.VehicleOther, mustJSON(rec.VehiclePerformance), mustJSON(rec.SalesServiceExperience),
		mustJSON(rec.OpenFeedback), []byte(rec.RawPayload),
	)
}

func (r *CustomerFeedbackRepo) Update(ctx context.Context, id int64, rec *models.CustomerFeedback) (*models.CustomerFeedback, error) {
	q := `UPDATE customer_feedback SET
		name=$1, company_name=$2, contact_number=$3, email=$4, state=$5, city=$6,
		model_name=$7, vehicle_type=$8, vehicle_other=$9, vehicle_performance=$10::jsonb,
		sales_service_experience=$11::jsonb, open_feedback=$12::jsonb, updated_at=NOW()
		WHERE id=$13 RETURNING *`
	return r.returning(ctx, q,
		rec.Name, rec.CompanyName, rec.ContactNumber, rec.Email, rec.State, rec.City,
		rec.ModelName, rec.VehicleType, rec.VehicleOther, mustJSON(rec.VehiclePerformance),
		mustJSON(rec.SalesServiceExperience), mustJSON(rec.OpenFeedback), id,
	)
}

// --- testdrive_booking ---

type TestDriveBookingRepo struct {
	enquiryTable[models.TestDriveBooking]
}

func NewTestDriveBookingRepo(db *pgxpool.Pool) *TestDriveBookingRepo {
	return &TestDriveBookingRepo{enquiryTable[models.TestDriveBooking]{db: db, table: "testdrive_booking"}}
}

func (r *TestDriveBookingRepo) Create(ctx context.Context, rec *models.TestDriveBooking) (*models.TestDriveBooking, error) {
	q := `INSERT INTO testdrive_booking (
			name, company_name, contact_number, email, state, city, vehicle_types,
			vehicle_other, time_slot, business_segment, business_segment_other,
			consent, test_drive_date, raw_payload
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7::jsonb,$8,$9,$10,$11,$12,$13,$14::jsonb)
		RETURNING *`
	return r.returning(ctx, q,
		rec.Name, rec.CompanyName, rec.ContactNumber, rec.Email, rec.State, rec.City, mustJSON(rec.VehicleTypes),
		rec.VehicleOther, rec.TimeSlot, rec.BusinessSegment, rec.BusinessSegmentOther,
		rec.Consent, rec.TestDriveDate, []byte(rec.RawPayload),
	)
}

func (r *TestDriveBookingRepo) Update(ctx context.Context, id int64, rec *models.TestDriveBooking) (*models.TestDriveBooking, error) {
	q := `UPDATE testdrive_booking SET
		name=$1, company_name=$2, contact_number=$3, email=$4, state=$5, city=$6,
		vehicle_types=$7::jsonb, vehicle_other=$8, time_slot=$9, business_segment=$10,
		business_segment_other=$11, consent=$12, test_drive_date=$13, updated_at=NOW()
		WHERE id=$14 RETURNING *`
	return r.returning(ctx, q,
		rec.Name, rec.CompanyName, rec.ContactNumber, rec.Email, rec.State, rec.City,
		mustJSON(rec.VehicleTypes), rec.VehicleOther, rec.TimeSlot, rec.BusinessSegment,
		rec.BusinessSegmentOther, rec.Consent, rec.TestDriveDate, id,
	)
}

// --- download_brochure ---

type DownloadBrochureRepo struct {
	enquiryTable[models.DownloadBrochure]
}

func NewDownloadBrochureRepo(db *pgxpool.Pool) *DownloadBrochureRepo {
	return &DownloadBrochureRepo{enquiryTable[models.DownloadBrochure]{db: db, table: "download_brochure"}}
}

func (r *DownloadBrochureRepo) Create(ctx context.Context, rec *models.DownloadBrochure) (*models.DownloadBrochure, error) {
	q := `INSERT INTO download_brochure (name, company_name, contact_number, email, raw_payload)
		VALUES ($1,$2,$3,$4,$5::jsonb) RETURNING *`
	return r.returning(ctx, q,
		rec.Name, rec.CompanyName, rec.ContactNumber, rec.Email, []byte(rec.RawPayload),
	)
}

func (r *DownloadBrochureRepo) Update(ctx context.Context, id int64, rec *models.DownloadBrochure) (*models.DownloadBrochure, error) {
	q := `UPDATE download_brochure SET
		name=$1, company_name=$2, contact_number=$3, email=$4, updated_at=NOW()
		WHERE id=$5 RETURNING *`
	return r.returning(ctx, q, rec.Name, rec.CompanyName, rec.ContactNumber, rec.Email, id)
}
