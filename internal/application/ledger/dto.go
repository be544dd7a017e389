package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailbooks/backend/internal/domain/ledger"
)

// RecordEntryRequest represents a request to record a ledger entry
type RecordEntryRequest struct {
	PartyType     string          `json:"party_type" binding:"required,oneof=customer supplier"`
	PartyCode     string          `json:"party_code" binding:"required,max=20"`
	PartyName     string          `json:"party_name" binding:"required,max=200"`
	MobileNumber  string          `json:"mobile_number" binding:"max=20"`
	Type          string          `json:"type" binding:"required,max=30"`
	ReferenceNo   string          `json:"reference_no" binding:"required,max=50"`
	PaymentMethod string          `json:"payment_method" binding:"max=30"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Date          *time.Time      `json:"date"`
	DueDate       *time.Time      `json:"due_date"`
}

// ListRequest filters the ledger listing
type ListRequest struct {
	PartyType string     `form:"party_type" binding:"required,oneof=customer supplier"`
	Search    string     `form:"search"`
	Type      string     `form:"type"`
	FromDate  *time.Time `form:"from_date" time_format:"2006-01-02" binding:"omitempty,notfuture"`
	ToDate    *time.Time `form:"to_date" time_format:"2006-01-02" binding:"omitempty,notfuture"`
	Page      int        `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// EntryResponse represents a ledger entry in API responses
type EntryResponse struct {
	ID            uuid.UUID       `json:"id"`
	Seq           int64           `json:"seq"`
	Date          time.Time       `json:"date"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	PartyType     string          `json:"party_type"`
	PartyCode     string          `json:"party_code"`
	PartyName     string          `json:"party_name"`
	MobileNumber  string          `json:"mobile_number,omitempty"`
	Type          string          `json:"type"`
	ReferenceNo   string          `json:"reference_no"`
	PaymentMethod string          `json:"payment_method"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ListResponse is the paginated ledger listing plus its totals
type ListResponse struct {
	Entries     []EntryResponse `json:"entries"`
	Total       int64           `json:"total"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	NetBalance  decimal.Decimal `json:"net_balance"`
}

func toEntryResponse(e *ledger.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		Seq:           e.Seq,
		Date:          e.Date,
		DueDate:       e.DueDate,
		PartyType:     string(e.PartyType),
		PartyCode:     e.PartyCode,
		PartyName:     e.PartyName,
		MobileNumber:  e.MobileNumber,
		Type:          string(e.Type),
		ReferenceNo:   e.ReferenceNo,
		PaymentMethod: e.PaymentMethod,
		Debit:         e.Debit,
		Credit:        e.Credit,
		Balance:       e.Balance,
		CreatedAt:     e.CreatedAt,
	}
}
