package entities

import "github.com/shopspring/decimal"

// TenantPatch is a partial tenant update. Required fields change only when
// non-empty. Pointer fields change whenever present, so a patch can set rent
// back to 0 or clear the notes.
type TenantPatch struct {
	Name       string       `json:"name"`
	Unit       string       `json:"unit"`
	Property   string       `json:"property"`
	LeaseStart string       `json:"lease_start"`
	LeaseEnd   string       `json:"lease_end"`
	Status     TenantStatus `json:"status"`

	Rent    *decimal.Decimal `json:"rent"`
	Deposit *decimal.Decimal `json:"deposit"`
	Notes   *string          `json:"notes"`
	Avatar  *string          `json:"avatar"`
	Photos  []string         `json:"photos"`
	IDPhoto *string          `json:"id_photo"`
}

func (p TenantPatch) Apply(t *Tenant) {
	setString(&t.Name, p.Name)
	setString(&t.Unit, p.Unit)
	setString(&t.Property, p.Property)
	setString(&t.LeaseStart, p.LeaseStart)
	setString(&t.LeaseEnd, p.LeaseEnd)
	if p.Status != "" {
		t.Status = p.Status
	}
	if p.Rent != nil {
		t.Rent = *p.Rent
	}
	if p.Deposit != nil {
		t.Deposit = *p.Deposit
	}
	setPtr(&t.Notes, p.Notes)
	setPtr(&t.Avatar, p.Avatar)
	if p.Photos != nil {
		t.Photos = p.Photos
	}
	setPtr(&t.IDPhoto, p.IDPhoto)
}

// ExpensePatch is a partial expense update. An empty utility_account_id
// unlinks the payment from its account.
type ExpensePatch struct {
	Title    string          `json:"title"`
	Date     string          `json:"date"`
	Category ExpenseCategory `json:"category"`
	Type     EntryType       `json:"type"`

	Amount           *decimal.Decimal `json:"amount"`
	Photos           []string         `json:"photos"`
	PropertyID       *string          `json:"property_id"`
	RoomID           *string          `json:"room_id"`
	UtilityAccountID *string          `json:"utility_account_id"`
}

func (p ExpensePatch) Apply(e *Expense) {
	setString(&e.Title, p.Title)
	setString(&e.Date, p.Date)
	if p.Category != "" {
		e.Category = p.Category
	}
	if p.Type != "" {
		e.Type = p.Type
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Photos != nil {
		e.Photos = p.Photos
	}
	setPtr(&e.PropertyID, p.PropertyID)
	setPtr(&e.RoomID, p.RoomID)
	setPtr(&e.UtilityAccountID, p.UtilityAccountID)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setPtr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
