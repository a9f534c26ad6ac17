package ledger

import (
	"strings"

	"github.com/pharmalitics/backend/internal/domain/shared"
)

// Pharmacy is master data for a customer outlet. Like products, pharmacies
// are referenced by denormalized name in the sales ledger.
type Pharmacy struct {
	shared.BaseEntity

	Name     string `gorm:"type:varchar(255);not null;index"`
	Location string `gorm:"type:varchar(255);index"`
	City     string `gorm:"type:varchar(100)"`
	State    string `gorm:"type:varchar(100)"`
	Type     string `gorm:"type:varchar(50)"`

	ContactPerson string `gorm:"type:varchar(100)"`
	Phone         string `gorm:"type:varchar(50)"`
	Email         string `gorm:"type:varchar(255)"`

	IsActive bool `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Pharmacy) TableName() string {
	return "pharmacies"
}

// NewPharmacyInput carries the caller-supplied fields for a new pharmacy.
type NewPharmacyInput struct {
	Name          string
	Location      string
	City          string
	State         string
	Type          string
	ContactPerson string
	Phone         string
	Email         string
}

// NewPharmacy creates a pharmacy after validating required fields.
func NewPharmacy(in NewPharmacyInput) (*Pharmacy, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Pharmacy name is required")
	}

	return &Pharmacy{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          strings.TrimSpace(in.Name),
		Location:      strings.TrimSpace(in.Location),
		City:          strings.TrimSpace(in.City),
		State:         strings.TrimSpace(in.State),
		Type:          in.Type,
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		IsActive:      true,
	}, nil
}

// PharmacyUpdate carries a partial update. Nil fields are left unchanged.
type PharmacyUpdate struct {
	Name          *string
	Location      *string
	City          *string
	State         *string
	Type          *string
	ContactPerson *string
	Phone         *string
	Email         *string
}

// Apply applies a partial update.
func (p *Pharmacy) Apply(u PharmacyUpdate) error {
	if u.Name != nil {
		if strings.TrimSpace(*u.Name) == "" {
			return shared.NewDomainError("INVALID_INPUT", "Pharmacy name is required")
		}
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Location != nil {
		p.Location = strings.TrimSpace(*u.Location)
	}
	if u.City != nil {
		p.City = strings.TrimSpace(*u.City)
	}
	if u.State != nil {
		p.State = strings.TrimSpace(*u.State)
	}
	if u.Type != nil {
		p.Type = *u.Type
	}
	if u.ContactPerson != nil {
		p.ContactPerson = strings.TrimSpace(*u.ContactPerson)
	}
	if u.Phone != nil {
		p.Phone = strings.TrimSpace(*u.Phone)
	}
	if u.Email != nil {
		p.Email = strings.TrimSpace(*u.Email)
	}

	p.Touch()
	return nil
}

// Deactivate soft-deletes the pharmacy.
func (p *Pharmacy) Deactivate() {
	p.IsActive = false
	p.Touch()
}
