package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalitics/backend/internal/domain/ledger"
	"github.com/pharmalitics/backend/internal/domain/shared"
)

// PharmacyService provides pharmacy master data operations
type PharmacyService struct {
	pharmacies ledger.PharmacyRepository
}

// NewPharmacyService creates a new PharmacyService
func NewPharmacyService(pharmacies ledger.PharmacyRepository) *PharmacyService {
	return &PharmacyService{pharmacies: pharmacies}
}

// CreatePharmacyRequest carries the payload for a new pharmacy
type CreatePharmacyRequest struct {
	Name          string `json:"name" binding:"required"`
	Location      string `json:"location"`
	City          string `json:"city"`
	State         string `json:"state"`
	Type          string `json:"type"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// UpdatePharmacyRequest carries a partial update; nil fields stay unchanged
type UpdatePharmacyRequest struct {
	Name          *string `json:"name"`
	Location      *string `json:"location"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	Type          *string `json:"type"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
}

// PharmacyResponse is the API shape of a pharmacy
type PharmacyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location,omitempty"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	Type          string    `json:"type,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PharmacyListResponse wraps a paginated pharmacy listing
type PharmacyListResponse struct {
	Items  []PharmacyResponse `json:"items"`
	Total  int64              `json:"total"`
	Offset int                `json:"offset"`
	Limit  int                `json:"limit"`
}

// CreatePharmacy registers a pharmacy
func (s *PharmacyService) CreatePharmacy(ctx context.Context, req CreatePharmacyRequest) (*PharmacyResponse, error) {
	pharmacy, err := ledger.NewPharmacy(ledger.NewPharmacyInput{
		Name:          req.Name,
		Location:      req.Location,
		City:          req.City,
		State:         req.State,
		Type:          req.Type,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
	})
	if err != nil {
		return nil, err
	}

	if err := s.pharmacies.Save(ctx, pharmacy); err != nil {
		return nil, err
	}
	return toPharmacyResponse(pharmacy), nil
}

// GetPharmacy returns one active pharmacy
func (s *PharmacyService) GetPharmacy(ctx context.Context, id uuid.UUID) (*PharmacyResponse, error) {
	pharmacy, err := s.pharmacies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPharmacyResponse(pharmacy), nil
}

// UpdatePharmacy applies a partial update
func (s *PharmacyService) UpdatePharmacy(ctx context.Context, id uuid.UUID, req UpdatePharmacyRequest) (*PharmacyResponse, error) {
	pharmacy, err := s.pharmacies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := pharmacy.Apply(ledger.PharmacyUpdate{
		Name:          req.Name,
		Location:      req.Location,
		City:          req.City,
		State:         req.State,
		Type:          req.Type,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
	}); err != nil {
		return nil, err
	}
	if err := s.pharmacies.Update(ctx, pharmacy); err != nil {
		return nil, err
	}
	return toPharmacyResponse(pharmacy), nil
}

// DeletePharmacy soft-deletes a pharmacy
func (s *PharmacyService) DeletePharmacy(ctx context.Context, id uuid.UUID) error {
	pharmacy, err := s.pharmacies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	pharmacy.Deactivate()
	return s.pharmacies.Update(ctx, pharmacy)
}

// ListPharmacies returns a paginated pharmacy listing
func (s *PharmacyService) ListPharmacies(ctx context.Context, offset, limit int) (*PharmacyListResponse, error) {
	filter := shared.Filter{Offset: offset, Limit: limit}.Normalize()

	pharmacies, total, err := s.pharmacies.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]PharmacyResponse, len(pharmacies))
	for i, pharmacy := range pharmacies {
		items[i] = *toPharmacyResponse(pharmacy)
	}
	return &PharmacyListResponse{
		Items:  items,
		Total:  total,
		Offset: filter.Offset,
		Limit:  filter.Limit,
	}, nil
}

func toPharmacyResponse(pharmacy *ledger.Pharmacy) *PharmacyResponse {
	return &PharmacyResponse{
		ID:            pharmacy.ID.String(),
		Name:          pharmacy.Name,
		Location:      pharmacy.Location,
		City:          pharmacy.City,
		State:         pharmacy.State,
		Type:          pharmacy.Type,
		ContactPerson: pharmacy.ContactPerson,
		Phone:         pharmacy.Phone,
		Email:         pharmacy.Email,
		CreatedAt:     pharmacy.CreatedAt,
		UpdatedAt:     pharmacy.UpdatedAt,
	}
}
