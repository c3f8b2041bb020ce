package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/childcare-api/internal/authz"
	"github.com/noah-isme/childcare-api/internal/dto"
	"github.com/noah-isme/childcare-api/internal/models"
	appErrors "github.com/noah-isme/childcare-api/pkg/errors"
)

const contactTakenMessage = "A contact is already registered with this phone number"

type contactStore interface {
	List(ctx context.Context, ownerID *int) ([]models.Contact, error)
	FindByID(ctx context.Context, id int) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id int) (bool, error)
}

type contactUserChecker interface {
	FindByID(ctx context.Context, id int) (*models.User, error)
}

type contactExistsChecker interface {
	ExistsForUser(ctx context.Context, phNumber string, userID, excludeID int) (bool, error)
}

// ContactService manages pickup contacts registered to parent accounts.
type ContactService struct {
	contacts  contactStore
	existence contactExistsChecker
	users     contactUserChecker
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs the service with defaults.
func NewContactService(contacts contactStore, existence contactExistsChecker, users contactUserChecker, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{contacts: contacts, existence: existence, users: users, validate: validate, logger: logger}
}

// List returns contacts visible to the caller: every contact for admins and
// teachers, only the caller's own for parents.
func (s *ContactService) List(ctx context.Context, ident models.Identity) ([]models.ContactView, error) {
	if err := authz.Authorize(ident, authz.ResourceContact, authz.OpList, ident.UserID); err != nil {
		return nil, err
	}

	var owner *int
	if !authz.HasBlanket(ident.Role, authz.ResourceContact, authz.OpList) {
		owner = &ident.UserID
	}
	contacts, err := s.contacts.List(ctx, owner)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list contacts")
	}

	views := make([]models.ContactView, 0, len(contacts))
	for _, contact := range contacts {
		views = append(views, view(contact))
	}
	return views, nil
}

// Get returns one contact.
func (s *ContactService) Get(ctx context.Context, ident models.Identity, id int) (*models.ContactView, error) {
	contact, err := s.find(ctx, ident, id, authz.OpGet)
	if err != nil {
		return nil, err
	}
	v := view(*contact)
	return &v, nil
}

// Create registers a contact. Admins must name the owning user; parents
// always register against their own account. An omitted email records the
// placeholder instead.
func (s *ContactService) Create(ctx context.Context, ident models.Identity, req dto.CreateContactRequest) (*models.ContactView, error) {
	if err := authz.Authorize(ident, authz.ResourceContact, authz.OpCreate, ident.UserID); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if err := validateName(req.FirstName); err != nil {
		return nil, err
	}
	phone, err := normalizePhone(req.PhNumber)
	if err != nil {
		return nil, err
	}

	ownerID := ident.UserID
	if ident.Role == models.RoleAdmin {
		if req.UserID == nil {
			return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				"No such user. Please check 'user_id' matches a registered user")
		}
		if _, err := s.users.FindByID(ctx, *req.UserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
					"No such user. Please check 'user_id' matches a registered user")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check user")
		}
		ownerID = *req.UserID
	}

	contact := &models.Contact{
		FirstName:        capitalize(req.FirstName),
		PhNumber:         phone,
		Email:            req.Email,
		EmergencyContact: *req.EmergencyContact,
		UserID:           ownerID,
	}
	if contact.Email == "" {
		contact.Email = models.DefaultContactEmail
	}

	exists, err := s.existence.ExistsForUser(ctx, contact.PhNumber, contact.UserID, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check contact")
	}
	if exists {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, contactTakenMessage)
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, appErrors.FromError(err)
	}
	s.logger.Info("contact registered", zap.Int("contact_id", contact.ID), zap.Int("user_id", contact.UserID))

	v := view(*contact)
	return &v, nil
}

// Update applies a partial contact update.
func (s *ContactService) Update(ctx context.Context, ident models.Identity, id int, req dto.UpdateContactRequest) (map[string]interface{}, error) {
	contact, err := s.find(ctx, ident, id, authz.OpUpdate)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	if req.Empty() {
		return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"Please provide at least one value to update")
	}

	updated := map[string]interface{}{}
	if req.FirstName != nil {
		if err := validateName(*req.FirstName); err != nil {
			return nil, err
		}
		contact.FirstName = capitalize(*req.FirstName)
		updated["first_name"] = contact.FirstName
	}
	if req.PhNumber != nil {
		phone, err := normalizePhone(*req.PhNumber)
		if err != nil {
			return nil, err
		}
		taken, err := s.existence.ExistsForUser(ctx, phone, contact.UserID, contact.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check contact")
		}
		if taken {
			return nil, appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, contactTakenMessage)
		}
		contact.PhNumber = phone
		updated["ph_number"] = contact.PhNumber
	}
	if req.Email != nil {
		contact.Email = *req.Email
		updated["email"] = contact.Email
	}
	if req.EmergencyContact != nil {
		contact.EmergencyContact = *req.EmergencyContact
		updated["emergency_contact"] = contact.EmergencyContact
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		return nil, appErrors.FromError(err)
	}
	return updated, nil
}

// Delete removes a contact and the attendance registrations naming it.
func (s *ContactService) Delete(ctx context.Context, ident models.Identity, id int) (string, error) {
	contact, err := s.find(ctx, ident, id, authz.OpDelete)
	if err != nil {
		return "", err
	}
	deleted, err := s.contacts.Delete(ctx, contact.ID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete contact")
	}
	if !deleted {
		return "", authz.OnMissing(ident.Role, authz.ResourceContact, authz.OpDelete)
	}
	s.logger.Info("contact deleted", zap.Int("contact_id", contact.ID))
	return "Contact registration deleted", nil
}

func (s *ContactService) find(ctx context.Context, ident models.Identity, id int, op authz.Operation) (*models.Contact, error) {
	if !authz.CanAttempt(ident.Role, authz.ResourceContact, op) {
		return nil, appErrors.ErrForbidden
	}
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authz.OnMissing(ident.Role, authz.ResourceContact, op)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch contact")
	}
	if err := authz.Authorize(ident, authz.ResourceContact, op, contact.UserID); err != nil {
		return nil, err
	}
	return contact, nil
}

func view(contact models.Contact) models.ContactView {
	return models.ContactView{
		ID:               contact.ID,
		UserID:           contact.UserID,
		FirstName:        contact.FirstName,
		EmergencyContact: contact.EmergencyContact,
		PhNumber:         contact.PhNumber,
		Email:            contact.Email,
	}
}
