package partner

import (
	"context"

	"go.uber.org/zap"

	"github.com/timebill/backend/internal/domain/partner"
	"github.com/timebill/backend/internal/domain/shared"
)

// CustomerService handles customer account use cases
type CustomerService struct {
	customers partner.CustomerRepository
	logger    *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customers partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		logger:    logger,
	}
}

// CreateCustomerInput holds the data for creating a customer
type CreateCustomerInput struct {
	Code            string
	AccountNumber   string
	Name            string
	AddressLines    []string
	BillingUnit     string
	PaymentTermDays int
}

// UpdateCustomerInput holds the data for updating a customer
type UpdateCustomerInput struct {
	Name            *string
	AccountNumber   *string
	AddressLines    []string
	BillingUnit     *string
	PaymentTermDays *int
}

// CreateCustomer validates and stores a new customer account
func (s *CustomerService) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*partner.Customer, error) {
	existing, err := s.customers.FindByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	customer, err := partner.NewCustomer(input.Code, input.AccountNumber, input.Name, input.AddressLines)
	if err != nil {
		return nil, err
	}
	if input.BillingUnit != "" {
		customer.SetBillingUnit(input.BillingUnit)
	}
	if input.PaymentTermDays > 0 {
		if err := customer.SetPaymentTerms(input.PaymentTermDays); err != nil {
			return nil, err
		}
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		s.logger.Error("Failed to save customer", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Customer created", zap.String("code", customer.Code))
	return customer, nil
}

// GetCustomer loads one customer by code
func (s *CustomerService) GetCustomer(ctx context.Context, code string) (*partner.Customer, error) {
	customer, err := s.customers.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.ErrNotFound
	}
	return customer, nil
}

// ListCustomers returns customers with pagination
func (s *CustomerService) ListCustomers(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	return s.customers.FindAll(ctx, filter)
}

// UpdateCustomer applies a partial update to a customer account
func (s *CustomerService) UpdateCustomer(ctx context.Context, code string, input UpdateCustomerInput) (*partner.Customer, error) {
	customer, err := s.GetCustomer(ctx, code)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
		}
		customer.Name = *input.Name
	}
	if input.AccountNumber != nil {
		customer.AccountNumber = *input.AccountNumber
	}
	if input.AddressLines != nil {
		if len(input.AddressLines) > partner.MaxAddressLines {
			return nil, shared.NewDomainError("INVALID_ADDRESS", "A customer address has at most six lines")
		}
		customer.AddressLines = append([]string(nil), input.AddressLines...)
	}
	if input.BillingUnit != nil {
		customer.SetBillingUnit(*input.BillingUnit)
	}
	if input.PaymentTermDays != nil {
		if err := customer.SetPaymentTerms(*input.PaymentTermDays); err != nil {
			return nil, err
		}
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}
