// Package memstore is an in-memory ReportRepository and AuthRepository used for
// local runs (DATA_SOURCE=memory) and tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"salon_reports_backend/internal/models"
	"salon_reports_backend/internal/repositories"
)

// Store keeps salon records in memory. Finders apply the same filter
// semantics and orderings as the Postgres repositories.
type Store struct {
	mu           sync.RWMutex
	appointments []models.Appointment
	customers    []models.Customer
	stylists     []models.Stylist
	services     []models.Service
	inventory    []models.InventoryItem
	commissions  []models.Commission
	users        []models.User
	nextUserID   int64
}

var (
	_ repositories.ReportRepository = (*Store)(nil)
	_ repositories.AuthRepository   = (*Store)(nil)
)

// New returns an empty Store.
func New() *Store {
	return &Store{nextUserID: 1}
}

func (s *Store) AddAppointments(appointments ...models.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments = append(s.appointments, appointments...)
}

func (s *Store) AddCustomers(customers ...models.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append(s.customers, customers...)
}

func (s *Store) AddStylists(stylists ...models.Stylist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stylists = append(s.stylists, stylists...)
}

func (s *Store) AddServices(services ...models.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services = append(s.services, services...)
}

func (s *Store) AddInventoryItems(items ...models.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = append(s.inventory, items...)
}

func (s *Store) AddCommissions(commissions ...models.Commission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commissions = append(s.commissions, commissions...)
}

// AddUser stores a user and assigns it the next id. roleName may be empty.
func (s *Store) AddUser(user models.User, roleName string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextUserID
	s.nextUserID++
	if roleName != "" {
		roleID := user.ID
		user.RoleID = &roleID
		user.Role = &models.Role{ID: roleID, Name: roleName}
	}
	s.users = append(s.users, user)
	return user
}

func (s *Store) FindAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Appointment{}
	for _, apt := range s.appointments {
		if filter.Status != nil && apt.Status != *filter.Status {
			continue
		}
		if filter.StylistID != nil && (apt.Stylist == nil || apt.Stylist.ID != *filter.StylistID) {
			continue
		}
		if filter.ServiceID != nil && (apt.Service == nil || apt.Service.ID != *filter.ServiceID) {
			continue
		}
		if filter.From != nil && apt.DateTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && apt.DateTime.After(*filter.To) {
			continue
		}
		result = append(result, apt)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].DateTime.Equal(result[j].DateTime) {
			return result[i].DateTime.Before(result[j].DateTime)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) FindCustomers(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Customer{}
	for _, c := range s.customers {
		if filter.CreatedFrom != nil && c.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && c.CreatedAt.After(*filter.CreatedTo) {
			continue
		}
		result = append(result, c)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) FindActiveStylists(ctx context.Context) ([]models.Stylist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Stylist{}
	for _, st := range s.stylists {
		if st.IsActive {
			result = append(result, st)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (s *Store) FindActiveServices(ctx context.Context) ([]models.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Service{}
	for _, svc := range s.services {
		if svc.IsActive {
			result = append(result, svc)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) FindInventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := append([]models.InventoryItem{}, s.inventory...)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) FindCommissions(ctx context.Context, filter models.CommissionFilter) ([]models.Commission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Commission{}
	for _, c := range s.commissions {
		if c.PeriodStart.Before(filter.PeriodFrom) || c.PeriodEnd.After(filter.PeriodTo) {
			continue
		}
		result = append(result, c)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].PeriodStart.Equal(result[j].PeriodStart) {
			return result[i].PeriodStart.Before(result[j].PeriodStart)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *Store) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == userID {
			user := u
			user.PasswordHash = ""
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}
